package itinerary

// LineItem amounts are whole currency units.
type LineItem struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

type Breakdown struct {
	Flights    []LineItem `json:"flights"`
	Hotels     []LineItem `json:"hotels"`
	Activities []LineItem `json:"activities"`
}

type PointsOptimization struct {
	BestCardToUse         string   `json:"best_card_to_use,omitempty"`
	PotentialPointsEarned *int64   `json:"potential_points_earned,omitempty"`
	Suggestions           []string `json:"suggestions,omitempty"`
	TransferPartners      []string `json:"transfer_partners,omitempty"`
	RedemptionTips        []string `json:"redemption_tips,omitempty"`
}

type Quote struct {
	Subtotal           int64               `json:"subtotal"`
	PlatformFee        int64               `json:"platform_fee"`
	Total              int64               `json:"total"`
	PerPerson          float64             `json:"per_person,omitempty"`
	Breakdown          *Breakdown          `json:"breakdown,omitempty"`
	PointsOptimization *PointsOptimization `json:"points_optimization,omitempty"`
}

// LineItemTotal sums every line item of the breakdown.
func (q *Quote) LineItemTotal() int64 {
	if q.Breakdown == nil {
		return 0
	}
	var sum int64
	for _, items := range [][]LineItem{q.Breakdown.Flights, q.Breakdown.Hotels, q.Breakdown.Activities} {
		for _, it := range items {
			sum += it.Amount
		}
	}
	return sum
}
