package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"voyager/internal/metrics"
	"voyager/internal/models/itinerary"
	"voyager/pkg/utils"
)

const defaultPartySize = 2

var numberPrinter = message.NewPrinter(language.English)

// formatNumber groups thousands, e.g. 4260 -> "4,260".
func formatNumber(n int64) string {
	return numberPrinter.Sprintf("%d", n)
}

type QuoteServiceInterface interface {
	Quote(ctx context.Context, option itinerary.Option, partySize int) (*itinerary.Quote, error)
}

// RemoteQuoter prices an option on the itinerary API.
type RemoteQuoter interface {
	Quote(ctx context.Context, option itinerary.Option) (*itinerary.Quote, error)
}

type QuoteService struct {
	platformFee int64
	remote      RemoteQuoter
}

// NewQuoteService builds quotes locally when remote is nil.
func NewQuoteService(platformFee int64, remote RemoteQuoter) QuoteServiceInterface {
	return &QuoteService{platformFee: platformFee, remote: remote}
}

func (q *QuoteService) Quote(ctx context.Context, option itinerary.Option, partySize int) (*itinerary.Quote, error) {
	if err := itinerary.CheckTripCost(option.TotalEstimatedCost); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}

	if q.remote != nil {
		quote, err := q.remote.Quote(ctx, option)
		if err != nil {
			return nil, err
		}
		metrics.QuotesTotal.Inc()
		return quote, nil
	}

	quote, err := BuildQuote(option, partySize, q.platformFee)
	if err != nil {
		return nil, err
	}
	metrics.QuotesTotal.Inc()
	return quote, nil
}

// percentOf rounds cost*pct/100 half up; cost is non-negative.
func percentOf(cost, pct int64) int64 {
	return (cost*pct + 50) / 100
}

// splitEven divides total into n parts; the last part absorbs the remainder so the
// parts always add up to total.
func splitEven(total int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	each := total / int64(n)
	parts := make([]int64, n)
	for i := range parts {
		parts[i] = each
	}
	parts[n-1] = total - each*int64(n-1)
	return parts
}

// BuildQuote allocates the rounded option cost 45/35/20 across flights, hotels and
// activities and itemizes each category from the option's plan.
func BuildQuote(option itinerary.Option, partySize int, platformFee int64) (*itinerary.Quote, error) {
	if err := itinerary.CheckTripCost(option.TotalEstimatedCost); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}
	if partySize <= 0 {
		partySize = defaultPartySize
	}

	cost := int64(math.Round(option.TotalEstimatedCost))
	flightTotal := percentOf(cost, 45)
	hotelTotal := percentOf(cost, 35)
	activityTotal := cost - flightTotal - hotelTotal

	dp := option.DailyPlan
	origin, destination := option.Endpoints()
	if origin == "" {
		origin = "Origin"
	}
	if destination == "" {
		destination = "Destination"
	}

	breakdown := &itinerary.Breakdown{
		Flights:    flightItems(dp, flightTotal, origin, destination),
		Hotels:     hotelItems(dp, hotelTotal),
		Activities: activityItems(dp, activityTotal),
	}

	total := cost + platformFee
	potentialPoints := (cost*3 + 1) / 2

	return &itinerary.Quote{
		Subtotal:    cost,
		PlatformFee: platformFee,
		Total:       total,
		PerPerson:   math.Round(float64(total)/float64(partySize)*100) / 100,
		Breakdown:   breakdown,
		PointsOptimization: &itinerary.PointsOptimization{
			BestCardToUse:         "Use a travel rewards card (e.g. Amex Gold 4x on flights/dining) for this plan.",
			PotentialPointsEarned: &potentialPoints,
			Suggestions: []string{
				fmt.Sprintf("Book this itinerary with a card that earns bonus on travel to earn ~%s points.", formatNumber(potentialPoints)),
				"Transfer points to airline or hotel partners for best redemption value.",
			},
			TransferPartners: []string{"Chase → United, Hyatt", "Amex → Delta, Marriott"},
			RedemptionTips: []string{
				"Check saver award space 30 days out for flights.",
				"Hotel points often give strong value for this trip.",
			},
		},
	}, nil
}

func flightItems(dp itinerary.DailyPlan, total int64, origin, destination string) []itinerary.LineItem {
	var labels []string
	if leg := dp.FlightFromSource; leg != nil {
		labels = append(labels, fmt.Sprintf("Outbound: %s → %s", firstNonEmpty(leg.FromLocation, origin), firstNonEmpty(leg.ToLocation, destination)))
	}
	if leg := dp.FlightToOrigin; leg != nil {
		labels = append(labels, fmt.Sprintf("Return: %s → %s", firstNonEmpty(leg.FromLocation, destination), firstNonEmpty(leg.ToLocation, origin)))
	}
	if len(labels) == 0 {
		if total > 0 {
			return []itinerary.LineItem{{Description: "Flights", Amount: total}}
		}
		return []itinerary.LineItem{}
	}
	return itemize(labels, total)
}

func hotelItems(dp itinerary.DailyPlan, total int64) []itinerary.LineItem {
	if len(dp.HotelStay) == 0 {
		if total > 0 {
			return []itinerary.LineItem{{Description: "Accommodation", Amount: total}}
		}
		return []itinerary.LineItem{}
	}

	labels := make([]string, 0, len(dp.HotelStay))
	for _, h := range dp.HotelStay {
		var dates []string
		for _, d := range []string{h.CheckIn, h.CheckOut} {
			if d != "" {
				dates = append(dates, d)
			}
		}
		label := h.Name
		if len(dates) > 0 {
			label += ", " + strings.Join(dates, " – ")
		}
		labels = append(labels, strings.TrimSpace(label))
	}
	return itemize(labels, total)
}

func activityItems(dp itinerary.DailyPlan, total int64) []itinerary.LineItem {
	if len(dp.Days) == 0 || total <= 0 {
		if total > 0 {
			return []itinerary.LineItem{{Description: "Activities & transport", Amount: total}}
		}
		return []itinerary.LineItem{}
	}

	labels := make([]string, 0, len(dp.Days))
	for _, d := range dp.Days {
		var places []string
		for _, a := range d.Activities {
			if len(places) == 2 {
				break
			}
			places = append(places, firstNonEmpty(a.StartFrom, a.Name, "Activity"))
		}
		if len(places) == 0 {
			labels = append(labels, fmt.Sprintf("Day %d", d.Day))
			continue
		}
		labels = append(labels, strings.Join(places, ", "))
	}
	return itemize(labels, total)
}

func itemize(labels []string, total int64) []itinerary.LineItem {
	amounts := splitEven(total, len(labels))
	items := make([]itinerary.LineItem, len(labels))
	for i, label := range labels {
		items[i] = itinerary.LineItem{Description: label, Amount: amounts[i]}
	}
	return items
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
