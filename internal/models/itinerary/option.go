package itinerary

// FlightLeg is one direction of travel. ToLocation is often omitted by the provider
// on the outbound leg.
type FlightLeg struct {
	FromLocation string `json:"from_location" validate:"required"`
	ToLocation   string `json:"to_location,omitempty"`
	StartTime    string `json:"start_time"`
	ReachBy      string `json:"reach_by"`
}

type HotelStay struct {
	Name          string `json:"name" validate:"required"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	ImageURL      string `json:"image_url,omitempty"`
	GoogleMapsURL string `json:"google_maps_url,omitempty"`
}

type Activity struct {
	Name          string `json:"name,omitempty"`
	StartFrom     string `json:"start_from"`
	StartTime     string `json:"start_time"`
	ReachTime     string `json:"reach_time"`
	TimeToSpend   string `json:"time_to_spend"`
	ImageURL      string `json:"image_url,omitempty"`
	GoogleMapsURL string `json:"google_maps_url,omitempty"`
}

type DayPlan struct {
	Day        int        `json:"day" validate:"min=1"`
	Activities []Activity `json:"activities" validate:"dive"`
}

type DailyPlan struct {
	FlightFromSource *FlightLeg  `json:"flight_from_source,omitempty" validate:"omitempty"`
	FlightToOrigin   *FlightLeg  `json:"flight_to_origin,omitempty" validate:"omitempty"`
	HotelStay        []HotelStay `json:"hotel_stay,omitempty" validate:"dive"`
	Days             []DayPlan   `json:"days" validate:"dive"`
}

// Option is one itinerary alternative returned by a provider.
type Option struct {
	ID                 string    `json:"id" validate:"required"`
	Label              string    `json:"label"`
	DailyPlan          DailyPlan `json:"daily_plan"`
	TotalEstimatedCost float64   `json:"total_estimated_cost" validate:"min=0,max=1000000000000000"`
}

// TripRequest carries the trip preferences collected by the planning form.
type TripRequest struct {
	Origin            string   `json:"origin" validate:"required"`
	Destination       string   `json:"destination" validate:"required"`
	StartDate         string   `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate           string   `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	NumPersons        int      `json:"num_persons" validate:"min=1,max=20"`
	AccommodationType string   `json:"accommodation_type,omitempty" validate:"omitempty,oneof=hotel hostel apartment luxury"`
	BudgetPerPerson   int64    `json:"budget_per_person,omitempty" validate:"min=0"`
	TotalBudget       int64    `json:"total_budget,omitempty" validate:"min=0"`
	Pace              string   `json:"pace,omitempty" validate:"omitempty,oneof=slow moderate fast"`
	Interests         []string `json:"interests,omitempty"`
	PassportCountry   string   `json:"passport_country,omitempty"`
	Accessibility     bool     `json:"accessibility"`
	Dietary           bool     `json:"dietary"`
}

// Meta echoes the route and dates of the request.
func (r *TripRequest) Meta() TripMeta {
	return TripMeta{
		Origin:      r.Origin,
		Destination: r.Destination,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}

type GenerateResponse struct {
	Options       []Option `json:"options"`
	SuggestedDays *int     `json:"suggested_days,omitempty"`
}

type PickInput struct {
	Label         string `json:"label"`
	GoogleMapsURL string `json:"google_maps_url,omitempty"`
}

type TripMeta struct {
	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

type PicksRequest struct {
	Picks []PickInput `json:"picks"`
	TripMeta
}

type PicksResponse struct {
	OptionID string `json:"option_id"`
	Option   Option `json:"option"`
}

// Endpoints resolves the origin and destination embedded in the option's flight legs.
func (o *Option) Endpoints() (origin, destination string) {
	dp := o.DailyPlan
	if dp.FlightFromSource != nil {
		origin = dp.FlightFromSource.FromLocation
		destination = dp.FlightFromSource.ToLocation
	}
	if dp.FlightToOrigin != nil {
		if destination == "" {
			destination = dp.FlightToOrigin.FromLocation
		}
		if origin == "" {
			origin = dp.FlightToOrigin.ToLocation
		}
	}
	return origin, destination
}
