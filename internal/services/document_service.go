package services

import (
	"context"
	"fmt"
	"strings"

	"voyager/internal/models/itinerary"
)

type TripDocumentInput struct {
	Option      itinerary.Option `json:"option"`
	Quote       itinerary.Quote  `json:"quote"`
	Origin      string           `json:"origin"`
	Destination string           `json:"destination"`
}

// TripDocumentGenerator writes the plain-text trip document stored with a booking.
type TripDocumentGenerator interface {
	TripDocument(ctx context.Context, in TripDocumentInput) (string, error)
}

// LocalTripDocumentBuilder renders the document from the option and quote alone,
// without another itinerary API call.
type LocalTripDocumentBuilder struct{}

func NewLocalTripDocumentBuilder() *LocalTripDocumentBuilder {
	return &LocalTripDocumentBuilder{}
}

func (b *LocalTripDocumentBuilder) TripDocument(_ context.Context, in TripDocumentInput) (string, error) {
	return BuildTripDocument(in), nil
}

// BuildTripDocument lays the document out as upper-case section headings separated
// by "---" rules, the format the PDF renderer understands.
func BuildTripDocument(in TripDocumentInput) string {
	dp := in.Option.DailyPlan
	var po itinerary.PointsOptimization
	if in.Quote.PointsOptimization != nil {
		po = *in.Quote.PointsOptimization
	}

	var lines []string
	add := func(l ...string) { lines = append(lines, l...) }

	add("TRIP ITINERARY – DETAIL", "")
	add(fmt.Sprintf("%s → %s", firstNonEmpty(in.Origin, "Origin"), firstNonEmpty(in.Destination, "Destination")))
	add("Plan: "+firstNonEmpty(in.Option.Label, "Your itinerary"), "")

	if leg := dp.FlightFromSource; leg != nil {
		add("OUTBOUND FLIGHT",
			fmt.Sprintf("%s → %s", leg.FromLocation, leg.ToLocation),
			fmt.Sprintf("Dep: %s | Arrive by: %s", leg.StartTime, leg.ReachBy),
			"")
	}
	if len(dp.HotelStay) > 0 {
		add("HOTELS")
		for _, h := range dp.HotelStay {
			add(fmt.Sprintf("• %s | Check-in: %s | Check-out: %s", h.Name, h.CheckIn, h.CheckOut))
		}
		add("")
	}
	if len(dp.Days) > 0 {
		add("DAILY ACTIVITIES")
		for _, d := range dp.Days {
			add(fmt.Sprintf("Day %d", d.Day))
			for _, a := range d.Activities {
				add(strings.TrimRight(fmt.Sprintf("  • %s %s – %s %s", a.StartFrom, a.StartTime, a.TimeToSpend, a.Name), " "))
			}
			add("")
		}
	}
	if leg := dp.FlightToOrigin; leg != nil {
		add("RETURN FLIGHT",
			fmt.Sprintf("%s → %s", leg.FromLocation, leg.ToLocation),
			fmt.Sprintf("Dep: %s | Arrive by: %s", leg.StartTime, leg.ReachBy),
			"")
	}

	add("---", "SUGGESTIONS", "")
	for _, s := range po.Suggestions {
		add("• " + s)
	}
	if len(po.RedemptionTips) > 0 {
		add("", "Redemption tips:")
		for _, t := range po.RedemptionTips {
			add("• " + t)
		}
	}

	add("", "---", "CURRENCY USAGE", "",
		"• Local currency: Carry some cash for markets and small vendors.",
		"• Card widely accepted; notify your bank before travel.",
		"• ATMs at airport and major areas; check fee with your bank.",
		"")

	add("---", "MOBILE PLAN", "",
		"• Enable roaming or buy a local eSIM/data plan for maps and bookings.",
		"• Save offline maps and key addresses before you go.",
		"")

	add("---", "CARD BENEFITS", "",
		"Best card for this trip: "+firstNonEmpty(po.BestCardToUse, "Use a travel rewards card."))
	if po.PotentialPointsEarned != nil {
		add("Potential points: " + formatNumber(*po.PotentialPointsEarned))
	}
	if len(po.TransferPartners) > 0 {
		add("Transfer partners: " + strings.Join(po.TransferPartners, "; "))
	}

	add("", "---", "LOCAL LANGUAGE CHEAT SHEET", "",
		"Hello / Thank you / Please / Yes / No / Where is…? / How much?",
		"(Customize per destination in your PDF.)",
		"")

	add("---", "EMERGENCY CONTACTS", "",
		fmt.Sprintf("Look up local emergency numbers and your embassy in %s before departure.", firstNonEmpty(in.Destination, "your destination")))

	return strings.Join(lines, "\n")
}
