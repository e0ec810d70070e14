package providers

import (
	"encoding/json"
	"testing"

	"github.com/mwhitaker/daytripper/internal/models"
)

const sampleOfferJSON = `{
	"id": "offer-1",
	"price": {"grandTotal": "158.40", "currency": "USD"},
	"itineraries": [
		{
			"duration": "PT1H15M",
			"segments": [
				{
					"departure": {"iataCode": "CLT", "at": "2025-11-21T07:35:00"},
					"arrival": {"iataCode": "ATL", "at": "2025-11-21T08:50:00"},
					"carrierCode": "AA",
					"number": "1234"
				}
			]
		},
		{
			"duration": "PT1H15M",
			"segments": [
				{
					"departure": {"iataCode": "ATL", "at": "2025-11-21T16:10:00"},
					"arrival": {"iataCode": "CLT", "at": "2025-11-21T17:25:00"},
					"carrierCode": "AA",
					"number": "4321"
				}
			]
		}
	]
}`

func decodeOffer(t *testing.T, raw string) flightOffer {
	t.Helper()
	var offer flightOffer
	if err := json.Unmarshal([]byte(raw), &offer); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return offer
}

func TestParseRoundTripOffer(t *testing.T) {
	offer, err := parseRoundTripOffer(decodeOffer(t, sampleOfferJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if offer.TotalPrice != 158.40 {
		t.Fatalf("total price = %f, want 158.40", offer.TotalPrice)
	}
	if offer.OfferID != "offer-1" {
		t.Fatalf("offer id = %q", offer.OfferID)
	}

	out := offer.Outbound
	if out.FlightNumbers != "AA1234" {
		t.Fatalf("outbound flight numbers = %q", out.FlightNumbers)
	}
	if out.DepartHour != 7 || out.DepartMinute != 35 {
		t.Fatalf("outbound departure clock = %d:%d", out.DepartHour, out.DepartMinute)
	}
	if out.DurationMinutes != 75 {
		t.Fatalf("outbound duration = %d", out.DurationMinutes)
	}
	if out.Stops != 0 {
		t.Fatalf("outbound stops = %d", out.Stops)
	}
	if out.Price == nil || *out.Price != 79.20 {
		t.Fatalf("outbound price = %v, want 79.20", out.Price)
	}

	in := offer.Inbound
	if in.ArriveHour != 17 || in.ArriveMinute != 25 {
		t.Fatalf("inbound arrival clock = %d:%d", in.ArriveHour, in.ArriveMinute)
	}
	if in.Price == nil || *in.Price != 79.20 {
		t.Fatalf("inbound price = %v, want 79.20", in.Price)
	}
}

func TestParseRoundTripOfferRejectsOneWay(t *testing.T) {
	raw := decodeOffer(t, sampleOfferJSON)
	raw.Itineraries = raw.Itineraries[:1]
	if _, err := parseRoundTripOffer(raw); err == nil {
		t.Fatal("expected error for single-itinerary offer")
	}
}

func TestParseItineraryRejectsInvertedArrival(t *testing.T) {
	raw := decodeOffer(t, sampleOfferJSON)
	raw.Itineraries[0].Segments[0].Arrival.At = "2025-11-21T06:00:00"
	if _, err := parseRoundTripOffer(raw); err == nil {
		t.Fatal("expected error when arrival precedes departure")
	}
}

func TestArrivalWindowBoundaries(t *testing.T) {
	cases := []struct {
		hour, minute int
		want         bool
	}{
		{15, 0, true},  // exactly earliest hour: accepted
		{14, 59, false},
		{17, 25, true},
		{19, 0, true},  // exactly latest hour on the hour: accepted
		{19, 1, false}, // latest hour with nonzero minutes: rejected
		{20, 0, false},
	}
	for _, tc := range cases {
		if got := arrivalWithinWindow(tc.hour, tc.minute, 15, 19); got != tc.want {
			t.Fatalf("arrivalWithinWindow(%d:%02d) = %v, want %v", tc.hour, tc.minute, got, tc.want)
		}
	}
}

func TestOfferMatchesDurationAndCarriers(t *testing.T) {
	offer, err := parseRoundTripOffer(decodeOffer(t, sampleOfferJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base := RoundTripQuery{
		EarliestArriveHour: 15,
		LatestArriveHour:   19,
		MinDurationMinutes: 50,
		MaxDurationMinutes: 204,
	}

	if !offerMatches(offer, base, 5, 9) {
		t.Fatal("expected offer to match baseline query")
	}
	if offerMatches(offer, base, 8, 9) {
		t.Fatal("expected rejection: departs before earliest hour")
	}
	if offerMatches(offer, base, 5, 7) {
		t.Fatal("expected rejection: departs at latest hour")
	}

	tight := base
	tight.MaxDurationMinutes = 60
	if offerMatches(offer, tight, 5, 9) {
		t.Fatal("expected rejection: leg duration above maximum")
	}

	long := base
	long.MinDurationMinutes = 90
	if offerMatches(offer, long, 5, 9) {
		t.Fatal("expected rejection: leg duration below minimum")
	}

	allowed := base
	allowed.Carriers = []string{"DL"}
	if offerMatches(offer, allowed, 5, 9) {
		t.Fatal("expected rejection: no leg on an allowed carrier")
	}
	allowed.Carriers = []string{"aa"}
	if !offerMatches(offer, allowed, 5, 9) {
		t.Fatal("expected match: carrier allow-list is case-insensitive")
	}
}

func TestDedupeCheapestKeepsCheapest(t *testing.T) {
	cheap, _ := parseRoundTripOffer(decodeOffer(t, sampleOfferJSON))
	expensive := cheap
	expensive.TotalPrice = 412.00

	other, _ := parseRoundTripOffer(decodeOffer(t, sampleOfferJSON))
	other.Outbound.FlightNumbers = "AA9999"
	other.TotalPrice = 99.00

	got := dedupeCheapest([]models.RoundTripOffer{expensive, cheap, other})
	if len(got) != 2 {
		t.Fatalf("deduped to %d offers, want 2", len(got))
	}

	for _, offer := range got {
		if offer.Outbound.FlightNumbers == "AA1234" && offer.TotalPrice != cheap.TotalPrice {
			t.Fatalf("kept price %f for duplicate pairing, want %f", offer.TotalPrice, cheap.TotalPrice)
		}
	}
}
