package providers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/mwhitaker/daytripper/internal/localtime"
	"github.com/mwhitaker/daytripper/internal/models"
)

type flightOffersResponse struct {
	Data []flightOffer `json:"data"`
}

type flightOffer struct {
	ID    string `json:"id"`
	Price struct {
		GrandTotal string `json:"grandTotal"`
		Total      string `json:"total"`
		Currency   string `json:"currency"`
	} `json:"price"`
	Itineraries []itinerary `json:"itineraries"`
}

type itinerary struct {
	Duration string    `json:"duration"`
	Segments []segment `json:"segments"`
}

type segment struct {
	Departure struct {
		IataCode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"departure"`
	Arrival struct {
		IataCode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"arrival"`
	CarrierCode string `json:"carrierCode"`
	Number      string `json:"number"`
}

var (
	errNotRoundTrip    = errors.New("offer does not contain two itineraries")
	errEmptyItinerary  = errors.New("itinerary has no segments")
	errArrivalInverted = errors.New("arrival precedes departure")
)

// parseRoundTripOffer converts one provider offer (outbound slice + inbound
// slice) into a RoundTripOffer with the total price split evenly across the
// legs for display.
func parseRoundTripOffer(raw flightOffer) (models.RoundTripOffer, error) {
	if len(raw.Itineraries) < 2 {
		return models.RoundTripOffer{}, errNotRoundTrip
	}

	outbound, err := parseItinerary(raw.Itineraries[0])
	if err != nil {
		return models.RoundTripOffer{}, err
	}
	inbound, err := parseItinerary(raw.Itineraries[1])
	if err != nil {
		return models.RoundTripOffer{}, err
	}

	totalText := raw.Price.GrandTotal
	if totalText == "" {
		totalText = raw.Price.Total
	}
	total, err := strconv.ParseFloat(totalText, 64)
	if err != nil {
		return models.RoundTripOffer{}, errors.New("offer has no parseable price")
	}

	half := total / 2
	outbound.Price = &half
	inbound.Price = &half

	return models.RoundTripOffer{
		Outbound:   outbound,
		Inbound:    inbound,
		TotalPrice: total,
		OfferID:    raw.ID,
	}, nil
}

func parseItinerary(itin itinerary) (models.FlightOffer, error) {
	if len(itin.Segments) == 0 {
		return models.FlightOffer{}, errEmptyItinerary
	}

	first := itin.Segments[0]
	last := itin.Segments[len(itin.Segments)-1]

	departAt, err := localtime.Parse(first.Departure.At)
	if err != nil {
		return models.FlightOffer{}, err
	}
	arriveAt, err := localtime.Parse(last.Arrival.At)
	if err != nil {
		return models.FlightOffer{}, err
	}
	if arriveAt.Before(departAt) {
		return models.FlightOffer{}, errArrivalInverted
	}

	depHour, depMin, ok := localtime.HourMinute(first.Departure.At)
	if !ok {
		return models.FlightOffer{}, errors.New("departure timestamp has no clock component")
	}
	arrHour, arrMin, ok := localtime.HourMinute(last.Arrival.At)
	if !ok {
		return models.FlightOffer{}, errors.New("arrival timestamp has no clock component")
	}

	duration, err := localtime.ParseISODuration(itin.Duration)
	if err != nil {
		return models.FlightOffer{}, err
	}

	numbers := make([]string, 0, len(itin.Segments))
	carriers := make([]string, 0, len(itin.Segments))
	seen := make(map[string]bool, len(itin.Segments))
	for _, seg := range itin.Segments {
		numbers = append(numbers, seg.CarrierCode+seg.Number)
		if !seen[seg.CarrierCode] {
			seen[seg.CarrierCode] = true
			carriers = append(carriers, seg.CarrierCode)
		}
	}

	return models.FlightOffer{
		DepartureAt:     departAt,
		ArrivalAt:       arriveAt,
		DepartHour:      depHour,
		DepartMinute:    depMin,
		ArriveHour:      arrHour,
		ArriveMinute:    arrMin,
		DurationMinutes: duration,
		Stops:           len(itin.Segments) - 1,
		Carriers:        carriers,
		FlightNumbers:   strings.Join(numbers, ", "),
		DepartureOffset: localtime.Offset(first.Departure.At),
		ArrivalOffset:   localtime.Offset(last.Arrival.At),
	}, nil
}

// offerMatches applies the outbound departure window, the inbound local
// arrival window, the per-leg duration bounds, and the carrier allow-list.
func offerMatches(offer models.RoundTripOffer, q RoundTripQuery, earliestDepart, latestDepart int) bool {
	out, in := offer.Outbound, offer.Inbound

	if out.DepartHour < earliestDepart || out.DepartHour >= latestDepart {
		return false
	}
	if !arrivalWithinWindow(in.ArriveHour, in.ArriveMinute, q.EarliestArriveHour, q.LatestArriveHour) {
		return false
	}
	if !durationWithin(out.DurationMinutes, q.MinDurationMinutes, q.MaxDurationMinutes) {
		return false
	}
	if !durationWithin(in.DurationMinutes, q.MinDurationMinutes, q.MaxDurationMinutes) {
		return false
	}
	if len(q.Carriers) > 0 && !hasAllowedCarrier(out, q.Carriers) && !hasAllowedCarrier(in, q.Carriers) {
		return false
	}
	return true
}

// arrivalWithinWindow checks the inbound arrival clock against the window.
// The latest hour is inclusive only on the exact hour: 19:00 passes a
// 15-19 window, 19:01 does not. The earliest hour is inclusive outright.
func arrivalWithinWindow(hour, minute, earliest, latest int) bool {
	if hour < earliest || hour > latest {
		return false
	}
	if hour == latest && minute > 0 {
		return false
	}
	return true
}

func durationWithin(minutes, min, max int) bool {
	if min > 0 && minutes < min {
		return false
	}
	return minutes <= max
}

func hasAllowedCarrier(offer models.FlightOffer, allowed []string) bool {
	for _, carrier := range offer.Carriers {
		for _, a := range allowed {
			if strings.EqualFold(carrier, a) {
				return true
			}
		}
	}
	return false
}

// dedupeCheapest collapses offers describing the same logical flight pair
// (identical flight numbers and departure instants on both legs) down to the
// cheapest one. Providers frequently return the same pairing at several fare
// levels.
func dedupeCheapest(offers []models.RoundTripOffer) []models.RoundTripOffer {
	if len(offers) <= 1 {
		return offers
	}

	best := make(map[string]int, len(offers))
	result := make([]models.RoundTripOffer, 0, len(offers))
	for _, offer := range offers {
		key := offer.Outbound.FlightNumbers + "|" +
			offer.Outbound.DepartureAt.Format("2006-01-02T15:04") + "|" +
			offer.Inbound.FlightNumbers + "|" +
			offer.Inbound.DepartureAt.Format("2006-01-02T15:04")

		if idx, ok := best[key]; ok {
			if offer.TotalPrice < result[idx].TotalPrice {
				result[idx] = offer
			}
			continue
		}
		best[key] = len(result)
		result = append(result, offer)
	}
	return result
}
