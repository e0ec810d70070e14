// Package trips turns matched round-trip offers into immutable Trip records
// and ranks assembled trips per destination.
package trips

import (
	"github.com/google/uuid"

	"github.com/mwhitaker/daytripper/internal/airports"
	"github.com/mwhitaker/daytripper/internal/booking"
	"github.com/mwhitaker/daytripper/internal/localtime"
	"github.com/mwhitaker/daytripper/internal/models"
	"github.com/mwhitaker/daytripper/pkg/currency"
)

// Assemble builds a Trip from one matched offer, or reports false when the
// ground time at the destination falls below the search minimum. Pure
// computation: formatting and link templating only, no network.
func Assemble(offer models.RoundTripOffer, dest models.Destination, criteria models.SearchCriteria) (models.Trip, bool) {
	ground := offer.Inbound.DepartureAt.Sub(offer.Outbound.ArrivalAt)
	groundHours := ground.Hours()
	if groundHours < criteria.MinGroundTimeHours {
		return models.Trip{}, false
	}
	groundMinutes := int(ground.Minutes())

	totalMinutes := offer.Outbound.DurationMinutes + groundMinutes + offer.Inbound.DurationMinutes
	totalCost := offer.TotalPrice

	outboundPrice := totalCost / 2
	if offer.Outbound.Price != nil {
		outboundPrice = *offer.Outbound.Price
	}
	returnPrice := totalCost / 2
	if offer.Inbound.Price != nil {
		returnPrice = *offer.Inbound.Price
	}

	returnDate := criteria.Date
	if criteria.ReturnDate != nil && *criteria.ReturnDate != "" {
		returnDate = *criteria.ReturnDate
	}

	origin := criteria.Origin
	city := dest.City
	if city == "" {
		city = airports.City(dest.Code)
	}

	arriveDest := localtime.FormatClock(offer.Outbound.ArrivalAt)
	departDest := localtime.FormatClock(offer.Inbound.DepartureAt)

	primaryCarrier := ""
	if len(offer.Outbound.Carriers) > 0 {
		primaryCarrier = offer.Outbound.Carriers[0]
	}

	trip := models.Trip{
		ID:          uuid.NewString(),
		Origin:      origin,
		Destination: dest.Code,
		City:        city,
		Date:        criteria.Date,
		ReturnDate:  returnDate,

		OutboundFlight:   offer.Outbound.FlightNumbers,
		OutboundStops:    offer.Outbound.Stops,
		DepartOrigin:     localtime.FormatClock(offer.Outbound.DepartureAt),
		ArriveDest:       arriveDest,
		OutboundDuration: localtime.FormatDuration(offer.Outbound.DurationMinutes),
		OutboundMinutes:  offer.Outbound.DurationMinutes,
		OutboundPrice:    outboundPrice,
		OutboundCarriers: offer.Outbound.Carriers,

		ReturnFlight:   offer.Inbound.FlightNumbers,
		ReturnStops:    offer.Inbound.Stops,
		DepartDest:     departDest,
		ArriveOrigin:   localtime.FormatClock(offer.Inbound.ArrivalAt),
		ReturnDuration: localtime.FormatDuration(offer.Inbound.DurationMinutes),
		ReturnMinutes:  offer.Inbound.DurationMinutes,
		ReturnPrice:    returnPrice,
		ReturnCarriers: offer.Inbound.Carriers,

		GroundTimeHours:     round2(groundHours),
		GroundTimeFormatted: localtime.FormatDuration(groundMinutes),
		TotalFlightCost:     totalCost,
		TotalFlightCostText: currency.FormatUSD(totalCost),
		TotalTripTime:       localtime.FormatDuration(totalMinutes),
		TotalTripMinutes:    totalMinutes,

		OfferID: offer.OfferID,

		OriginCoords: airports.Coords(origin),
		DestCoords:   dest.Coords,

		GoogleFlightsURL: booking.GoogleFlightsURL(origin, dest.Code, criteria.Date, returnDate),
		KayakURL:         booking.KayakURL(origin, dest.Code, criteria.Date, returnDate),
		AirlineURL:       booking.AirlineURL(primaryCarrier, origin, dest.Code, criteria.Date, returnDate),
		TuroURL:          booking.TuroURL(city, criteria.Date, returnDate, arriveDest, departDest),
	}
	if trip.DestCoords == nil {
		trip.DestCoords = airports.Coords(dest.Code)
	}

	return trip, true
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
