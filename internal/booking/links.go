// Package booking generates third-party booking and search deep links.
// Everything here is string templating; no network calls.
package booking

import (
	"fmt"
	"net/url"
	"strings"
)

var airlineURLs = map[string]string{
	"AA": "https://www.aa.com/booking/search",
	"DL": "https://www.delta.com/flight-search/book-a-flight",
	"UA": "https://www.united.com/en/us/fsr/choose-flights",
	"WN": "https://www.southwest.com/air/booking/select.html",
	"B6": "https://www.jetblue.com/booking/flights",
	"AS": "https://www.alaskaair.com/shopping/flights/search",
	"NK": "https://www.spirit.com/book/flights",
	"F9": "https://www.flyfrontier.com/travel/flight-search/",
}

// GoogleFlightsURL builds a Google Flights search link. An empty returnDate
// produces a one-way search.
func GoogleFlightsURL(origin, destination, departureDate, returnDate string) string {
	var flights string
	if returnDate != "" {
		flights = fmt.Sprintf("%s.%s.%s*%s.%s.%s",
			origin, destination, departureDate, destination, origin, returnDate)
	} else {
		flights = fmt.Sprintf("%s.%s.%s", origin, destination, departureDate)
	}
	return "https://www.google.com/flights?hl=en#flt=" + flights + ";c:USD;e:1;sd:1;t:f"
}

// KayakURL builds a Kayak flight search link.
func KayakURL(origin, destination, departureDate, returnDate string) string {
	if returnDate != "" {
		return fmt.Sprintf("https://www.kayak.com/flights/%s-%s/%s/%s?sort=bestflight_a",
			origin, destination, departureDate, returnDate)
	}
	return fmt.Sprintf("https://www.kayak.com/flights/%s-%s/%s?sort=bestflight_a",
		origin, destination, departureDate)
}

// AirlineURL returns the carrier's own booking page when the carrier is
// recognized, otherwise a Google Flights search for the same itinerary.
func AirlineURL(carrier, origin, destination, departureDate, returnDate string) string {
	if u, ok := airlineURLs[strings.ToUpper(carrier)]; ok {
		return u
	}
	return GoogleFlightsURL(origin, destination, departureDate, returnDate)
}

// TuroURL builds a Turo car search for the destination city covering the
// ground-time window. Times are HH:MM local.
func TuroURL(city, pickupDate, returnDate, pickupTime, returnTime string) string {
	params := url.Values{}
	params.Set("location", city)
	params.Set("startDate", pickupDate)
	params.Set("startTime", pickupTime)
	params.Set("endDate", returnDate)
	params.Set("endTime", returnTime)
	return "https://turo.com/search?" + params.Encode()
}
