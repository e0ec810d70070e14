package models

import "time"

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Destination is one candidate airport for a same-day trip. Metro codes
// (NYC, WAS, ...) are expanded into one Destination per physical airport
// before any provider call is made.
type Destination struct {
	Code      string       `json:"code"`
	City      string       `json:"city"`
	Coords    *Coordinates `json:"coords,omitempty"`
	UTCOffset *string      `json:"utc_offset,omitempty"`
}

// FlightOffer is one directional flight, possibly multi-segment.
//
// DepartureAt/ArrivalAt carry the provider's local wall-clock values parsed
// without timezone conversion; DepartHour/ArriveHour are extracted from the
// raw timestamp text (see internal/localtime). Price is nil until the
// round-trip total has been split across legs.
type FlightOffer struct {
	DepartureAt     time.Time `json:"departure_at"`
	ArrivalAt       time.Time `json:"arrival_at"`
	DepartHour      int       `json:"depart_hour"`
	DepartMinute    int       `json:"depart_minute"`
	ArriveHour      int       `json:"arrive_hour"`
	ArriveMinute    int       `json:"arrive_minute"`
	DurationMinutes int       `json:"duration_minutes"`
	Stops           int       `json:"stops"`
	Carriers        []string  `json:"carriers"`
	FlightNumbers   string    `json:"flight_numbers"`
	Price           *float64  `json:"price,omitempty"`
	DepartureOffset string    `json:"departure_offset,omitempty"`
	ArrivalOffset   string    `json:"arrival_offset,omitempty"`
}

// RoundTripOffer bundles the two legs of one priced provider offer.
// OfferID is the provider's identifier, opaque here, needed downstream
// for booking.
type RoundTripOffer struct {
	Outbound   FlightOffer `json:"outbound"`
	Inbound    FlightOffer `json:"inbound"`
	TotalPrice float64     `json:"total_price"`
	OfferID    string      `json:"offer_id"`
}
