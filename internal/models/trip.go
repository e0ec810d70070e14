package models

// Trip is one viable same-day round trip. It is built only after the
// ground-time and duration filters have passed and is never mutated
// afterwards; external collaborators may serialize it as-is.
type Trip struct {
	ID          string `json:"id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	City        string `json:"city"`
	Date        string `json:"date"`
	ReturnDate  string `json:"return_date,omitempty"`

	OutboundFlight   string   `json:"outbound_flight"`
	OutboundStops    int      `json:"outbound_stops"`
	DepartOrigin     string   `json:"depart_origin"`
	ArriveDest       string   `json:"arrive_destination"`
	OutboundDuration string   `json:"outbound_duration"`
	OutboundMinutes  int      `json:"outbound_minutes"`
	OutboundPrice    float64  `json:"outbound_price"`
	OutboundCarriers []string `json:"outbound_carriers"`

	ReturnFlight   string   `json:"return_flight"`
	ReturnStops    int      `json:"return_stops"`
	DepartDest     string   `json:"depart_destination"`
	ArriveOrigin   string   `json:"arrive_origin"`
	ReturnDuration string   `json:"return_duration"`
	ReturnMinutes  int      `json:"return_minutes"`
	ReturnPrice    float64  `json:"return_price"`
	ReturnCarriers []string `json:"return_carriers"`

	GroundTimeHours     float64 `json:"ground_time_hours"`
	GroundTimeFormatted string  `json:"ground_time"`
	TotalFlightCost     float64 `json:"total_flight_cost"`
	TotalFlightCostText string  `json:"total_flight_cost_text"`
	TotalTripTime       string  `json:"total_trip_time"`
	TotalTripMinutes    int     `json:"total_trip_minutes"`

	OfferID string `json:"offer_id,omitempty"`

	OriginCoords *Coordinates `json:"origin_coords,omitempty"`
	DestCoords   *Coordinates `json:"dest_coords,omitempty"`

	GoogleFlightsURL string `json:"google_flights_url"`
	KayakURL         string `json:"kayak_url"`
	AirlineURL       string `json:"airline_url"`
	TuroURL          string `json:"turo_url,omitempty"`

	// Set by ranking: 1 = cheapest option for its destination.
	RankForDestination int  `json:"rank_for_destination,omitempty"`
	BestOption         bool `json:"best_option,omitempty"`
}
