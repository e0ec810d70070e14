package models

// SearchCriteria describes one same-day trip search. Hours are local 24h
// clock values at the origin airport; durations are minutes.
type SearchCriteria struct {
	Origin             string   `json:"origin"`
	Date               string   `json:"date"`
	ReturnDate         *string  `json:"return_date,omitempty"`
	EarliestDepartHour int      `json:"earliest_depart_hour"`
	LatestDepartHour   int      `json:"latest_depart_hour"`
	EarliestArriveHour int      `json:"earliest_arrive_hour"`
	LatestArriveHour   int      `json:"latest_arrive_hour"`
	MinGroundTimeHours float64  `json:"min_ground_time_hours"`
	MinDurationMinutes int      `json:"min_duration_minutes"`
	MaxDurationMinutes int      `json:"max_duration_minutes"`
	MaxConnections     int      `json:"max_connections"`
	Destinations       []string `json:"destinations,omitempty"`
	Carriers           []string `json:"carriers,omitempty"`
}

func (c *SearchCriteria) Validate() error {
	if c.Origin == "" {
		return ErrMissingOrigin
	}
	if c.Date == "" {
		return ErrMissingDate
	}
	if c.LatestDepartHour == 0 {
		c.LatestDepartHour = 9
	}
	if c.EarliestArriveHour == 0 {
		c.EarliestArriveHour = 15
	}
	if c.LatestArriveHour == 0 {
		c.LatestArriveHour = 19
	}
	if c.MinGroundTimeHours == 0 {
		c.MinGroundTimeHours = 3.0
	}
	if c.MaxDurationMinutes == 0 {
		c.MaxDurationMinutes = 204
	}
	if c.EarliestDepartHour > c.LatestDepartHour {
		return ErrInvalidDepartWindow
	}
	if c.EarliestArriveHour > c.LatestArriveHour {
		return ErrInvalidArriveWindow
	}
	if c.MinDurationMinutes > c.MaxDurationMinutes {
		return ErrInvalidDurationRange
	}
	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin        ValidationError = "origin is required"
	ErrMissingDate          ValidationError = "date is required"
	ErrInvalidDepartWindow  ValidationError = "earliest departure hour must not exceed latest departure hour"
	ErrInvalidArriveWindow  ValidationError = "earliest arrival hour must not exceed latest arrival hour"
	ErrInvalidDurationRange ValidationError = "minimum duration must not exceed maximum duration"
)
