package models

import "time"

// Stop is one planned ground stop. FixedStart, when set, is a real-world
// instant the stop must not start after (an appointment). The optimizer
// treats Stops as input and never mutates them.
type Stop struct {
	Name            string       `json:"name"`
	Address         string       `json:"address,omitempty"`
	DurationMinutes int          `json:"duration_minutes"`
	Coords          *Coordinates `json:"coords,omitempty"`
	FixedStart      *time.Time   `json:"fixed_start,omitempty"`
}

// RouteLeg is one driving segment of a planned route.
type RouteLeg struct {
	From            string `json:"from"`
	To              string `json:"to"`
	DurationSeconds int    `json:"duration_seconds"`
	DistanceMeters  int    `json:"distance_meters"`
}

// RouteTimeline is the optimizer's output: stops in visiting order plus the
// driving legs airport -> first stop -> ... -> airport.
type RouteTimeline struct {
	Stops                []Stop     `json:"stops"`
	Legs                 []RouteLeg `json:"legs"`
	Start                time.Time  `json:"start"`
	TotalDrivingSeconds  int        `json:"total_driving_seconds"`
	TotalDistanceMeters  int        `json:"total_distance_meters"`
	TotalStopMinutes     int        `json:"total_stop_minutes"`
	TotalDurationSeconds int        `json:"total_duration_seconds"`
}

// PlanRequest is the route-planning API payload. Airport resolves through
// the static airport table when AirportCoords is not supplied. Start is the
// earliest instant the route may leave the airport (typically the outbound
// arrival time); zero means now.
type PlanRequest struct {
	Airport       string       `json:"airport"`
	AirportCoords *Coordinates `json:"airport_coords,omitempty"`
	Start         time.Time    `json:"start,omitempty"`
	Stops         []Stop       `json:"stops"`
}
