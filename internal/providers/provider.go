package providers

import (
	"context"

	"github.com/mwhitaker/daytripper/internal/models"
)

// RoundTripQuery is one per-destination provider search. Hour fields are
// local 24h clock bounds; MaxConnections 0 means nonstop only.
type RoundTripQuery struct {
	Origin             string
	Destination        string
	Date               string
	ReturnDate         string
	EarliestDepartHour int
	LatestDepartHour   int
	EarliestArriveHour int
	LatestArriveHour   int
	MinDurationMinutes int
	MaxDurationMinutes int
	MaxConnections     int
	Carriers           []string
}

// DestinationProvider discovers candidate destinations reachable nonstop
// from an origin within a flight-time ceiling.
type DestinationProvider interface {
	Name() string
	DiscoverDestinations(ctx context.Context, origin, date string, maxDurationHours float64) ([]models.Destination, error)
}

// OfferProvider returns priced round-trip offers for one destination.
// A nil slice with nil error means the destination has nothing viable
// (for example, a departure window that collapsed to nothing).
type OfferProvider interface {
	Name() string
	SearchRoundTrip(ctx context.Context, q RoundTripQuery) ([]models.RoundTripOffer, error)
}

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}
