// Package search coordinates the per-destination round-trip searches:
// destination resolution, distance prioritization, rate-limited concurrent
// batches, and incremental Trip emission.
package search

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mwhitaker/daytripper/internal/airports"
	"github.com/mwhitaker/daytripper/internal/models"
	"github.com/mwhitaker/daytripper/internal/providers"
	"github.com/mwhitaker/daytripper/internal/trips"
)

// Config tunes the batch loop. BatchSize and BatchDelay are the sole
// backpressure mechanism against the offer provider's requests-per-minute
// budget; there is no retry on a rate-limited destination.
type Config struct {
	BatchSize    int
	BatchDelay   time.Duration
	StreamBuffer int
}

func DefaultConfig() Config {
	return Config{
		BatchSize:    5,
		BatchDelay:   time.Second,
		StreamBuffer: 32,
	}
}

type Orchestrator struct {
	discovery providers.DestinationProvider
	offers    providers.OfferProvider
	config    Config
}

// Result is what the blocking variant returns. Failed destinations are the
// ones whose provider call errored; they contribute zero trips but never
// abort the search.
type Result struct {
	Trips                []models.Trip
	DestinationsSearched int
	DestinationsFailed   int
	FailedDestinations   []string
}

func NewOrchestrator(discovery providers.DestinationProvider, offers providers.OfferProvider, config Config) *Orchestrator {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultConfig().BatchSize
	}
	if config.StreamBuffer <= 0 {
		config.StreamBuffer = DefaultConfig().StreamBuffer
	}
	return &Orchestrator{
		discovery: discovery,
		offers:    offers,
		config:    config,
	}
}

// SearchTripsStream emits Trips as destinations complete. The channel closes
// when every batch has been processed or the context is cancelled; a
// cancelled consumer stops new batches at the next check point but lets the
// in-flight batch finish without emitting.
func (o *Orchestrator) SearchTripsStream(ctx context.Context, criteria models.SearchCriteria) <-chan models.Trip {
	out := make(chan models.Trip, o.config.StreamBuffer)
	go func() {
		defer close(out)
		if err := o.run(ctx, criteria, out, nil); err != nil {
			log.Printf("[search] stream ended early: %v", err)
		}
	}()
	return out
}

// SearchTrips runs the identical batch loop but collects everything before
// returning. For the same criteria it produces the same set of trips as the
// streaming variant.
func (o *Orchestrator) SearchTrips(ctx context.Context, criteria models.SearchCriteria) (*Result, error) {
	out := make(chan models.Trip, o.config.StreamBuffer)
	result := &Result{}

	var runErr error
	go func() {
		defer close(out)
		runErr = o.run(ctx, criteria, out, result)
	}()

	for trip := range out {
		result.Trips = append(result.Trips, trip)
	}
	if runErr != nil {
		return nil, runErr
	}
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, criteria models.SearchCriteria, out chan<- models.Trip, result *Result) error {
	destinations, err := o.resolveDestinations(ctx, criteria)
	if err != nil {
		return err
	}
	if len(destinations) == 0 {
		// Zero reachable destinations is a valid empty answer.
		return nil
	}

	sortByDistance(criteria.Origin, destinations)

	var (
		mu       sync.Mutex
		searched int
		failed   []string
	)

	batches := partition(destinations, o.config.BatchSize)
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return err
		}

		var wg sync.WaitGroup
		for _, dest := range batch {
			wg.Add(1)
			go func(dest models.Destination) {
				defer wg.Done()

				offers, err := o.offers.SearchRoundTrip(ctx, buildQuery(criteria, dest))
				if err != nil {
					// A single destination's failure never aborts the search.
					log.Printf("[search] %s-%s failed: %v", criteria.Origin, dest.Code, err)
					mu.Lock()
					failed = append(failed, dest.Code)
					mu.Unlock()
					return
				}

				mu.Lock()
				searched++
				mu.Unlock()

				for _, offer := range offers {
					trip, ok := trips.Assemble(offer, dest, criteria)
					if !ok {
						continue
					}
					select {
					case out <- trip:
					case <-ctx.Done():
						return
					}
				}
			}(dest)
		}
		wg.Wait()

		if i < len(batches)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(o.config.BatchDelay):
			}
		}
	}

	if result != nil {
		mu.Lock()
		result.DestinationsSearched = searched
		result.DestinationsFailed = len(failed)
		result.FailedDestinations = failed
		mu.Unlock()
	}
	return nil
}

// resolveDestinations produces the concrete airport list: the caller's
// explicit destinations when given, otherwise discovery. Metro codes expand
// to their constituent airports either way, and the origin itself is
// dropped.
func (o *Orchestrator) resolveDestinations(ctx context.Context, criteria models.SearchCriteria) ([]models.Destination, error) {
	origin := strings.ToUpper(criteria.Origin)

	var candidates []models.Destination
	if len(criteria.Destinations) > 0 {
		for _, code := range criteria.Destinations {
			for _, airport := range airports.ExpandMetro(code) {
				candidates = append(candidates, models.Destination{
					Code:   airport,
					City:   airports.City(airport),
					Coords: airports.Coords(airport),
				})
			}
		}
	} else {
		discovered, err := o.discovery.DiscoverDestinations(ctx, origin, criteria.Date,
			float64(criteria.MaxDurationMinutes)/60)
		if err != nil {
			return nil, err
		}
		for _, dest := range discovered {
			expanded := airports.ExpandMetro(dest.Code)
			if len(expanded) == 1 && expanded[0] == dest.Code {
				candidates = append(candidates, dest)
				continue
			}
			for _, airport := range expanded {
				candidates = append(candidates, models.Destination{
					Code:      airport,
					City:      dest.City,
					Coords:    airports.Coords(airport),
					UTCOffset: dest.UTCOffset,
				})
			}
		}
	}

	seen := make(map[string]bool, len(candidates))
	resolved := candidates[:0]
	for _, dest := range candidates {
		if dest.Code == origin || seen[dest.Code] {
			continue
		}
		seen[dest.Code] = true
		resolved = append(resolved, dest)
	}
	return resolved, nil
}

// sortByDistance orders destinations by great-circle distance from the
// origin, nearest first, so quick-to-confirm destinations land in early
// batches. Destinations without coordinates keep their relative order at
// the end.
func sortByDistance(origin string, destinations []models.Destination) {
	originCoords := airports.Coords(origin)
	if originCoords == nil {
		return
	}

	distance := func(d models.Destination) float64 {
		if d.Coords == nil {
			return math.Inf(1)
		}
		return airports.HaversineKm(*originCoords, *d.Coords)
	}

	sort.SliceStable(destinations, func(i, j int) bool {
		return distance(destinations[i]) < distance(destinations[j])
	})
}

func partition(destinations []models.Destination, size int) [][]models.Destination {
	var batches [][]models.Destination
	for start := 0; start < len(destinations); start += size {
		end := start + size
		if end > len(destinations) {
			end = len(destinations)
		}
		batches = append(batches, destinations[start:end])
	}
	return batches
}

func buildQuery(criteria models.SearchCriteria, dest models.Destination) providers.RoundTripQuery {
	returnDate := ""
	if criteria.ReturnDate != nil {
		returnDate = *criteria.ReturnDate
	}
	return providers.RoundTripQuery{
		Origin:             strings.ToUpper(criteria.Origin),
		Destination:        dest.Code,
		Date:               criteria.Date,
		ReturnDate:         returnDate,
		EarliestDepartHour: criteria.EarliestDepartHour,
		LatestDepartHour:   criteria.LatestDepartHour,
		EarliestArriveHour: criteria.EarliestArriveHour,
		LatestArriveHour:   criteria.LatestArriveHour,
		MinDurationMinutes: criteria.MinDurationMinutes,
		MaxDurationMinutes: criteria.MaxDurationMinutes,
		MaxConnections:     criteria.MaxConnections,
		Carriers:           criteria.Carriers,
	}
}
