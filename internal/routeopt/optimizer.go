// Package routeopt orders ground stops around an airport to minimize total
// driving time while never arriving late to a fixed-time stop.
package routeopt

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/mwhitaker/daytripper/internal/models"
)

// MaxStops bounds the brute-force permutation search. Stop counts in
// practice are single digits; raising this past ~10 would require a
// heuristic search instead.
const MaxStops = 9

var (
	// ErrNoStops means there was nothing to plan.
	ErrNoStops = errors.New("no stops to plan")
	// ErrNoCoordinates means no stop could be placed on the map.
	ErrNoCoordinates = errors.New("no stop has coordinates")
	// ErrInfeasible means no visiting order reaches every fixed-time stop
	// on time.
	ErrInfeasible = errors.New("no ordering satisfies the fixed stop times")
	// ErrTooManyStops means the stop count exceeds the permutation bound.
	ErrTooManyStops = fmt.Errorf("more than %d stops with coordinates", MaxStops)
)

type Optimizer struct {
	matrix MatrixProvider
	now    func() time.Time
}

func NewOptimizer(matrix MatrixProvider) *Optimizer {
	return &Optimizer{matrix: matrix, now: time.Now}
}

// PlanOptimalRoute finds the minimum-driving-time visiting order for the
// stops, leaving from and returning to the airport. Stops without
// coordinates are excluded and returned so the caller can surface them.
// earliestStart is the first instant the route may leave the airport
// (typically the outbound arrival); zero means now. Ties between equal-cost
// orderings go to the first permutation encountered, so replanning the same
// input yields the same route.
func (o *Optimizer) PlanOptimalRoute(ctx context.Context, airport models.Coordinates, earliestStart time.Time, stops []models.Stop) (*models.RouteTimeline, []models.Stop, error) {
	if len(stops) == 0 {
		return nil, nil, ErrNoStops
	}

	var usable, skipped []models.Stop
	for _, stop := range stops {
		if stop.Coords == nil {
			skipped = append(skipped, stop)
			continue
		}
		usable = append(usable, stop)
	}
	if len(usable) == 0 {
		return nil, skipped, ErrNoCoordinates
	}
	if len(usable) > MaxStops {
		return nil, skipped, ErrTooManyStops
	}
	if earliestStart.IsZero() {
		earliestStart = o.now()
	}

	locations := make([]models.Coordinates, 0, len(usable)+1)
	locations = append(locations, airport)
	for _, stop := range usable {
		locations = append(locations, *stop.Coords)
	}

	// A matrix failure is a single route-planning failure; no partial
	// route comes back.
	matrix, err := o.matrix.TravelMatrix(ctx, locations)
	if err != nil {
		return nil, skipped, err
	}

	var (
		bestPerm  []int
		bestCost  = math.Inf(1)
		bestStart time.Time
	)
	consider := func(perm []int) {
		cost, startAt, feasible := evaluate(matrix, usable, perm, earliestStart)
		if feasible && cost < bestCost {
			bestCost = cost
			bestStart = startAt
			bestPerm = append(bestPerm[:0], perm...)
		}
	}

	if len(usable) == 1 {
		// Single stop: the direct out-and-back timeline, no permutation
		// search.
		consider([]int{0})
	} else {
		indices := make([]int, len(usable))
		for i := range indices {
			indices[i] = i
		}
		permute(indices, 0, consider)
	}

	if bestPerm == nil {
		return nil, skipped, ErrInfeasible
	}

	return buildTimeline(matrix, usable, bestPerm, bestStart), skipped, nil
}

// permute enumerates permutations of indices[k:] in a stable order,
// invoking visit for each complete arrangement.
func permute(indices []int, k int, visit func([]int)) {
	if k == len(indices) {
		visit(indices)
		return
	}
	for i := k; i < len(indices); i++ {
		indices[k], indices[i] = indices[i], indices[k]
		permute(indices, k+1, visit)
		indices[k], indices[i] = indices[i], indices[k]
	}
}

// evaluate walks one permutation with cumulative elapsed time from a free
// route-start variable. Each fixed-time stop pins the start to at most
// (fixed instant - cumulative offset); the schedule uses the latest start
// satisfying every pin, and is feasible when that start is not before
// earliestStart. Cost counts driving legs only.
func evaluate(matrix *Matrix, stops []models.Stop, perm []int, earliestStart time.Time) (cost float64, startAt time.Time, feasible bool) {
	elapsed := 0.0
	driving := 0.0
	startAt = time.Time{}

	prev := 0
	for _, idx := range perm {
		leg := matrix.DurationsSeconds[prev][idx+1]
		if leg == nil {
			return 0, time.Time{}, false
		}
		elapsed += *leg
		driving += *leg

		stop := stops[idx]
		if stop.FixedStart != nil {
			latest := stop.FixedStart.Add(-time.Duration(elapsed * float64(time.Second)))
			if startAt.IsZero() || latest.Before(startAt) {
				startAt = latest
			}
		}
		elapsed += float64(stop.DurationMinutes * 60)
		prev = idx + 1
	}

	back := matrix.DurationsSeconds[prev][0]
	if back == nil {
		return 0, time.Time{}, false
	}
	driving += *back

	if startAt.IsZero() {
		startAt = earliestStart
	} else if startAt.Before(earliestStart) {
		return 0, time.Time{}, false
	}
	return driving, startAt, true
}

func buildTimeline(matrix *Matrix, stops []models.Stop, perm []int, startAt time.Time) *models.RouteTimeline {
	const airportName = "airport"

	ordered := make([]models.Stop, 0, len(perm))
	legs := make([]models.RouteLeg, 0, len(perm)+1)

	drivingSeconds := 0
	distanceMeters := 0
	stopMinutes := 0

	prev := 0
	prevName := airportName
	for _, idx := range perm {
		stop := stops[idx]
		ordered = append(ordered, stop)
		stopMinutes += stop.DurationMinutes

		legs = append(legs, makeLeg(matrix, prev, idx+1, prevName, stop.Name))
		prev = idx + 1
		prevName = stop.Name
	}
	legs = append(legs, makeLeg(matrix, prev, 0, prevName, airportName))

	for _, leg := range legs {
		drivingSeconds += leg.DurationSeconds
		distanceMeters += leg.DistanceMeters
	}

	return &models.RouteTimeline{
		Stops:                ordered,
		Legs:                 legs,
		Start:                startAt,
		TotalDrivingSeconds:  drivingSeconds,
		TotalDistanceMeters:  distanceMeters,
		TotalStopMinutes:     stopMinutes,
		TotalDurationSeconds: drivingSeconds + stopMinutes*60,
	}
}

func makeLeg(matrix *Matrix, from, to int, fromName, toName string) models.RouteLeg {
	leg := models.RouteLeg{From: fromName, To: toName}
	if d := matrix.DurationsSeconds[from][to]; d != nil {
		leg.DurationSeconds = int(math.Round(*d))
	}
	if d := matrix.DistancesMeters[from][to]; d != nil {
		leg.DistanceMeters = int(math.Round(*d))
	}
	return leg
}
