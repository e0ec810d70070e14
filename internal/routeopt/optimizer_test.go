package routeopt

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mwhitaker/daytripper/internal/models"
)

type stubMatrixProvider struct {
	matrix *Matrix
	err    error
	calls  int
}

func (s *stubMatrixProvider) TravelMatrix(ctx context.Context, locations []models.Coordinates) (*Matrix, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if len(s.matrix.DurationsSeconds) != len(locations) {
		return nil, fmt.Errorf("stub matrix is %dx%d but got %d locations",
			len(s.matrix.DurationsSeconds), len(s.matrix.DurationsSeconds), len(locations))
	}
	return s.matrix, nil
}

// buildMatrix converts a plain grid into a Matrix, mapping -1 to nil
// (unreachable). Distances reuse the duration values scaled by ten.
func buildMatrix(grid [][]float64) *Matrix {
	durations := make([][]*float64, len(grid))
	distances := make([][]*float64, len(grid))
	for i, row := range grid {
		durations[i] = make([]*float64, len(row))
		distances[i] = make([]*float64, len(row))
		for j, v := range row {
			if v < 0 {
				continue
			}
			d := v
			m := v * 10
			durations[i][j] = &d
			distances[i][j] = &m
		}
	}
	return &Matrix{DurationsSeconds: durations, DistancesMeters: distances}
}

func coords(lat, lng float64) *models.Coordinates {
	return &models.Coordinates{Lat: lat, Lng: lng}
}

var testAirport = models.Coordinates{Lat: 35.2144, Lng: -80.9473}

// fourPointGrid is symmetric: index 0 is the airport, 1..3 are stops.
// The cheapest tours cost 1900 seconds of driving.
func fourPointGrid() [][]float64 {
	return [][]float64{
		{0, 600, 300, 900},
		{600, 0, 300, 400},
		{300, 300, 0, 800},
		{900, 400, 800, 0},
	}
}

func threeStops() []models.Stop {
	return []models.Stop{
		{Name: "brunch", Address: "1 Main St", DurationMinutes: 60, Coords: coords(35.1, -80.9)},
		{Name: "museum", Address: "2 Elm St", DurationMinutes: 90, Coords: coords(35.2, -80.8)},
		{Name: "park", Address: "3 Oak St", DurationMinutes: 45, Coords: coords(35.3, -80.7)},
	}
}

func TestPlanOptimalRouteMinimizesDriving(t *testing.T) {
	provider := &stubMatrixProvider{matrix: buildMatrix(fourPointGrid())}
	opt := NewOptimizer(provider)

	start := time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC)
	timeline, skipped, err := opt.PlanOptimalRoute(context.Background(), testAirport, start, threeStops())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("skipped %d stops, want none", len(skipped))
	}

	if timeline.TotalDrivingSeconds != 1900 {
		t.Fatalf("driving = %ds, want 1900", timeline.TotalDrivingSeconds)
	}
	if timeline.TotalDistanceMeters != 19000 {
		t.Fatalf("distance = %dm, want 19000", timeline.TotalDistanceMeters)
	}
	if timeline.TotalStopMinutes != 60+90+45 {
		t.Fatalf("stop minutes = %d, want 195", timeline.TotalStopMinutes)
	}
	if timeline.TotalDurationSeconds != 1900+195*60 {
		t.Fatalf("total duration = %ds, want %d", timeline.TotalDurationSeconds, 1900+195*60)
	}
	if !timeline.Start.Equal(start) {
		t.Fatalf("start = %v, want %v", timeline.Start, start)
	}

	if got := len(timeline.Legs); got != 4 {
		t.Fatalf("got %d legs, want 4", got)
	}
	if timeline.Legs[0].From != "airport" || timeline.Legs[3].To != "airport" {
		t.Fatalf("route must start and end at the airport, legs = %+v", timeline.Legs)
	}

	// No pairwise swap of the winning order may reduce the cost.
	order := append([]models.Stop(nil), timeline.Stops...)
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			swapped := append([]models.Stop(nil), order...)
			swapped[i], swapped[j] = swapped[j], swapped[i]
			if cost := tourCost(t, fourPointGrid(), threeStops(), swapped); cost < float64(timeline.TotalDrivingSeconds) {
				t.Fatalf("swap %d<->%d gives cost %f below %d", i, j, cost, timeline.TotalDrivingSeconds)
			}
		}
	}
}

// tourCost recomputes the driving cost of a stop order against the raw grid.
func tourCost(t *testing.T, grid [][]float64, all []models.Stop, order []models.Stop) float64 {
	t.Helper()
	index := make(map[string]int, len(all))
	for i, stop := range all {
		index[stop.Name] = i + 1
	}
	cost := 0.0
	prev := 0
	for _, stop := range order {
		next, ok := index[stop.Name]
		if !ok {
			t.Fatalf("unknown stop %q", stop.Name)
		}
		cost += grid[prev][next]
		prev = next
	}
	return cost + grid[prev][0]
}

func TestPlanOptimalRouteIsDeterministic(t *testing.T) {
	start := time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC)

	run := func() *models.RouteTimeline {
		provider := &stubMatrixProvider{matrix: buildMatrix(fourPointGrid())}
		timeline, _, err := NewOptimizer(provider).PlanOptimalRoute(context.Background(), testAirport, start, threeStops())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return timeline
	}

	first, second := run(), run()
	if len(first.Stops) != len(second.Stops) {
		t.Fatal("replanning changed the stop count")
	}
	for i := range first.Stops {
		if first.Stops[i].Name != second.Stops[i].Name {
			t.Fatalf("replanning changed the order: %q vs %q at %d",
				first.Stops[i].Name, second.Stops[i].Name, i)
		}
	}
}

func TestPlanOptimalRouteFixedTimePinsStart(t *testing.T) {
	grid := [][]float64{
		{0, 600},
		{600, 0},
	}
	fixed := time.Date(2025, 11, 21, 12, 0, 0, 0, time.UTC)
	earliest := time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC)

	stops := []models.Stop{
		{Name: "lunch", DurationMinutes: 60, Coords: coords(35.1, -80.9), FixedStart: &fixed},
	}

	provider := &stubMatrixProvider{matrix: buildMatrix(grid)}
	timeline, _, err := NewOptimizer(provider).PlanOptimalRoute(context.Background(), testAirport, earliest, stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Leave exactly one leg's drive before the reservation.
	want := fixed.Add(-600 * time.Second)
	if !timeline.Start.Equal(want) {
		t.Fatalf("start = %v, want %v", timeline.Start, want)
	}
}

func TestPlanOptimalRouteFixedTimeInfeasible(t *testing.T) {
	grid := [][]float64{
		{0, 600},
		{600, 0},
	}
	earliest := time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC)
	fixed := earliest.Add(100 * time.Second) // unreachable: the drive alone takes 600s

	stops := []models.Stop{
		{Name: "lunch", DurationMinutes: 60, Coords: coords(35.1, -80.9), FixedStart: &fixed},
	}

	provider := &stubMatrixProvider{matrix: buildMatrix(grid)}
	_, _, err := NewOptimizer(provider).PlanOptimalRoute(context.Background(), testAirport, earliest, stops)
	if !errors.Is(err, ErrInfeasible) {
		t.Fatalf("err = %v, want ErrInfeasible", err)
	}
}

func TestPlanOptimalRouteUnreachableStop(t *testing.T) {
	grid := [][]float64{
		{0, -1},
		{-1, 0},
	}
	stops := []models.Stop{
		{Name: "island", DurationMinutes: 30, Coords: coords(35.1, -80.9)},
	}

	provider := &stubMatrixProvider{matrix: buildMatrix(grid)}
	_, _, err := NewOptimizer(provider).PlanOptimalRoute(context.Background(), testAirport, time.Time{}, stops)
	if !errors.Is(err, ErrInfeasible) {
		t.Fatalf("err = %v, want ErrInfeasible", err)
	}
}

func TestPlanOptimalRouteSkipsStopsWithoutCoordinates(t *testing.T) {
	grid := [][]float64{
		{0, 300},
		{300, 0},
	}
	stops := []models.Stop{
		{Name: "mystery", DurationMinutes: 30},
		{Name: "cafe", DurationMinutes: 45, Coords: coords(35.1, -80.9)},
	}

	provider := &stubMatrixProvider{matrix: buildMatrix(grid)}
	timeline, skipped, err := NewOptimizer(provider).PlanOptimalRoute(context.Background(), testAirport, time.Time{}, stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(skipped) != 1 || skipped[0].Name != "mystery" {
		t.Fatalf("skipped = %+v, want the stop without coordinates", skipped)
	}
	if len(timeline.Stops) != 1 || timeline.Stops[0].Name != "cafe" {
		t.Fatalf("planned stops = %+v", timeline.Stops)
	}
	if timeline.TotalDrivingSeconds != 600 {
		t.Fatalf("driving = %ds, want 600", timeline.TotalDrivingSeconds)
	}
}

func TestPlanOptimalRouteInputErrors(t *testing.T) {
	provider := &stubMatrixProvider{matrix: buildMatrix(fourPointGrid())}
	opt := NewOptimizer(provider)

	if _, _, err := opt.PlanOptimalRoute(context.Background(), testAirport, time.Time{}, nil); !errors.Is(err, ErrNoStops) {
		t.Fatalf("err = %v, want ErrNoStops", err)
	}

	noCoords := []models.Stop{{Name: "a"}, {Name: "b"}}
	if _, _, err := opt.PlanOptimalRoute(context.Background(), testAirport, time.Time{}, noCoords); !errors.Is(err, ErrNoCoordinates) {
		t.Fatalf("err = %v, want ErrNoCoordinates", err)
	}

	many := make([]models.Stop, MaxStops+1)
	for i := range many {
		many[i] = models.Stop{Name: fmt.Sprintf("stop-%d", i), Coords: coords(35.0+float64(i)/100, -80.9)}
	}
	if _, _, err := opt.PlanOptimalRoute(context.Background(), testAirport, time.Time{}, many); !errors.Is(err, ErrTooManyStops) {
		t.Fatalf("err = %v, want ErrTooManyStops", err)
	}

	if provider.calls != 0 {
		t.Fatalf("matrix fetched %d times for invalid input, want 0", provider.calls)
	}
}

func TestPlanOptimalRouteMatrixFailure(t *testing.T) {
	provider := &stubMatrixProvider{err: errors.New("upstream down")}
	stops := []models.Stop{{Name: "cafe", DurationMinutes: 45, Coords: coords(35.1, -80.9)}}

	_, _, err := NewOptimizer(provider).PlanOptimalRoute(context.Background(), testAirport, time.Time{}, stops)
	if err == nil || errors.Is(err, ErrInfeasible) {
		t.Fatalf("err = %v, want the provider failure surfaced", err)
	}
}
