package routeopt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mwhitaker/daytripper/internal/models"
	"github.com/mwhitaker/daytripper/internal/ratelimit"
)

// Matrix holds pairwise travel metrics for an ordered location list.
// Entries are in seconds and meters; a nil entry means the pair is
// unreachable by road.
type Matrix struct {
	DurationsSeconds [][]*float64
	DistancesMeters  [][]*float64
}

// MatrixProvider returns the full pairwise travel matrix for an ordered
// location list. Index 0 is the airport by convention.
type MatrixProvider interface {
	TravelMatrix(ctx context.Context, locations []models.Coordinates) (*Matrix, error)
}

type ORSConfig struct {
	APIKey  string
	BaseURL string
	Profile string
	Timeout time.Duration
}

// ORSMatrixProvider fetches driving matrices from OpenRouteService.
type ORSMatrixProvider struct {
	cfg        ORSConfig
	httpClient *http.Client
	limiter    *ratelimit.ProviderLimiter
}

func NewORSMatrixProvider(cfg ORSConfig, limiter *ratelimit.ProviderLimiter) *ORSMatrixProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openrouteservice.org"
	}
	if cfg.Profile == "" {
		cfg.Profile = "driving-car"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &ORSMatrixProvider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
	}
}

type orsMatrixRequest struct {
	Locations [][]float64 `json:"locations"`
	Metrics   []string    `json:"metrics"`
}

type orsMatrixResponse struct {
	Durations [][]*float64 `json:"durations"`
	Distances [][]*float64 `json:"distances"`
}

func (p *ORSMatrixProvider) TravelMatrix(ctx context.Context, locations []models.Coordinates) (*Matrix, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx, "ors"); err != nil {
			return nil, err
		}
	}

	// ORS expects [lon, lat] pairs.
	coords := make([][]float64, len(locations))
	for i, loc := range locations {
		coords[i] = []float64{loc.Lng, loc.Lat}
	}

	payload, err := json.Marshal(orsMatrixRequest{
		Locations: coords,
		Metrics:   []string{"distance", "duration"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", p.cfg.BaseURL, p.cfg.Profile)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create matrix request: %w", err)
	}
	req.Header.Set("Authorization", p.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("matrix request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var mr orsMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Durations) != len(locations) || len(mr.Distances) != len(locations) {
		return nil, fmt.Errorf("matrix size mismatch: want %d rows, got durations=%d distances=%d",
			len(locations), len(mr.Durations), len(mr.Distances))
	}

	return &Matrix{
		DurationsSeconds: mr.Durations,
		DistancesMeters:  mr.Distances,
	}, nil
}
