package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/singleflight"

	"github.com/mwhitaker/daytripper/internal/cache"
	"github.com/mwhitaker/daytripper/internal/models"
	"github.com/mwhitaker/daytripper/internal/search"
	"github.com/mwhitaker/daytripper/internal/trips"
)

type SearchHandler struct {
	orchestrator *search.Orchestrator
	cache        cache.Cache
	group        singleflight.Group
}

func NewSearchHandler(orchestrator *search.Orchestrator, c cache.Cache) *SearchHandler {
	return &SearchHandler{
		orchestrator: orchestrator,
		cache:        c,
	}
}

// Search runs the blocking variant: the full destination set is processed
// before the response is written. Identical concurrent searches are
// coalesced onto one provider run.
func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var criteria models.SearchCriteria
	if err := c.Bind(&criteria); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}
	if err := criteria.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if cached, found := h.cache.Get(ctx, criteria); found {
		return c.JSON(http.StatusOK, models.SearchResponse{
			Criteria: criteria,
			Metadata: models.SearchMetadata{
				TotalResults: len(cached),
				SearchTimeMs: time.Since(startTime).Milliseconds(),
				CacheHit:     true,
			},
			Trips: cached,
		})
	}

	v, err, _ := h.group.Do(cache.Key(criteria), func() (interface{}, error) {
		return h.orchestrator.SearchTrips(ctx, criteria)
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "search_error",
			Message: "Failed to search trips: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
	result := v.(*search.Result)

	ranked := trips.RankByDestination(result.Trips)
	_ = h.cache.Set(ctx, criteria, ranked)

	return c.JSON(http.StatusOK, models.SearchResponse{
		Criteria: criteria,
		Metadata: models.SearchMetadata{
			TotalResults:         len(ranked),
			DestinationsSearched: result.DestinationsSearched,
			DestinationsFailed:   result.DestinationsFailed,
			FailedDestinations:   result.FailedDestinations,
			SearchTimeMs:         time.Since(startTime).Milliseconds(),
		},
		Trips: ranked,
	})
}

// SearchStream emits trips as NDJSON, one Trip per line, flushed as each
// destination completes. Closing the connection cancels the batch loop at
// its next check point.
func (h *SearchHandler) SearchStream(c echo.Context) error {
	ctx := c.Request().Context()

	var criteria models.SearchCriteria
	if err := c.Bind(&criteria); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}
	if err := criteria.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "application/x-ndjson")
	resp.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(resp)
	for trip := range h.orchestrator.SearchTripsStream(ctx, criteria) {
		if err := enc.Encode(trip); err != nil {
			return err
		}
		resp.Flush()
	}
	return nil
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
