package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mwhitaker/daytripper/internal/airports"
	"github.com/mwhitaker/daytripper/internal/models"
	"github.com/mwhitaker/daytripper/internal/routeopt"
)

type RouteHandler struct {
	optimizer *routeopt.Optimizer
}

func NewRouteHandler(optimizer *routeopt.Optimizer) *RouteHandler {
	return &RouteHandler{optimizer: optimizer}
}

// Plan computes the minimum-driving-time stop ordering for a trip's ground
// window. Infeasibility and missing coordinates come back as distinct
// client errors; a matrix provider failure is a gateway error with no
// partial route.
func (h *RouteHandler) Plan(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.PlanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	airport := req.AirportCoords
	if airport == nil {
		airport = airports.Coords(req.Airport)
	}
	if airport == nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "unknown_airport",
			Message: "airport has no known coordinates; supply airport_coords",
			Code:    http.StatusBadRequest,
		})
	}

	timeline, skipped, err := h.optimizer.PlanOptimalRoute(ctx, *airport, req.Start, req.Stops)
	if err != nil {
		switch {
		case errors.Is(err, routeopt.ErrNoStops), errors.Is(err, routeopt.ErrTooManyStops):
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid_plan",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
		case errors.Is(err, routeopt.ErrNoCoordinates), errors.Is(err, routeopt.ErrInfeasible):
			return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
				Error:   "no_route",
				Message: err.Error(),
				Code:    http.StatusUnprocessableEntity,
			})
		default:
			return c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:   "matrix_error",
				Message: "Failed to fetch travel matrix: " + err.Error(),
				Code:    http.StatusBadGateway,
			})
		}
	}

	return c.JSON(http.StatusOK, models.PlanResponse{
		Timeline: timeline,
		Skipped:  skipped,
	})
}
