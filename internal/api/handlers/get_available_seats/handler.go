package get_available_seats

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/Kelale-BookingPortal/internal/api/handlers"
	loadRoute "github.com/m04kA/Kelale-BookingPortal/internal/usecase/load_route"
)

const (
	msgInvalidRouteID = "invalid route id"
	msgRouteNotFound  = "Route not found"
	msgLoadFailed     = "Failed to load route. Please try again."
)

type Handler struct {
	useCase LoadRouteUseCase
	logger  Logger
}

func NewHandler(useCase LoadRouteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/routes/{routeId}/seats?scheduleId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	routeID := mux.Vars(r)["routeId"]
	scheduleID := r.URL.Query().Get("scheduleId")

	result, err := h.useCase.Execute(r.Context(), &loadRoute.Request{RouteID: routeID, ScheduleID: scheduleID})
	if err != nil {
		switch {
		case errors.Is(err, loadRoute.ErrInvalidInput):
			h.logger.Warn("GET /routes/{id}/seats - Invalid route ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRouteID)

		case errors.Is(err, loadRoute.ErrRouteNotFound):
			h.logger.Warn("GET /routes/{id}/seats - Route not found: route_id=%s", routeID)
			handlers.RespondNotFound(w, msgRouteNotFound)

		default:
			h.logger.Error("GET /routes/{id}/seats - Failed to load route: route_id=%s, error=%v", routeID, err)
			handlers.RespondBadGateway(w, msgLoadFailed)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /routes/{id}/seats - route_id=%s, available=%d/%d (%s/%s)",
		routeID, result.Seats.AvailableSeats, result.Seats.TotalSeats, result.Seats.AvailableSource, result.Seats.TotalSource)
	handlers.RespondJSON(w, http.StatusOK, response)
}
