package get_route_ratings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/Kelale-BookingPortal/internal/api/handlers"
	"github.com/m04kA/Kelale-BookingPortal/internal/api/middleware"
	rateRoute "github.com/m04kA/Kelale-BookingPortal/internal/usecase/rate_route"
)

const (
	msgInvalidRouteID = "invalid route id"
	msgRouteNotFound  = "Route not found"
	msgLoadFailed     = "Failed to load ratings. Please try again."
)

type Handler struct {
	useCase RatingUseCase
	logger  Logger
}

func NewHandler(useCase RatingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/routes/{routeId}/ratings
// Для вошедшего пользователя в ответ добавляется его собственная оценка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	routeID := mux.Vars(r)["routeId"]
	session, _ := middleware.GetSession(r.Context())

	result, err := h.useCase.Get(r.Context(), &rateRoute.GetRequest{RouteID: routeID, Session: session})
	if err != nil {
		switch {
		case errors.Is(err, rateRoute.ErrInvalidInput):
			h.logger.Warn("GET /routes/{id}/ratings - Invalid route ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRouteID)

		case errors.Is(err, rateRoute.ErrRouteNotFound):
			h.logger.Warn("GET /routes/{id}/ratings - Route not found: route_id=%s", routeID)
			handlers.RespondNotFound(w, msgRouteNotFound)

		default:
			h.logger.Error("GET /routes/{id}/ratings - Failed to get ratings: route_id=%s, error=%v", routeID, err)
			handlers.RespondBadGateway(w, msgLoadFailed)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(routeID, result))
}
