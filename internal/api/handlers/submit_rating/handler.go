package submit_rating

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/Kelale-BookingPortal/internal/api/handlers"
	"github.com/m04kA/Kelale-BookingPortal/internal/api/middleware"
	"github.com/m04kA/Kelale-BookingPortal/internal/integrations/kelaleapi"
	rateRoute "github.com/m04kA/Kelale-BookingPortal/internal/usecase/rate_route"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgLoginRequired      = "please log in to rate this route"
	msgInvalidRouteID     = "invalid route id"
	msgRouteNotFound      = "Route not found"
	msgRatingFailed       = "Failed to submit rating. Please try again."
	msgInvalidRating      = "rating must be from 1 to 5, comment at most 1000 characters"
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

// Handle POST /api/v1/routes/{routeId}/ratings
// Создает или перезаписывает оценку пользователя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	routeID := mux.Vars(r)["routeId"]

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("POST /routes/{id}/ratings - Missing session: route_id=%s", routeID)
		handlers.RespondUnauthorized(w, msgLoginRequired)
		return
	}

	var req SubmitRatingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /routes/{id}/ratings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := h.useCase.Submit(r.Context(), &rateRoute.SubmitRequest{
		RouteID: routeID,
		Session: session,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, rateRoute.ErrAuthRequired):
			h.logger.Warn("POST /routes/{id}/ratings - Authentication required: route_id=%s", routeID)
			handlers.RespondUnauthorized(w, msgLoginRequired)

		case errors.Is(err, rateRoute.ErrInvalidRating):
			h.logger.Warn("POST /routes/{id}/ratings - Invalid rating: %v", err)
			handlers.RespondValidation(w, msgInvalidRating, err)

		case errors.Is(err, rateRoute.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRouteID)

		case errors.Is(err, rateRoute.ErrRouteNotFound):
			handlers.RespondNotFound(w, msgRouteNotFound)

		case errors.Is(err, rateRoute.ErrBackendRejected):
			msg, ok := kelaleapi.BackendMessage(err)
			if !ok {
				msg = msgRatingFailed
			}
			h.logger.Warn("POST /routes/{id}/ratings - Rejected by backend: route_id=%s, error=%v", routeID, err)
			handlers.RespondBadGateway(w, msg)

		default:
			h.logger.Error("POST /routes/{id}/ratings - Failed to submit rating: route_id=%s, error=%v", routeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /routes/{id}/ratings - Rating saved: route_id=%s, user_id=%s", routeID, session.UserID())
	w.WriteHeader(http.StatusNoContent)
}
