package search_routes

import (
	"errors"
	"net/http"

	"github.com/m04kA/Kelale-BookingPortal/internal/api/handlers"
	searchRoutes "github.com/m04kA/Kelale-BookingPortal/internal/usecase/search_routes"
)

const (
	msgInvalidDate  = "invalid date, expected YYYY-MM-DD"
	msgSearchFailed = "Failed to load routes. Please try again."
)

type Handler struct {
	useCase SearchRoutesUseCase
	logger  Logger
}

func NewHandler(useCase SearchRoutesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/routes?from=&to=&date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &searchRoutes.Request{
		From: q.Get("from"),
		To:   q.Get("to"),
		Date: q.Get("date"),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, searchRoutes.ErrInvalidInput):
			h.logger.Warn("GET /routes - Invalid search parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /routes - Failed to search routes: error=%v", err)
			handlers.RespondBadGateway(w, msgSearchFailed)
		}
		return
	}

	h.logger.Info("GET /routes - Found %d routes", len(result.Routes))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainRoutes(result.Routes))
}
