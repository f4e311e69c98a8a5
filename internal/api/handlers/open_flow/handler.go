package open_flow

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/Kelale-BookingPortal/internal/api/handlers"
	"github.com/m04kA/Kelale-BookingPortal/internal/infra/storage/flows"
	"github.com/m04kA/Kelale-BookingPortal/internal/workflow"
)

const (
	msgInvalidRouteID = "invalid route id"
	msgShuttingDown   = "service is shutting down"
)

type Handler struct {
	registry FlowRegistry
	deps     workflow.Dependencies
	logger   Logger
}

// NewHandler deps - зависимости, с которыми создается каждая страница бронирования
func NewHandler(registry FlowRegistry, deps workflow.Dependencies, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		deps:     deps,
		logger:   logger,
	}
}

// Handle POST /api/v1/routes/{routeId}/flows?scheduleId=
// Создает страницу бронирования и загружает маршрут. Страница создается и при ошибке загрузки:
// состояние загрузки (not_found, failed) возвращается в ответе
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	routeID := strings.TrimSpace(mux.Vars(r)["routeId"])
	if routeID == "" {
		h.logger.Warn("POST /routes/{id}/flows - Empty route ID")
		handlers.RespondBadRequest(w, msgInvalidRouteID)
		return
	}
	scheduleID := r.URL.Query().Get("scheduleId")

	flow, err := h.registry.Open(routeID, scheduleID, h.deps)
	if err != nil {
		if errors.Is(err, flows.ErrRegistryClosed) {
			handlers.RespondError(w, http.StatusServiceUnavailable, msgShuttingDown)
			return
		}
		h.logger.Error("POST /routes/{id}/flows - Failed to open flow: route_id=%s, error=%v", routeID, err)
		handlers.RespondInternalError(w)
		return
	}

	if err := flow.Load(r.Context()); err != nil {
		switch {
		case errors.Is(err, workflow.ErrRouteNotFound):
			h.logger.Warn("POST /routes/{id}/flows - Route not found: route_id=%s, flow_id=%s", routeID, flow.ID())
		default:
			h.logger.Error("POST /routes/{id}/flows - Failed to load route: route_id=%s, flow_id=%s, error=%v",
				routeID, flow.ID(), err)
		}
	} else {
		h.logger.Info("POST /routes/{id}/flows - Flow opened: route_id=%s, flow_id=%s", routeID, flow.ID())
	}

	w.Header().Set("Location", "/api/v1/flows/"+flow.ID())
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromView(flow.View()))
}
