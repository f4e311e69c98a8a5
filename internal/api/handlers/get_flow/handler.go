package get_flow

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/Kelale-BookingPortal/internal/api/handlers"
)

const msgFlowNotFound = "booking view not found"

type Handler struct {
	registry FlowRegistry
	logger   Logger
}

func NewHandler(registry FlowRegistry, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

// Handle GET /api/v1/flows/{flowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	flow, err := h.registry.Get(flowID)
	if err != nil {
		h.logger.Warn("GET /flows/{id} - Flow not found: flow_id=%s", flowID)
		handlers.RespondNotFound(w, msgFlowNotFound)
		return
	}

	// Не владельцу страницы данные пассажира и реквизиты оплаты не отдаются
	handlers.RespondJSON(w, http.StatusOK, handlers.FromView(flow.ViewFor(r.Context())))
}
