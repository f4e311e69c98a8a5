package close_flow

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/Kelale-BookingPortal/internal/api/handlers"
	"github.com/m04kA/Kelale-BookingPortal/internal/infra/storage/flows"
)

const (
	msgFlowNotFound = "booking view not found"
	opCloseFlow     = "DELETE /flows/{id}"
)

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

// Handle DELETE /api/v1/flows/{flowId}
// Закрывает страницу бронирования; отправка в полете отменяется. Закрыть может только владелец
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	flow, err := h.registry.Get(flowID)
	if err != nil {
		h.logger.Warn("%s - Flow not found: flow_id=%s", opCloseFlow, flowID)
		handlers.RespondNotFound(w, msgFlowNotFound)
		return
	}
	if err := flow.Authorize(r.Context()); err != nil {
		handlers.RespondFlowError(w, h.logger, opCloseFlow, flowID, err)
		return
	}

	if err := h.registry.Remove(flowID); err != nil {
		if errors.Is(err, flows.ErrFlowNotFound) {
			h.logger.Warn("%s - Flow not found: flow_id=%s", opCloseFlow, flowID)
			handlers.RespondNotFound(w, msgFlowNotFound)
			return
		}
		h.logger.Error("%s - Failed to close flow: flow_id=%s, error=%v", opCloseFlow, flowID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Flow closed: flow_id=%s", opCloseFlow, flowID)
	w.WriteHeader(http.StatusNoContent)
}
