package submit_booking

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/Kelale-BookingPortal/internal/api/handlers"
)

const (
	msgFlowNotFound = "booking view not found"
	opSubmit        = "POST /flows/{id}/submit"
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

// Handle POST /api/v1/flows/{flowId}/submit
// Отправка не привязана к жизни HTTP запроса: отменить ее может только закрытие страницы (DELETE /flows/{id})
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	flow, err := h.registry.Get(flowID)
	if err != nil {
		h.logger.Warn("%s - Flow not found: flow_id=%s", opSubmit, flowID)
		handlers.RespondNotFound(w, msgFlowNotFound)
		return
	}

	confirmation, err := flow.Submit(context.WithoutCancel(r.Context()))
	if err != nil {
		handlers.RespondFlowError(w, h.logger, opSubmit, flowID, err)
		return
	}

	h.logger.Info("%s - Booking created: flow_id=%s, booking_id=%s, status=%s",
		opSubmit, flowID, confirmation.BookingID, confirmation.Status)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromView(flow.View()))
}
