package update_flow

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/Kelale-BookingPortal/internal/api/handlers"
)

const (
	msgFlowNotFound       = "booking view not found"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date, expected YYYY-MM-DD"
	opUpdateFlow          = "PATCH /flows/{id}"
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

// Handle PATCH /api/v1/flows/{flowId}
// Тип поездки, даты, переход к форме, режим и данные пассажира, способ оплаты.
// Изменения применяются по порядку до первой ошибки; уже примененные остаются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	var req UpdateFlowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", opUpdateFlow, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	update, err := req.ToUpdate()
	if err != nil {
		h.logger.Warn("%s - Failed to parse request: %v", opUpdateFlow, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	flow, err := h.registry.Get(flowID)
	if err != nil {
		h.logger.Warn("%s - Flow not found: flow_id=%s", opUpdateFlow, flowID)
		handlers.RespondNotFound(w, msgFlowNotFound)
		return
	}

	if err := flow.Apply(r.Context(), update); err != nil {
		handlers.RespondFlowError(w, h.logger, opUpdateFlow, flowID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromView(flow.View()))
}
