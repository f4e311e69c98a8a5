package toggle_seat

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Kelale-BookingPortal/internal/api/handlers"
)

const (
	msgFlowNotFound = "booking view not found"
	msgInvalidSeat  = "invalid seat number"
	opToggleSeat    = "POST /flows/{id}/seats/{seat}"
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

// Handle POST /api/v1/flows/{flowId}/seats/{seat}
// Выбор того же места повторно снимает выбор, другого - заменяет его
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	flowID := vars["flowId"]

	seat, err := strconv.Atoi(vars["seat"])
	if err != nil {
		h.logger.Warn("%s - Invalid seat number: %v", opToggleSeat, err)
		handlers.RespondBadRequest(w, msgInvalidSeat)
		return
	}

	flow, err := h.registry.Get(flowID)
	if err != nil {
		h.logger.Warn("%s - Flow not found: flow_id=%s", opToggleSeat, flowID)
		handlers.RespondNotFound(w, msgFlowNotFound)
		return
	}

	if err := flow.ToggleSeat(r.Context(), seat); err != nil {
		handlers.RespondFlowError(w, h.logger, opToggleSeat, flowID, err)
		return
	}

	view := flow.View()
	h.logger.Info("%s - flow_id=%s, selected seat=%d", opToggleSeat, flowID, view.SelectedSeat)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromView(view))
}
