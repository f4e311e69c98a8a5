package get_user_tickets

import (
	"net/http"

	"github.com/m04kA/Kelale-BookingPortal/internal/api/handlers"
	"github.com/m04kA/Kelale-BookingPortal/internal/api/middleware"
)

const (
	msgLoginRequired           = "please log in to see your tickets"
	msgVerifiedSessionRequired = "tickets are available only for a verified session"
)

type Handler struct {
	service TicketService
	logger  Logger
}

func NewHandler(service TicketService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tickets
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /tickets - Missing session")
		handlers.RespondUnauthorized(w, msgLoginRequired)
		return
	}
	userID := session.OwnerID()
	if userID == "" {
		h.logger.Warn("GET /tickets - Session without verified owner")
		handlers.RespondForbidden(w, msgVerifiedSessionRequired)
		return
	}

	result, err := h.service.GetUserTickets(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /tickets - Failed to get tickets: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tickets - Tickets retrieved successfully: user_id=%s, count=%d", userID, len(result.Tickets))
	handlers.RespondJSON(w, http.StatusOK, result)
}
