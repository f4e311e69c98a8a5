package get_ticket

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Kelale-BookingPortal/internal/api/handlers"
	"github.com/m04kA/Kelale-BookingPortal/internal/api/middleware"
	"github.com/m04kA/Kelale-BookingPortal/internal/service/tickets"
)

const (
	msgLoginRequired           = "please log in to see your tickets"
	msgVerifiedSessionRequired = "tickets are available only for a verified session"
	msgInvalidBookingID        = "invalid booking id"
	msgInvalidFormat           = "unsupported format, expected json or pdf"
	msgNotFound                = "ticket not found"
	msgForbidden               = "access denied"

	formatJSON = "json"
	formatPDF  = "pdf"
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

// Handle GET /api/v1/tickets/{bookingId}?format=json|pdf
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	if bookingID == "" {
		h.logger.Warn("GET /tickets/{id} - Empty booking ID")
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = formatJSON
	}
	if format != formatJSON && format != formatPDF {
		handlers.RespondBadRequest(w, msgInvalidFormat)
		return
	}

	// Билет видит только владелец: пользователь из проверенного токена
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /tickets/{id} - Missing session: booking_id=%s", bookingID)
		handlers.RespondUnauthorized(w, msgLoginRequired)
		return
	}
	userID := session.OwnerID()
	if userID == "" {
		h.logger.Warn("GET /tickets/{id} - Session without verified owner: booking_id=%s", bookingID)
		handlers.RespondForbidden(w, msgVerifiedSessionRequired)
		return
	}

	if format == formatPDF {
		content, filename, err := h.service.GetTicketPDF(r.Context(), bookingID, userID)
		if err != nil {
			h.respondError(w, bookingID, userID, err)
			return
		}

		h.logger.Info("GET /tickets/{id} - PDF rendered: booking_id=%s, user_id=%s, size=%d", bookingID, userID, len(content))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(content)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
		return
	}

	ticket, err := h.service.GetTicket(r.Context(), bookingID, userID)
	if err != nil {
		h.respondError(w, bookingID, userID, err)
		return
	}

	h.logger.Info("GET /tickets/{id} - Ticket retrieved successfully: booking_id=%s, user_id=%s", bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, ticket)
}

func (h *Handler) respondError(w http.ResponseWriter, bookingID, userID string, err error) {
	switch {
	case errors.Is(err, tickets.ErrTicketNotFound):
		h.logger.Warn("GET /tickets/{id} - Ticket not found: booking_id=%s", bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, tickets.ErrAccessDenied):
		h.logger.Warn("GET /tickets/{id} - Access denied: booking_id=%s, user_id=%s", bookingID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	default:
		h.logger.Error("GET /tickets/{id} - Failed to get ticket: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
