package get_user_tickets

import (
	"context"

	"github.com/m04kA/Kelale-BookingPortal/internal/service/tickets/models"
)

type TicketService interface {
	GetUserTickets(ctx context.Context, userID string) (*models.TicketListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
