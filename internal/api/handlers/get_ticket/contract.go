package get_ticket

import (
	"context"

	"github.com/m04kA/Kelale-BookingPortal/internal/service/tickets/models"
)

type TicketService interface {
	GetTicket(ctx context.Context, bookingID, userID string) (*models.TicketResponse, error)
	GetTicketPDF(ctx context.Context, bookingID, userID string) ([]byte, string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
