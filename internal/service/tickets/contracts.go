package tickets

import (
	"context"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
)

// TicketRepository интерфейс репозитория билетов
type TicketRepository interface {
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Ticket, error)
	GetByUserID(ctx context.Context, userID string) ([]*domain.Ticket, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
