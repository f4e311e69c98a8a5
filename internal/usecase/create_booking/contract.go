package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
)

// BookingClient интерфейс клиента Kelale API
type BookingClient interface {
	CreateBooking(ctx context.Context, token string, req domain.BookingRequest) (*domain.BookingResult, error)
}

// TicketRepository интерфейс репозитория выданных билетов
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) (bool, error)
}

// SeatResolver вычисляет вместимость и остаток мест рейса
type SeatResolver interface {
	Resolve(route *domain.Route, schedule *domain.Schedule) domain.SeatAvailability
}

// SubmissionRecorder считает отправки бронирований по исходу (метрики)
type SubmissionRecorder interface {
	IncBookingSubmission(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type nopRecorder struct{}

func (nopRecorder) IncBookingSubmission(string) {}
