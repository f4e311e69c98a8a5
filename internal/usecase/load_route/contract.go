package load_route

import (
	"context"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
)

// RouteClient интерфейс клиента Kelale API
type RouteClient interface {
	GetRoute(ctx context.Context, routeID string) (*domain.Route, error)
}

// SeatResolver вычисляет вместимость и остаток мест рейса
type SeatResolver interface {
	Resolve(route *domain.Route, schedule *domain.Schedule) domain.SeatAvailability
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
