package workflow

import (
	"context"
	"time"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
	"github.com/m04kA/Kelale-BookingPortal/internal/usecase/create_booking"
	"github.com/m04kA/Kelale-BookingPortal/internal/usecase/load_route"
)

// RouteLoader загрузка маршрута с выбором рейса
type RouteLoader interface {
	Execute(ctx context.Context, req *load_route.Request) (*load_route.Response, error)
}

// BookingSubmitter создание бронирования
type BookingSubmitter interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Dependencies общие зависимости всех страниц бронирования
type Dependencies struct {
	Loader               RouteLoader
	Submitter            BookingSubmitter
	Sessions             domain.SessionProvider
	DefaultPaymentMethod domain.PaymentMethod
	Clock                Clock
	Logger               Logger
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func (d Dependencies) withDefaults() Dependencies {
	if d.Clock == nil {
		d.Clock = systemClock{}
	}
	if d.Logger == nil {
		d.Logger = nopLogger{}
	}
	if d.Sessions == nil {
		d.Sessions = domain.StaticSession{}
	}
	if !d.DefaultPaymentMethod.IsValid() {
		d.DefaultPaymentMethod = domain.DefaultPaymentMethod
	}
	return d
}
