package rate_route

import (
	"context"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
)

// RatingClient интерфейс клиента Kelale API
type RatingClient interface {
	GetRouteRating(ctx context.Context, routeID string) (*domain.RouteRating, error)
	GetUserRating(ctx context.Context, token, routeID string) (*domain.UserRating, error)
	SubmitRating(ctx context.Context, token, routeID string, rating int, comment string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
