package search_routes

import (
	"context"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
)

// RouteSearcher интерфейс клиента Kelale API
type RouteSearcher interface {
	SearchRoutes(ctx context.Context, search domain.RouteSearch) ([]domain.Route, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
