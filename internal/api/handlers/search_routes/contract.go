package search_routes

import (
	"context"

	searchRoutes "github.com/m04kA/Kelale-BookingPortal/internal/usecase/search_routes"
)

type SearchRoutesUseCase interface {
	Execute(ctx context.Context, req *searchRoutes.Request) (*searchRoutes.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
