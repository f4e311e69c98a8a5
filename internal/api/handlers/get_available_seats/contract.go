package get_available_seats

import (
	"context"

	loadRoute "github.com/m04kA/Kelale-BookingPortal/internal/usecase/load_route"
)

type LoadRouteUseCase interface {
	Execute(ctx context.Context, req *loadRoute.Request) (*loadRoute.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
