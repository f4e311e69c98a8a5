package get_route_ratings

import (
	"context"

	rateRoute "github.com/m04kA/Kelale-BookingPortal/internal/usecase/rate_route"
)

type RatingUseCase interface {
	Get(ctx context.Context, req *rateRoute.GetRequest) (*rateRoute.GetResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
