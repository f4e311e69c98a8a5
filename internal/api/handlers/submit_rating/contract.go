package submit_rating

import (
	"context"

	rateRoute "github.com/m04kA/Kelale-BookingPortal/internal/usecase/rate_route"
)

type RatingUseCase interface {
	Submit(ctx context.Context, req *rateRoute.SubmitRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
