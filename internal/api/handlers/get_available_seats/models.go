package get_available_seats

import (
	"github.com/m04kA/Kelale-BookingPortal/internal/api/handlers"
	"github.com/m04kA/Kelale-BookingPortal/internal/service/seats"
	loadRoute "github.com/m04kA/Kelale-BookingPortal/internal/usecase/load_route"
)

// AvailableSeatsResponse HTTP response model
type AvailableSeatsResponse struct {
	RouteID          string                     `json:"routeId"`
	Price            float64                    `json:"price"`
	Schedule         *handlers.ScheduleResponse `json:"schedule,omitempty"`
	ScheduleFallback bool                       `json:"scheduleFallback"`
	NoSchedules      bool                       `json:"noSchedules"`
	Seats            handlers.SeatsResponse     `json:"seats"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *loadRoute.Response) *AvailableSeatsResponse {
	out := &AvailableSeatsResponse{
		RouteID:          resp.Route.ID,
		Price:            resp.Route.Price,
		Schedule:         handlers.FromDomainSchedule(resp.Schedule),
		ScheduleFallback: resp.ScheduleFallback,
		NoSchedules:      resp.Schedule == nil,
		Seats:            handlers.FromSeats(resp.Seats, nil),
	}
	// без рейса бронировать нечего, схема мест не строится
	if resp.Schedule != nil {
		out.Seats = handlers.FromSeats(resp.Seats, seats.SeatMap(resp.Seats, 0))
	}
	return out
}
