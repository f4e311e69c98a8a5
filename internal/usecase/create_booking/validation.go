package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
	"github.com/m04kA/Kelale-BookingPortal/internal/service/passengers"
)

// validateRequest проверяет предусловия отправки в порядке: вход, место, рейс, пассажир.
// Все проверки выполняются до сетевого вызова
func validateRequest(req *Request, now time.Time) (domain.Passenger, error) {
	if req.Session == nil || req.Session.Token == "" {
		return domain.Passenger{}, ErrAuthRequired
	}

	if req.Route == nil || req.Route.ID == "" {
		return domain.Passenger{}, fmt.Errorf("%w: route is required", ErrInvalidInput)
	}

	if req.PaymentMethod != "" && !req.PaymentMethod.IsValid() {
		return domain.Passenger{}, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	if req.Seat <= 0 {
		return domain.Passenger{}, ErrSeatNotSelected
	}

	if req.Schedule == nil {
		return domain.Passenger{}, ErrNoSchedule
	}

	passenger, err := passengers.ToPassengerRecord(req.Source, req.Seat, now)
	if err != nil {
		return domain.Passenger{}, fmt.Errorf("%w: %w", ErrInvalidPassenger, err)
	}

	return passenger, nil
}

// buildTicket денормализует результат бронирования в запись билета
func buildTicket(req *Request, passenger domain.Passenger, result *domain.BookingResult, method domain.PaymentMethod, total float64) *domain.Ticket {
	t := &domain.Ticket{
		BookingID:     result.Booking.ID,
		UserID:        req.Session.OwnerID(),
		RouteID:       req.Route.ID,
		ScheduleID:    req.Schedule.ID,
		BusID:         req.Schedule.BusID(),
		Seat:          passenger.Seat,
		PassengerName: passenger.FullName(),
		PaymentMethod: method,
		TotalPrice:    total,
		Status:        result.Booking.Status,
		PaymentCode:   result.PaymentCode,
		QR:            result.QR,
		Origin:        req.Route.From,
		Destination:   req.Route.To,
	}
	if !req.Schedule.DepartureTime.IsZero() {
		departure := req.Schedule.DepartureTime
		t.DepartureTime = &departure
	}
	return t
}
