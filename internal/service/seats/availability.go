package seats

import (
	"errors"
	"fmt"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
)

var (
	// ErrSeatNotSelectable возвращается, когда номер места вне списка доступных
	ErrSeatNotSelectable = errors.New("seats: seat is not selectable")

	// ErrSoldOut возвращается, когда свободных мест нет
	ErrSoldOut = errors.New("seats: no seats available")
)

// Resolver вычисляет вместимость и остаток мест рейса
type Resolver struct {
	defaultTotalSeats int
}

// NewResolver создает резолвер. defaultTotalSeats - последний шаг цепочки, если о автобусе ничего не известно
func NewResolver(defaultTotalSeats int) *Resolver {
	if defaultTotalSeats <= 0 {
		defaultTotalSeats = domain.DefaultTotalSeats
	}
	return &Resolver{defaultTotalSeats: defaultTotalSeats}
}

// Resolve проходит цепочки по порядку:
//
//	total:     schedule.bus.seats -> route.bus.seats -> default
//	available: schedule.seatsLeft -> route.availableSeats -> total
//
// seatsLeft = 0 означает "мест нет" и дальше по цепочке не проваливается
func (r *Resolver) Resolve(route *domain.Route, schedule *domain.Schedule) domain.SeatAvailability {
	var a domain.SeatAvailability

	switch {
	case schedule != nil && hasSeats(schedule.Bus):
		a.TotalSeats, _ = schedule.Bus.KnownSeats()
		a.TotalSource = domain.TotalFromScheduleBus
	case route != nil && hasSeats(route.Bus):
		a.TotalSeats, _ = route.Bus.KnownSeats()
		a.TotalSource = domain.TotalFromRouteBus
	default:
		a.TotalSeats = r.defaultTotalSeats
		a.TotalSource = domain.TotalFromDefault
	}

	switch {
	case schedule != nil && schedule.SeatsLeft != nil:
		a.AvailableSeats = *schedule.SeatsLeft
		a.AvailableSource = domain.AvailableFromScheduleSeatsLeft
	case route != nil && route.AvailableSeats != nil:
		a.AvailableSeats = *route.AvailableSeats
		a.AvailableSource = domain.AvailableFromRoute
	default:
		a.AvailableSeats = a.TotalSeats
		a.AvailableSource = domain.AvailableFromTotalSeats
	}

	if a.AvailableSeats < 0 {
		a.AvailableSeats = 0
	}

	return a
}

func hasSeats(bus *domain.Bus) bool {
	_, ok := bus.KnownSeats()
	return ok
}

// SeatMap плотная последовательность мест 1..TotalSeats с признаками доступности и выбора
func SeatMap(a domain.SeatAvailability, selected int) []domain.Seat {
	out := make([]domain.Seat, 0, a.TotalSeats)
	for n := 1; n <= a.TotalSeats; n++ {
		out = append(out, domain.Seat{
			Number:     n,
			Selectable: a.IsSelectable(n),
			Selected:   n == selected,
		})
	}
	return out
}

// CheckSelectable проверяет, что место можно бронировать
func CheckSelectable(a domain.SeatAvailability, seat int) error {
	if a.IsSoldOut() {
		return ErrSoldOut
	}
	if !a.IsSelectable(seat) {
		return fmt.Errorf("%w: seat %d (available %d of %d)", ErrSeatNotSelectable, seat, a.AvailableSeats, a.TotalSeats)
	}
	return nil
}
