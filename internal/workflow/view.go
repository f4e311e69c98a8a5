package workflow

import (
	"context"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
	"github.com/m04kA/Kelale-BookingPortal/internal/service/passengers"
	"github.com/m04kA/Kelale-BookingPortal/internal/service/seats"
)

// View полный снимок состояния для отображения. Снимок не связан с Flow и не меняется.
// Чтение продлевает жизнь страницы так же, как изменение
func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touch()
	return f.view()
}

// ViewFor снимок для вызывающего. Если страница закреплена за другой сессией, данные пассажира
// и реквизиты оплаты из снимка убираются
func (f *Flow) ViewFor(ctx context.Context) View {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := f.view()
	if f.owner != "" && f.principal(ctx) != f.owner {
		v.redact()
		return v
	}
	f.touch()
	return v
}

func (f *Flow) view() View {
	v := View{
		ID:               f.id,
		RouteID:          f.routeID,
		Load:             f.load,
		LoadError:        f.loadError,
		Route:            f.route,
		Schedule:         f.schedule,
		ScheduleFallback: f.scheduleFallback,
		NoSchedules:      f.load == LoadReady && f.schedule == nil,
		TripType:         f.tripType,
		DepartureDate:    copyTime(f.departureDate),
		ReturnDate:       copyTime(f.returnDate),
		FormShown:        f.formShown,
		Seats:            f.availability,
		SelectedSeat:     f.selection.Selected(),
		PaymentMethod:    f.payment,
		Request:          f.request,
		FailureReason:    f.failureReason,
		Closed:           f.closed,
	}

	if f.load == LoadReady {
		v.SeatMap = seats.SeatMap(f.availability, f.selection.Selected())
	}
	if f.route != nil && f.selection.HasSelection() {
		v.TotalPrice = f.route.Price * domain.SeatsPerBooking
	}

	if f.source != nil {
		v.PassengerMode = f.source.Kind()
		v.Passenger = f.passengerView()
	}

	if f.confirmation != nil {
		c := *f.confirmation
		v.Confirmation = &c
	}

	v.SubmitEnabled = !f.closed &&
		f.load == LoadReady &&
		f.schedule != nil &&
		f.formShown &&
		f.source != nil &&
		f.selection.HasSelection() &&
		!f.availability.IsSoldOut() &&
		(f.request == RequestIdle || f.request == RequestFailed)

	return v
}

func (f *Flow) passengerView() *PassengerView {
	var pv PassengerView
	switch src := f.source.(type) {
	case domain.ProfileSource:
		pv = PassengerView{
			FirstName:   src.User.FirstName,
			MiddleName:  src.User.MiddleName,
			LastName:    src.User.LastName,
			Phone:       src.User.PhoneNumber,
			Email:       src.User.Email,
			DateOfBirth: src.User.DateOfBirth,
			Gender:      src.User.Gender,
		}
	case domain.ManualSource:
		pv = PassengerView{
			FirstName:   src.Fields.FirstName,
			MiddleName:  src.Fields.MiddleName,
			LastName:    src.Fields.LastName,
			Phone:       src.Fields.Phone,
			DateOfBirth: src.Fields.DateOfBirth,
			Gender:      src.Fields.Gender,
		}
	}
	pv.FullName = domain.FullName(pv.FirstName, pv.MiddleName, pv.LastName)
	pv.Age = passengers.DerivedAge(pv.DateOfBirth, f.deps.Clock.Now())
	return &pv
}

// redact убирает персональные данные пассажира и реквизиты оплаты
func (v *View) redact() {
	v.Passenger = nil
	if v.Confirmation != nil {
		v.Confirmation = &Confirmation{
			Status:     v.Confirmation.Status,
			TotalPrice: v.Confirmation.TotalPrice,
			Seat:       v.Confirmation.Seat,
		}
	}
	v.SubmitEnabled = false
}
