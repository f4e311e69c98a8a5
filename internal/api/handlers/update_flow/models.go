package update_flow

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
	"github.com/m04kA/Kelale-BookingPortal/internal/workflow"
)

// PassengerRequest поля ручной формы пассажира. Возраст не принимается: он вычисляется из даты рождения
type PassengerRequest struct {
	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"` // "2000-01-31"
	Gender      string `json:"gender"`
}

// UpdateFlowRequest HTTP request model. Поля применяются в порядке объявления, отсутствующие не меняются
type UpdateFlowRequest struct {
	TripType          *string           `json:"tripType,omitempty"`      // "one-way" | "round-trip"
	DepartureDate     *string           `json:"departureDate,omitempty"` // "2026-10-20"
	ReturnDate        *string           `json:"returnDate,omitempty"`
	ContinueToBooking bool              `json:"continueToBooking,omitempty"`
	PassengerMode     *string           `json:"passengerMode,omitempty"` // "profile" | "manual"
	Passenger         *PassengerRequest `json:"passenger,omitempty"`
	PaymentMethod     *string           `json:"paymentMethod,omitempty"` // "cash" | "card" | "mobile"
}

// ToUpdate конвертирует HTTP запрос в изменение страницы (с парсингом дат)
func (r *UpdateFlowRequest) ToUpdate() (workflow.Update, error) {
	var u workflow.Update

	if r.TripType != nil {
		t := workflow.TripType(strings.TrimSpace(*r.TripType))
		u.TripType = &t
	}

	if r.DepartureDate != nil {
		d, err := parseDate("departureDate", *r.DepartureDate)
		if err != nil {
			return workflow.Update{}, err
		}
		u.DepartureDate = &d
	}

	if r.ReturnDate != nil {
		d, err := parseDate("returnDate", *r.ReturnDate)
		if err != nil {
			return workflow.Update{}, err
		}
		u.ReturnDate = &d
	}

	u.ContinueBooking = r.ContinueToBooking

	if r.PassengerMode != nil {
		m := domain.PassengerSourceKind(strings.TrimSpace(*r.PassengerMode))
		u.PassengerMode = &m
	}

	if p := r.Passenger; p != nil {
		u.ManualPassenger = &domain.ManualFields{
			FirstName:   p.FirstName,
			MiddleName:  p.MiddleName,
			LastName:    p.LastName,
			Phone:       p.Phone,
			DateOfBirth: p.DateOfBirth,
			Gender:      domain.Gender(strings.ToLower(strings.TrimSpace(p.Gender))),
		}
	}

	if r.PaymentMethod != nil {
		m := domain.PaymentMethod(strings.TrimSpace(*r.PaymentMethod))
		u.PaymentMethod = &m
	}

	return u, nil
}

func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(domain.DateFormat, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}
