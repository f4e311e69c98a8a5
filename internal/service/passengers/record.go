package passengers

import (
	"strings"
	"time"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
	"github.com/m04kA/Kelale-BookingPortal/pkg/ptr"
)

const (
	msgRequired          = "is required"
	msgIncompleteProfile = "your profile has no first and last name: complete your profile or enter passenger details manually"
)

// ToPassengerRecord собирает запись пассажира для места seat из выбранного источника данных.
// Не зависит от состояния формы: все проверки выполняются здесь, до любого сетевого вызова
func ToPassengerRecord(source domain.PassengerSource, seat int, now time.Time) (domain.Passenger, error) {
	var errs ValidationErrors
	if seat < 1 {
		errs = append(errs, ValidationError{Field: FieldSeat, Message: "select a seat"})
	}

	var (
		p    domain.Passenger
		more ValidationErrors
	)
	switch src := source.(type) {
	case domain.ProfileSource:
		p, more = fromProfile(src.User, now)
	case *domain.ProfileSource:
		p, more = fromProfile(src.User, now)
	case domain.ManualSource:
		p, more = fromManual(src.Fields, now)
	case *domain.ManualSource:
		p, more = fromManual(src.Fields, now)
	default:
		more = ValidationErrors{{Field: FieldSource, Message: "choose whether to book for yourself or for someone else"}}
	}
	errs = append(errs, more...)

	if len(errs) > 0 {
		return domain.Passenger{}, errs
	}

	p.Seat = seat
	return p, nil
}

// fromProfile копирует данные профиля. Обязательны только имя и фамилия
func fromProfile(u domain.User, now time.Time) (domain.Passenger, ValidationErrors) {
	p := domain.Passenger{
		FirstName:   strings.TrimSpace(u.FirstName),
		MiddleName:  strings.TrimSpace(u.MiddleName),
		LastName:    strings.TrimSpace(u.LastName),
		Phone:       strings.TrimSpace(u.PhoneNumber),
		Email:       strings.TrimSpace(u.Email),
		DateOfBirth: strings.TrimSpace(u.DateOfBirth),
		Gender:      u.Gender,
	}

	var errs ValidationErrors
	if p.FirstName == "" {
		errs = append(errs, ValidationError{Field: FieldFirstName, Message: msgIncompleteProfile})
	}
	if p.LastName == "" {
		errs = append(errs, ValidationError{Field: FieldLastName, Message: msgIncompleteProfile})
	}
	if len(errs) > 0 {
		return domain.Passenger{}, errs
	}

	// дата рождения в профиле необязательна; если она есть, приводим к YYYY-MM-DD и считаем возраст
	if p.DateOfBirth != "" {
		if birth, err := domain.ParseDate(p.DateOfBirth); err == nil && !birth.After(domain.DateOnly(now)) {
			p.DateOfBirth = birth.Format(domain.DateFormat)
			p.Age = ptr.Ptr(domain.AgeAt(birth, now))
		}
	}
	return p, nil
}

// fromManual проверяет ручной ввод: имя, фамилия, дата рождения и пол обязательны
func fromManual(f domain.ManualFields, now time.Time) (domain.Passenger, ValidationErrors) {
	p := domain.Passenger{
		FirstName:   strings.TrimSpace(f.FirstName),
		MiddleName:  strings.TrimSpace(f.MiddleName),
		LastName:    strings.TrimSpace(f.LastName),
		Phone:       strings.TrimSpace(f.Phone),
		DateOfBirth: strings.TrimSpace(f.DateOfBirth),
		Gender:      domain.Gender(strings.ToLower(strings.TrimSpace(string(f.Gender)))),
	}

	var errs ValidationErrors
	if p.FirstName == "" {
		errs = append(errs, ValidationError{Field: FieldFirstName, Message: msgRequired})
	}
	if p.LastName == "" {
		errs = append(errs, ValidationError{Field: FieldLastName, Message: msgRequired})
	}

	switch birth, err := domain.ParseDate(p.DateOfBirth); {
	case p.DateOfBirth == "":
		errs = append(errs, ValidationError{Field: FieldDateOfBirth, Message: msgRequired})
	case err != nil:
		errs = append(errs, ValidationError{Field: FieldDateOfBirth, Message: "must be a date in YYYY-MM-DD format"})
	case birth.After(domain.DateOnly(now)):
		errs = append(errs, ValidationError{Field: FieldDateOfBirth, Message: "cannot be in the future"})
	default:
		p.DateOfBirth = birth.Format(domain.DateFormat)
		p.Age = ptr.Ptr(domain.AgeAt(birth, now))
	}

	switch {
	case p.Gender == "":
		errs = append(errs, ValidationError{Field: FieldGender, Message: msgRequired})
	case !p.Gender.IsValid():
		errs = append(errs, ValidationError{Field: FieldGender, Message: "must be one of male, female, other"})
	}

	if len(errs) > 0 {
		return domain.Passenger{}, errs
	}
	return p, nil
}

// DerivedAge возраст для отображения рядом с полем даты рождения. nil, если дата не распознана
func DerivedAge(dateOfBirth string, now time.Time) *int {
	birth, err := domain.ParseDate(dateOfBirth)
	if err != nil || birth.After(domain.DateOnly(now)) {
		return nil
	}
	return ptr.Ptr(domain.AgeAt(birth, now))
}
