package passengers

import (
	"errors"
	"strings"
)

// ErrInvalidPassenger базовая ошибка валидации данных пассажира
var ErrInvalidPassenger = errors.New("passengers: invalid passenger data")

// Поля, которые могут не пройти валидацию
const (
	FieldSource      = "source"
	FieldSeat        = "seat"
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldDateOfBirth = "dateOfBirth"
	FieldGender      = "gender"
)

// ValidationError ошибка одного поля
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors все ошибки формы пассажира
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, v := range e {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return ErrInvalidPassenger.Error() + ": " + strings.Join(parts, "; ")
}

// Is позволяет проверять errors.Is(err, ErrInvalidPassenger)
func (e ValidationErrors) Is(target error) bool {
	return target == ErrInvalidPassenger
}

// Fields имена полей с ошибками
func (e ValidationErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for _, v := range e {
		out = append(out, v.Field)
	}
	return out
}

// AsValidationErrors извлекает список ошибок полей из err
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
