package domain

import (
	"errors"
	"strings"
	"time"
)

// Gender пол пассажира
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// IsValid известное ли значение
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Passenger данные пассажира на одно место. Клиентом не сохраняются
type Passenger struct {
	Seat        int
	FirstName   string
	MiddleName  string
	LastName    string
	Phone       string
	Email       string
	DateOfBirth string // YYYY-MM-DD
	Gender      Gender
	Age         *int // вычисляется из даты рождения
}

// FullName имя, отчество и фамилия через один пробел, пустые части пропускаются
func (p Passenger) FullName() string {
	return FullName(p.FirstName, p.MiddleName, p.LastName)
}

// FullName собирает полное имя из частей
func FullName(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, " ")
}

// PassengerSourceKind способ заполнения данных пассажира
type PassengerSourceKind string

const (
	SourceProfile PassengerSourceKind = "profile"
	SourceManual  PassengerSourceKind = "manual"
)

// PassengerSource данные пассажира: копия профиля (ProfileSource) или ручной ввод (ManualSource)
type PassengerSource interface {
	Kind() PassengerSourceKind
}

// ProfileSource пассажир - сам пользователь
type ProfileSource struct {
	User User
}

func (ProfileSource) Kind() PassengerSourceKind { return SourceProfile }

// ManualFields поля формы для бронирования на другого человека
type ManualFields struct {
	FirstName   string
	MiddleName  string
	LastName    string
	Phone       string
	DateOfBirth string // YYYY-MM-DD
	Gender      Gender
}

// ManualSource пассажир введен вручную
type ManualSource struct {
	Fields ManualFields
}

func (ManualSource) Kind() PassengerSourceKind { return SourceManual }

// ErrInvalidDate дата не распознана
var ErrInvalidDate = errors.New("domain: invalid date")

var dateLayouts = []string{
	DateFormat,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z",
}

// ParseDate разбирает дату в форматах YYYY-MM-DD и RFC3339, возвращает только дату (UTC полночь)
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// DateOnly календарная дата t в ее часовом поясе как UTC полночь, сравнимая с результатом ParseDate
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AgeAt количество полных лет на дату now: разница годов минус один, если день рождения в этом году еще не наступил
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}
