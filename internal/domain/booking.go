package domain

import "time"

// BookingStatus статус бронирования. Меняется только backend'ом
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Label подпись статуса для отображения
func (s BookingStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending Payment"
	case StatusConfirmed:
		return "Confirmed"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// IsValid известный ли статус
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

// IsValid известный ли способ оплаты
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobile:
		return true
	}
	return false
}

// Booking бронирование, созданное backend'ом
type Booking struct {
	ID            string
	RouteID       string
	BusID         string
	ScheduleID    string
	Seats         []int
	Passengers    []Passenger
	PaymentMethod PaymentMethod
	TotalPrice    float64
	Status        BookingStatus
	PaymentCode   string
	CreatedAt     time.Time
}

// IsPending ожидает ли бронирование оплаты
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// BookingRequest данные для создания бронирования на backend'е
type BookingRequest struct {
	RouteID       string
	BusID         string
	ScheduleID    string
	Seats         []int
	PaymentMethod PaymentMethod
	Passengers    []Passenger
}

// BookingResult ответ backend'а на создание бронирования
type BookingResult struct {
	Booking     Booking
	QR          string // data URI или URL
	PaymentCode string
}

// Ticket выданный билет, сохраненный порталом после успешного бронирования
type Ticket struct {
	BookingID     string
	UserID        string
	RouteID       string
	ScheduleID    string
	BusID         string
	Seat          int
	PassengerName string
	PaymentMethod PaymentMethod
	TotalPrice    float64
	Status        BookingStatus
	PaymentCode   string
	QR            string
	Origin        string
	Destination   string
	DepartureTime *time.Time
	CreatedAt     time.Time
}
