package workflow

import (
	"time"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
)

// LoadState состояние загрузки маршрута
type LoadState string

const (
	LoadLoading  LoadState = "loading"
	LoadReady    LoadState = "ready"
	LoadNotFound LoadState = "not_found"
	LoadFailed   LoadState = "failed"
)

// TripType тип поездки
type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
)

// IsValid известный ли тип поездки
func (t TripType) IsValid() bool {
	return t == TripOneWay || t == TripRoundTrip
}

// RequestState состояние отправки бронирования
type RequestState string

const (
	RequestIdle       RequestState = "idle"
	RequestSubmitting RequestState = "submitting"
	RequestSucceeded  RequestState = "succeeded"
	RequestFailed     RequestState = "failed"
)

// Confirmation результат успешного бронирования
type Confirmation struct {
	BookingID     string
	Status        domain.BookingStatus
	PaymentCode   string
	QR            string
	TotalPrice    float64
	Seat          int
	PassengerName string
	PaymentMethod domain.PaymentMethod
}

// PassengerView данные пассажира для отображения. Age вычисляется, не редактируется
type PassengerView struct {
	FirstName   string
	MiddleName  string
	LastName    string
	Phone       string
	Email       string
	DateOfBirth string
	Gender      domain.Gender
	FullName    string
	Age         *int
}

// View снимок состояния страницы бронирования
type View struct {
	ID      string
	RouteID string

	Load      LoadState
	LoadError string

	Route            *domain.Route
	Schedule         *domain.Schedule
	ScheduleFallback bool
	NoSchedules      bool

	TripType      TripType
	DepartureDate *time.Time
	ReturnDate    *time.Time
	FormShown     bool

	PassengerMode domain.PassengerSourceKind // пусто - режим не выбран
	Passenger     *PassengerView

	Seats         domain.SeatAvailability
	SeatMap       []domain.Seat
	SelectedSeat  int
	PaymentMethod domain.PaymentMethod
	TotalPrice    float64

	Request       RequestState
	FailureReason string
	SubmitEnabled bool
	Confirmation  *Confirmation

	Closed bool
}

// Update частичное изменение страницы одним запросом. Применяется по порядку полей
type Update struct {
	TripType        *TripType
	DepartureDate   *time.Time
	ReturnDate      *time.Time
	ContinueBooking bool
	PassengerMode   *domain.PassengerSourceKind
	ManualPassenger *domain.ManualFields
	PaymentMethod   *domain.PaymentMethod
}
