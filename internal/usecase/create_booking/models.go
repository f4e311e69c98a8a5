package create_booking

import "github.com/m04kA/Kelale-BookingPortal/internal/domain"

// Request модель запроса на создание бронирования
type Request struct {
	Session       *domain.Session        // Сессия пользователя (nil - гость)
	Route         *domain.Route          // Загруженный маршрут
	Schedule      *domain.Schedule       // Выбранный рейс (nil - у маршрута нет рейсов)
	Seat          int                    // Выбранное место, 0 - не выбрано
	Source        domain.PassengerSource // Источник данных пассажира
	PaymentMethod domain.PaymentMethod   // Способ оплаты, пустой - по умолчанию
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID   string
	Status      domain.BookingStatus // Сразу после создания всегда pending
	PaymentCode string
	QR          string
	TotalPrice  float64
	Passenger   domain.Passenger
	Ticket      *domain.Ticket
}

// Исходы отправки для метрик
const (
	OutcomeSucceeded = "succeeded"
	OutcomeRejected  = "rejected"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
)
