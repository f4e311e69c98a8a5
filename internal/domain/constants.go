package domain

// Значения по умолчанию
const (
	// DefaultTotalSeats последний шаг цепочки определения вместимости, если о автобусе ничего не известно.
	// В рантайме берется из конфигурации (booking.default_total_seats)
	DefaultTotalSeats = 50

	DefaultPaymentMethod = PaymentCash
)

// Ограничения сценария
const (
	// SeatsPerBooking за одну отправку бронируется ровно одно место на одного пассажира
	SeatsPerBooking = 1

	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 1000
)

// Форматы дат
const (
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04"
)
