package create_booking

import (
	"errors"

	"github.com/m04kA/Kelale-BookingPortal/internal/integrations/kelaleapi"
)

var (
	// ErrAuthRequired возвращается, когда пользователь не вошел (или backend отклонил токен)
	ErrAuthRequired = errors.New("create_booking: authentication required")

	// ErrSeatNotSelected возвращается, когда место не выбрано
	ErrSeatNotSelected = errors.New("create_booking: seat is not selected")

	// ErrNoSchedule возвращается, когда у маршрута нет рейса
	ErrNoSchedule = errors.New("create_booking: no schedules available")

	// ErrSeatNotAvailable возвращается, когда выбранное место недоступно (в том числе мест нет совсем)
	ErrSeatNotAvailable = errors.New("create_booking: seat is not available")

	// ErrInvalidPassenger возвращается, когда данные пассажира не прошли валидацию
	ErrInvalidPassenger = errors.New("create_booking: invalid passenger data")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrBackendRejected возвращается, когда backend отказал в создании бронирования
	ErrBackendRejected = errors.New("create_booking: booking rejected by backend")

	// ErrCancelled возвращается, когда отправка отменена (пользователь ушел со страницы)
	ErrCancelled = errors.New("create_booking: submission cancelled")

	// ErrInternal возвращается при сетевых и внутренних ошибках
	ErrInternal = errors.New("create_booking: internal error")
)

// GenericFailureMessage текст для пользователя, когда backend не прислал причину
const GenericFailureMessage = "Booking failed. Please try again."

// FailureMessage текст ошибки отправки для пользователя: сообщение backend'а как есть, иначе общий текст
func FailureMessage(err error) string {
	if msg, ok := kelaleapi.BackendMessage(err); ok {
		return msg
	}
	return GenericFailureMessage
}
