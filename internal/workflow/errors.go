package workflow

import "errors"

var (
	// ErrFlowClosed возвращается после Close: страница закрыта, состояние больше не меняется
	ErrFlowClosed = errors.New("workflow: flow is closed")

	// ErrNotLoaded возвращается, пока маршрут не загружен (или загрузка не удалась)
	ErrNotLoaded = errors.New("workflow: route is not loaded")

	// ErrRouteNotFound возвращается, когда маршрут не найден
	ErrRouteNotFound = errors.New("workflow: route not found")

	// ErrLoadFailed возвращается при сетевой ошибке загрузки маршрута
	ErrLoadFailed = errors.New("workflow: failed to load route")

	// ErrNoSchedule возвращается для операций бронирования, когда у маршрута нет рейсов
	ErrNoSchedule = errors.New("workflow: no schedules available")

	// ErrDateInPast возвращается при выборе даты раньше сегодняшней
	ErrDateInPast = errors.New("workflow: date is in the past")

	// ErrReturnBeforeDeparture возвращается, когда дата возвращения раньше даты отправления
	ErrReturnBeforeDeparture = errors.New("workflow: return date is before departure date")

	// ErrNotRoundTrip возвращается при выборе даты возвращения для поездки в одну сторону
	ErrNotRoundTrip = errors.New("workflow: return date is only available for round trips")

	// ErrDepartureDateRequired возвращается при переходе к бронированию без даты отправления
	ErrDepartureDateRequired = errors.New("workflow: departure date is required")

	// ErrBookingFormNotShown возвращается при отправке до перехода к форме бронирования
	ErrBookingFormNotShown = errors.New("workflow: continue to booking first")

	// ErrAuthRequired возвращается, когда операции нужна сессия пользователя
	ErrAuthRequired = errors.New("workflow: authentication required")

	// ErrNotFlowOwner возвращается, когда страница закреплена за другой сессией
	ErrNotFlowOwner = errors.New("workflow: booking view belongs to another session")

	// ErrNotManualMode возвращается при редактировании полей пассажира вне ручного режима
	ErrNotManualMode = errors.New("workflow: passenger is not in manual mode")

	// ErrSeatNotSelected возвращается при отправке без выбранного места
	ErrSeatNotSelected = errors.New("workflow: seat is not selected")

	// ErrSeatNotSelectable возвращается при выборе недоступного места
	ErrSeatNotSelectable = errors.New("workflow: seat is not selectable")

	// ErrInvalidPassenger возвращается, когда данные пассажира не прошли валидацию
	ErrInvalidPassenger = errors.New("workflow: invalid passenger data")

	// ErrInvalidInput возвращается при некорректных значениях (тип поездки, способ оплаты)
	ErrInvalidInput = errors.New("workflow: invalid input data")

	// ErrSubmissionInFlight возвращается, пока предыдущая отправка не завершилась
	ErrSubmissionInFlight = errors.New("workflow: booking submission is in flight")

	// ErrAlreadyBooked возвращается после успешного бронирования
	ErrAlreadyBooked = errors.New("workflow: booking already created")

	// ErrSubmissionFailed возвращается, когда backend отказал или был недоступен. Причина - в FailureReason
	ErrSubmissionFailed = errors.New("workflow: booking submission failed")

	// ErrSubmissionCancelled возвращается, когда отправка отменена
	ErrSubmissionCancelled = errors.New("workflow: booking submission cancelled")
)
