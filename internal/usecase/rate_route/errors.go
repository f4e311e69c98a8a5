package rate_route

import "errors"

var (
	// ErrAuthRequired возвращается при попытке оценить маршрут без входа
	ErrAuthRequired = errors.New("rate_route: authentication required")

	// ErrInvalidRating возвращается, когда оценка вне диапазона 1..5 или комментарий слишком длинный
	ErrInvalidRating = errors.New("rate_route: invalid rating")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("rate_route: invalid input data")

	// ErrRouteNotFound возвращается, когда маршрут не найден
	ErrRouteNotFound = errors.New("rate_route: route not found")

	// ErrBackendRejected возвращается, когда backend отклонил оценку
	ErrBackendRejected = errors.New("rate_route: rating rejected by backend")

	// ErrInternal возвращается при сетевых и внутренних ошибках
	ErrInternal = errors.New("rate_route: internal error")
)
