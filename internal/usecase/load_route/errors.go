package load_route

import "errors"

var (
	// ErrRouteNotFound возвращается, когда маршрут не найден
	ErrRouteNotFound = errors.New("load_route: route not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("load_route: invalid input data")

	// ErrInternal возвращается при сетевых и прочих ошибках загрузки
	ErrInternal = errors.New("load_route: internal error")
)
