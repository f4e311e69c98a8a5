package search_routes

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах поиска
	ErrInvalidInput = errors.New("search_routes: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("search_routes: internal error")
)
