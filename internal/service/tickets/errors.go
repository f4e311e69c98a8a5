package tickets

import "errors"

var (
	// ErrTicketNotFound возвращается, когда билет не найден
	ErrTicketNotFound = errors.New("tickets: ticket not found")

	// ErrAccessDenied возвращается, когда билет принадлежит другому пользователю
	ErrAccessDenied = errors.New("tickets: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("tickets: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("tickets: internal error")
)
