package kelaleapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRouteNotFound возвращается, когда маршрут не найден
	ErrRouteNotFound = errors.New("kelaleapi: route not found")

	// ErrUnauthorized возвращается, когда backend отклонил токен
	ErrUnauthorized = errors.New("kelaleapi: unauthorized")

	// ErrNotFound возвращается на 404 от backend'а
	ErrNotFound = errors.New("kelaleapi: not found")

	// ErrInternal возвращается при внутренних ошибках клиента (сборка запроса, сеть)
	ErrInternal = errors.New("kelaleapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от backend'а
	ErrInvalidResponse = errors.New("kelaleapi client: invalid response")
)

// APIError ошибка, которую вернул backend. Message - текст из тела ответа (msg/message/error), если он был
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("kelaleapi: backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("kelaleapi: backend returned status %d: %s", e.StatusCode, e.Message)
}

// Is позволяет проверять APIError через errors.Is(err, ErrUnauthorized) и errors.Is(err, ErrNotFound)
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// BackendMessage достает текст ошибки backend'а из цепочки ошибок
func BackendMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
