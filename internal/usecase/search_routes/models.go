package search_routes

import "github.com/m04kA/Kelale-BookingPortal/internal/domain"

// Request параметры поиска, как пришли из строки запроса
type Request struct {
	From string
	To   string
	Date string // YYYY-MM-DD, опционально
}

// Response найденные маршруты
type Response struct {
	Routes []domain.Route
}
