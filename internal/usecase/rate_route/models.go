package rate_route

import "github.com/m04kA/Kelale-BookingPortal/internal/domain"

// GetRequest запрос рейтинга маршрута
type GetRequest struct {
	RouteID string
	Session *domain.Session // nil - гость, своя оценка не запрашивается
}

// GetResponse агрегированный рейтинг и оценка текущего пользователя
type GetResponse struct {
	Aggregate domain.RouteRating
	Own       *domain.UserRating // nil - пользователь не оценивал маршрут или не вошел
}

// SubmitRequest создание или обновление оценки пользователя
type SubmitRequest struct {
	RouteID string
	Session *domain.Session
	Rating  int
	Comment string
}
