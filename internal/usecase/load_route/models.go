package load_route

import "github.com/m04kA/Kelale-BookingPortal/internal/domain"

// Request модель запроса на загрузку маршрута
type Request struct {
	RouteID    string // ID маршрута (обязателен)
	ScheduleID string // ID рейса из query-параметра (опционально)
}

// Response маршрут с выбранным рейсом
type Response struct {
	Route *domain.Route
	// Schedule выбранный рейс. nil, если у маршрута нет рейсов
	Schedule *domain.Schedule
	// ScheduleFallback запрошенный рейс не найден, выбран первый рейс маршрута
	ScheduleFallback bool
	Seats            domain.SeatAvailability
}
