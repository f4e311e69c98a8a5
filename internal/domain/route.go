package domain

import "time"

// Company компания-перевозчик, владелец маршрута
type Company struct {
	ID   string
	Name string
	Logo string
}

// Bus автобус
type Bus struct {
	ID       string
	Plate    string
	Seats    *int // nil - вместимость неизвестна
	Category string
	Image    string
}

// KnownSeats возвращает вместимость, если она известна и положительна
func (b *Bus) KnownSeats() (int, bool) {
	if b == nil || b.Seats == nil || *b.Seats <= 0 {
		return 0, false
	}
	return *b.Seats, true
}

// Schedule конкретный рейс маршрута на конкретном автобусе
type Schedule struct {
	ID            string
	RouteID       string
	Bus           *Bus
	DepartureTime time.Time
	ArrivalTime   time.Time
	// SeatsLeft счетчик оставшихся мест. nil - счетчика нет (это не то же самое, что 0)
	SeatsLeft *int
}

// BusID идентификатор автобуса рейса (пустая строка, если автобус не указан)
func (s *Schedule) BusID() string {
	if s == nil || s.Bus == nil {
		return ""
	}
	return s.Bus.ID
}

// Route маршрут с ценой за место
type Route struct {
	ID        string
	From      string
	To        string
	Price     float64
	Distance  *float64
	Duration  string
	BusImage  string
	Company   *Company
	Bus       *Bus
	Schedules []Schedule
	// AvailableSeats агрегированное количество свободных мест на уровне маршрута (опционально)
	AvailableSeats *int
	Rating         *RouteRating
}

// HasSchedules есть ли у маршрута рейсы
func (r *Route) HasSchedules() bool {
	return len(r.Schedules) > 0
}

// FindSchedule ищет рейс маршрута по ID
func (r *Route) FindSchedule(id string) (*Schedule, bool) {
	for i := range r.Schedules {
		if r.Schedules[i].ID == id {
			return &r.Schedules[i], true
		}
	}
	return nil, false
}

// RouteSearch фильтр поиска маршрутов
type RouteSearch struct {
	From string
	To   string
	Date *time.Time
}
