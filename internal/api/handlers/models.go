package handlers

import (
	"time"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
)

// CompanyResponse перевозчик
type CompanyResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// BusResponse автобус
type BusResponse struct {
	ID       string `json:"id,omitempty"`
	Plate    string `json:"plateNumber,omitempty"`
	Seats    *int   `json:"seats,omitempty"`
	Category string `json:"category,omitempty"`
	Image    string `json:"image,omitempty"`
}

// ScheduleResponse рейс
type ScheduleResponse struct {
	ID            string       `json:"id"`
	RouteID       string       `json:"routeId,omitempty"`
	Bus           *BusResponse `json:"bus,omitempty"`
	DepartureTime *string      `json:"departureTime,omitempty"`
	ArrivalTime   *string      `json:"arrivalTime,omitempty"`
	SeatsLeft     *int         `json:"seatsLeft,omitempty"`
}

// RatingResponse агрегированный рейтинг
type RatingResponse struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// RouteResponse маршрут
type RouteResponse struct {
	ID             string             `json:"id"`
	From           string             `json:"from"`
	To             string             `json:"to"`
	Price          float64            `json:"price"`
	Distance       *float64           `json:"distance,omitempty"`
	Duration       string             `json:"duration,omitempty"`
	BusImage       string             `json:"busImage,omitempty"`
	Company        *CompanyResponse   `json:"company,omitempty"`
	Bus            *BusResponse       `json:"bus,omitempty"`
	AvailableSeats *int               `json:"availableSeats,omitempty"`
	Rating         *RatingResponse    `json:"rating,omitempty"`
	Schedules      []ScheduleResponse `json:"schedules"`
}

// SeatResponse ячейка схемы мест
type SeatResponse struct {
	Number     int  `json:"number"`
	Selectable bool `json:"selectable"`
	Selected   bool `json:"selected"`
}

// SeatsResponse вместимость, остаток мест и схема
type SeatsResponse struct {
	Total           int            `json:"totalSeats"`
	Available       int            `json:"availableSeats"`
	TotalSource     string         `json:"totalSource"`
	AvailableSource string         `json:"availableSource"`
	SoldOut         bool           `json:"soldOut"`
	OccupancyRate   float64        `json:"occupancyRate"`
	Map             []SeatResponse `json:"seatMap"`
}

// FromDomainRoute конвертирует маршрут в HTTP модель
func FromDomainRoute(r *domain.Route) *RouteResponse {
	if r == nil {
		return nil
	}
	resp := &RouteResponse{
		ID:             r.ID,
		From:           r.From,
		To:             r.To,
		Price:          r.Price,
		Distance:       r.Distance,
		Duration:       r.Duration,
		BusImage:       r.BusImage,
		Bus:            fromDomainBus(r.Bus),
		AvailableSeats: r.AvailableSeats,
		Schedules:      make([]ScheduleResponse, 0, len(r.Schedules)),
	}
	if r.Company != nil {
		resp.Company = &CompanyResponse{ID: r.Company.ID, Name: r.Company.Name, Logo: r.Company.Logo}
	}
	if r.Rating != nil {
		resp.Rating = &RatingResponse{Average: r.Rating.Average, Count: r.Rating.Count}
	}
	for i := range r.Schedules {
		resp.Schedules = append(resp.Schedules, *FromDomainSchedule(&r.Schedules[i]))
	}
	return resp
}

// FromDomainRoutes конвертирует список маршрутов
func FromDomainRoutes(routes []domain.Route) []*RouteResponse {
	out := make([]*RouteResponse, 0, len(routes))
	for i := range routes {
		out = append(out, FromDomainRoute(&routes[i]))
	}
	return out
}

// FromDomainSchedule конвертирует рейс в HTTP модель
func FromDomainSchedule(s *domain.Schedule) *ScheduleResponse {
	if s == nil {
		return nil
	}
	return &ScheduleResponse{
		ID:            s.ID,
		RouteID:       s.RouteID,
		Bus:           fromDomainBus(s.Bus),
		DepartureTime: formatTime(s.DepartureTime),
		ArrivalTime:   formatTime(s.ArrivalTime),
		SeatsLeft:     s.SeatsLeft,
	}
}

// FromSeats конвертирует доступность мест и схему
func FromSeats(a domain.SeatAvailability, seatMap []domain.Seat) SeatsResponse {
	resp := SeatsResponse{
		Total:           a.TotalSeats,
		Available:       a.AvailableSeats,
		TotalSource:     string(a.TotalSource),
		AvailableSource: string(a.AvailableSource),
		SoldOut:         a.IsSoldOut(),
		OccupancyRate:   a.OccupancyRate(),
		Map:             make([]SeatResponse, 0, len(seatMap)),
	}
	for _, s := range seatMap {
		resp.Map = append(resp.Map, SeatResponse{Number: s.Number, Selectable: s.Selectable, Selected: s.Selected})
	}
	return resp
}

func fromDomainBus(b *domain.Bus) *BusResponse {
	if b == nil {
		return nil
	}
	return &BusResponse{ID: b.ID, Plate: b.Plate, Seats: b.Seats, Category: b.Category, Image: b.Image}
}

func formatTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
