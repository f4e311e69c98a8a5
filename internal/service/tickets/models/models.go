package models

import (
	"time"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
)

// TicketResponse ответ с данными билета
type TicketResponse struct {
	BookingID     string     `json:"bookingId"`
	RouteID       string     `json:"routeId"`
	ScheduleID    string     `json:"scheduleId"`
	BusID         string     `json:"busId"`
	Seat          int        `json:"seat"`
	PassengerName string     `json:"passengerName"`
	PaymentMethod string     `json:"paymentMethod"`
	TotalPrice    float64    `json:"totalPrice"`
	Status        string     `json:"status"`
	StatusLabel   string     `json:"statusLabel"` // "Pending Payment"
	PaymentCode   string     `json:"paymentCode"`
	QR            string     `json:"qr"`
	From          string     `json:"from"`
	To            string     `json:"to"`
	DepartureTime *time.Time `json:"departureTime,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// TicketListResponse ответ со списком билетов
type TicketListResponse struct {
	Tickets []TicketResponse `json:"tickets"`
}

// FromDomainTicket конвертирует domain модель в DTO
func FromDomainTicket(t *domain.Ticket) *TicketResponse {
	if t == nil {
		return nil
	}

	return &TicketResponse{
		BookingID:     t.BookingID,
		RouteID:       t.RouteID,
		ScheduleID:    t.ScheduleID,
		BusID:         t.BusID,
		Seat:          t.Seat,
		PassengerName: t.PassengerName,
		PaymentMethod: string(t.PaymentMethod),
		TotalPrice:    t.TotalPrice,
		Status:        string(t.Status),
		StatusLabel:   t.Status.Label(),
		PaymentCode:   t.PaymentCode,
		QR:            t.QR,
		From:          t.Origin,
		To:            t.Destination,
		DepartureTime: t.DepartureTime,
		CreatedAt:     t.CreatedAt,
	}
}

// FromDomainTicketList конвертирует список domain моделей в DTO
func FromDomainTicketList(tickets []*domain.Ticket) *TicketListResponse {
	resp := &TicketListResponse{
		Tickets: make([]TicketResponse, 0, len(tickets)),
	}

	for _, t := range tickets {
		if tr := FromDomainTicket(t); tr != nil {
			resp.Tickets = append(resp.Tickets, *tr)
		}
	}

	return resp
}
