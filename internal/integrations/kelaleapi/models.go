package kelaleapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
)

// Company компания из Kelale API. Может прийти как объект или как строка-идентификатор
type Company struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

func (c *Company) UnmarshalJSON(data []byte) error {
	type plain Company
	return unmarshalRef(data, &c.ID, (*plain)(c))
}

// Bus автобус из Kelale API (объект или идентификатор)
type Bus struct {
	ID    string `json:"_id"`
	Plate string `json:"plate,omitempty"`
	Seats *int   `json:"seats,omitempty"`
	Type  string `json:"type,omitempty"`
	Image string `json:"image,omitempty"`
}

func (b *Bus) UnmarshalJSON(data []byte) error {
	type plain Bus
	return unmarshalRef(data, &b.ID, (*plain)(b))
}

// Schedule рейс из Kelale API
type Schedule struct {
	ID            string     `json:"_id"`
	Route         *RouteRef  `json:"route,omitempty"`
	Bus           *Bus       `json:"bus,omitempty"`
	DepartureTime *time.Time `json:"departureTime,omitempty"`
	ArrivalTime   *time.Time `json:"arrivalTime,omitempty"`
	SeatsLeft     *int       `json:"seatsLeft"`
}

// RouteRef ссылка на маршрут внутри рейса
type RouteRef struct {
	ID string `json:"_id"`
}

func (r *RouteRef) UnmarshalJSON(data []byte) error {
	type plain RouteRef
	return unmarshalRef(data, &r.ID, (*plain)(r))
}

// RatingSummary агрегированный рейтинг
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Route маршрут из Kelale API
type Route struct {
	ID             string         `json:"_id"`
	From           string         `json:"from"`
	To             string         `json:"to"`
	Price          float64        `json:"price"`
	Distance       *float64       `json:"distance,omitempty"`
	Duration       flexString     `json:"duration,omitempty"`
	BusImage       string         `json:"busImage,omitempty"`
	Company        *Company       `json:"company,omitempty"`
	Bus            *Bus           `json:"bus,omitempty"`
	Schedules      []Schedule     `json:"schedules,omitempty"`
	AvailableSeats *int           `json:"availableSeats"`
	Rating         *RatingSummary `json:"rating,omitempty"`
}

// UserRating оценка пользователя
type UserRating struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// RatingRequest тело POST /api/ratings
type RatingRequest struct {
	RouteID string `json:"routeId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// PassengerRecord пассажир в теле POST /api/bookings
type PassengerRecord struct {
	Seat        int    `json:"seat"`
	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName"`
	LastName    string `json:"lastName"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email,omitempty"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Age         string `json:"age"`
}

// BookingRequest тело POST /api/bookings
type BookingRequest struct {
	RouteID       string            `json:"routeId"`
	BusID         string            `json:"busId"`
	ScheduleID    string            `json:"scheduleId"`
	Seats         []int             `json:"seats"`
	PaymentMethod string            `json:"paymentMethod"`
	Passengers    []PassengerRecord `json:"passengers"`
}

// Booking бронирование из ответа backend'а
type Booking struct {
	ID            string     `json:"_id"`
	Route         *RouteRef  `json:"route,omitempty"`
	Bus           *Bus       `json:"bus,omitempty"`
	Schedule      *RouteRef  `json:"schedule,omitempty"`
	Seats         []int      `json:"seats"`
	PaymentMethod string     `json:"paymentMethod"`
	TotalPrice    float64    `json:"totalPrice"`
	Status        string     `json:"status"`
	PaymentCode   string     `json:"paymentCode,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

// BookingResponse ответ POST /api/bookings
type BookingResponse struct {
	Booking     Booking `json:"booking"`
	QR          string  `json:"qr"`
	PaymentCode string  `json:"paymentCode"`
}

// ErrorResponse тело ошибки backend'а. Разные эндпоинты используют разные ключи
type ErrorResponse struct {
	Msg     string `json:"msg"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Text первый непустой текст ошибки
func (e ErrorResponse) Text() string {
	for _, s := range []string{e.Msg, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// flexString строка, которая в JSON может прийти числом
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// unmarshalRef разбирает поле, которое backend отдает либо строкой-идентификатором, либо объектом
func unmarshalRef(data []byte, id *string, obj interface{}) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, id)
	}
	return json.Unmarshal(data, obj)
}

// ToDomain конвертирует маршрут в доменную модель
func (r *Route) ToDomain() domain.Route {
	route := domain.Route{
		ID:             r.ID,
		From:           r.From,
		To:             r.To,
		Price:          r.Price,
		Distance:       r.Distance,
		Duration:       string(r.Duration),
		BusImage:       r.BusImage,
		Bus:            r.Bus.toDomain(),
		AvailableSeats: r.AvailableSeats,
		Schedules:      make([]domain.Schedule, 0, len(r.Schedules)),
	}
	if r.Company != nil {
		route.Company = &domain.Company{ID: r.Company.ID, Name: r.Company.Name, Logo: r.Company.Logo}
	}
	if r.Rating != nil {
		route.Rating = &domain.RouteRating{Average: r.Rating.Average, Count: r.Rating.Count}
	}
	for _, s := range r.Schedules {
		route.Schedules = append(route.Schedules, s.toDomain(r.ID))
	}
	return route
}

func (b *Bus) toDomain() *domain.Bus {
	if b == nil {
		return nil
	}
	return &domain.Bus{
		ID:       b.ID,
		Plate:    b.Plate,
		Seats:    b.Seats,
		Category: b.Type,
		Image:    b.Image,
	}
}

func (s *Schedule) toDomain(routeID string) domain.Schedule {
	schedule := domain.Schedule{
		ID:        s.ID,
		RouteID:   routeID,
		Bus:       s.Bus.toDomain(),
		SeatsLeft: s.SeatsLeft,
	}
	if s.Route != nil && s.Route.ID != "" {
		schedule.RouteID = s.Route.ID
	}
	if s.DepartureTime != nil {
		schedule.DepartureTime = *s.DepartureTime
	}
	if s.ArrivalTime != nil {
		schedule.ArrivalTime = *s.ArrivalTime
	}
	return schedule
}

// FromDomainBookingRequest собирает тело запроса на бронирование
func FromDomainBookingRequest(req domain.BookingRequest) BookingRequest {
	out := BookingRequest{
		RouteID:       req.RouteID,
		BusID:         req.BusID,
		ScheduleID:    req.ScheduleID,
		Seats:         req.Seats,
		PaymentMethod: string(req.PaymentMethod),
		Passengers:    make([]PassengerRecord, 0, len(req.Passengers)),
	}
	for _, p := range req.Passengers {
		out.Passengers = append(out.Passengers, fromDomainPassenger(p))
	}
	return out
}

func fromDomainPassenger(p domain.Passenger) PassengerRecord {
	age := ""
	if p.Age != nil {
		age = strconv.Itoa(*p.Age)
	}
	return PassengerRecord{
		Seat:        p.Seat,
		FirstName:   p.FirstName,
		MiddleName:  p.MiddleName,
		LastName:    p.LastName,
		Name:        p.FullName(),
		Phone:       p.Phone,
		PhoneNumber: p.Phone,
		Email:       p.Email,
		DateOfBirth: p.DateOfBirth,
		Gender:      string(p.Gender),
		Age:         age,
	}
}

// ToDomain конвертирует ответ на бронирование. Код оплаты берется из верхнего уровня, иначе из booking
func (r *BookingResponse) ToDomain() domain.BookingResult {
	b := r.Booking
	booking := domain.Booking{
		ID:            b.ID,
		Seats:         b.Seats,
		PaymentMethod: domain.PaymentMethod(b.PaymentMethod),
		TotalPrice:    b.TotalPrice,
		Status:        domain.BookingStatus(b.Status),
		PaymentCode:   b.PaymentCode,
	}
	if b.Route != nil {
		booking.RouteID = b.Route.ID
	}
	if b.Bus != nil {
		booking.BusID = b.Bus.ID
	}
	if b.Schedule != nil {
		booking.ScheduleID = b.Schedule.ID
	}
	if b.CreatedAt != nil {
		booking.CreatedAt = *b.CreatedAt
	}
	if booking.Status == "" {
		booking.Status = domain.StatusPending
	}

	paymentCode := r.PaymentCode
	if paymentCode == "" {
		paymentCode = b.PaymentCode
	}

	return domain.BookingResult{
		Booking:     booking,
		QR:          r.QR,
		PaymentCode: paymentCode,
	}
}
