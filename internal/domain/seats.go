package domain

// TotalSeatsSource откуда взята вместимость автобуса
type TotalSeatsSource string

const (
	TotalFromScheduleBus TotalSeatsSource = "schedule_bus"
	TotalFromRouteBus    TotalSeatsSource = "route_bus"
	TotalFromDefault     TotalSeatsSource = "default"
)

// AvailableSeatsSource откуда взято количество свободных мест
type AvailableSeatsSource string

const (
	AvailableFromScheduleSeatsLeft AvailableSeatsSource = "schedule_seats_left"
	AvailableFromRoute             AvailableSeatsSource = "route_available_seats"
	AvailableFromTotalSeats        AvailableSeatsSource = "total_seats"
)

// SeatAvailability вместимость и остаток мест рейса с указанием источника каждого значения
type SeatAvailability struct {
	TotalSeats      int
	AvailableSeats  int
	TotalSource     TotalSeatsSource
	AvailableSource AvailableSeatsSource
}

// IsSelectable место можно выбрать, если его номер попадает в первые AvailableSeats мест.
// Конкретные занятые места не отслеживаются, только их количество
func (a SeatAvailability) IsSelectable(seat int) bool {
	return seat >= 1 && seat <= a.TotalSeats && seat <= a.AvailableSeats
}

// IsSoldOut нет ни одного свободного места
func (a SeatAvailability) IsSoldOut() bool {
	return a.AvailableSeats <= 0
}

// OccupancyRate процент занятых мест (0-100)
func (a SeatAvailability) OccupancyRate() float64 {
	if a.TotalSeats == 0 {
		return 0
	}
	available := a.AvailableSeats
	if available > a.TotalSeats {
		available = a.TotalSeats
	}
	if available < 0 {
		available = 0
	}
	return float64(a.TotalSeats-available) / float64(a.TotalSeats) * 100
}

// Seat ячейка схемы мест
type Seat struct {
	Number     int
	Selectable bool
	Selected   bool
}
