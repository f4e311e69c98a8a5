package seats

import "github.com/m04kA/Kelale-BookingPortal/internal/domain"

// Selection выбор одного места. Повторный выбор того же места снимает выбор, выбор другого - заменяет
type Selection struct {
	seat int
}

// Selected выбранное место, 0 - не выбрано
func (s *Selection) Selected() int {
	return s.seat
}

// HasSelection выбрано ли место
func (s *Selection) HasSelection() bool {
	return s.seat > 0
}

// Toggle переключает выбор места с проверкой доступности
func (s *Selection) Toggle(a domain.SeatAvailability, seat int) error {
	if s.seat == seat {
		s.seat = 0
		return nil
	}
	if err := CheckSelectable(a, seat); err != nil {
		return err
	}
	s.seat = seat
	return nil
}

// Reconcile снимает выбор, если место перестало быть доступным (например, после перезагрузки рейса)
func (s *Selection) Reconcile(a domain.SeatAvailability) bool {
	if s.seat > 0 && !a.IsSelectable(s.seat) {
		s.seat = 0
		return true
	}
	return false
}

// Clear снимает выбор
func (s *Selection) Clear() {
	s.seat = 0
}
