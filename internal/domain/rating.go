package domain

// RouteRating агрегированный рейтинг маршрута
type RouteRating struct {
	Average float64
	Count   int
}

// UserRating оценка маршрута текущим пользователем. Одна на пользователя и маршрут
type UserRating struct {
	Rating  int
	Comment string
}

// IsValidRating оценка в диапазоне 1..5
func IsValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
