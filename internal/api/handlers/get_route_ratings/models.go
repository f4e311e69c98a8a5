package get_route_ratings

import rateRoute "github.com/m04kA/Kelale-BookingPortal/internal/usecase/rate_route"

// OwnRatingResponse оценка текущего пользователя
type OwnRatingResponse struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// RouteRatingsResponse HTTP response model
type RouteRatingsResponse struct {
	RouteID string             `json:"routeId"`
	Average float64            `json:"average"`
	Count   int                `json:"count"`
	Own     *OwnRatingResponse `json:"own,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(routeID string, resp *rateRoute.GetResponse) *RouteRatingsResponse {
	out := &RouteRatingsResponse{
		RouteID: routeID,
		Average: resp.Aggregate.Average,
		Count:   resp.Aggregate.Count,
	}
	if resp.Own != nil {
		out.Own = &OwnRatingResponse{Rating: resp.Own.Rating, Comment: resp.Own.Comment}
	}
	return out
}
