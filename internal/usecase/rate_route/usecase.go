package rate_route

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
	kelaleClient "github.com/m04kA/Kelale-BookingPortal/internal/integrations/kelaleapi"
)

// UseCase чтение и запись оценки маршрута. Не зависит от сценария бронирования
type UseCase struct {
	client RatingClient
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client RatingClient, logger Logger) *UseCase {
	return &UseCase{
		client: client,
		logger: logger,
	}
}

// Get возвращает агрегированный рейтинг и, если пользователь вошел, его собственную оценку.
// Ошибка загрузки своей оценки не считается ошибкой: оценки просто нет
func (uc *UseCase) Get(ctx context.Context, req *GetRequest) (*GetResponse, error) {
	routeID := strings.TrimSpace(req.RouteID)
	if routeID == "" {
		return nil, fmt.Errorf("%w: routeId is required", ErrInvalidInput)
	}

	aggregate, err := uc.client.GetRouteRating(ctx, routeID)
	if err != nil {
		if errors.Is(err, kelaleClient.ErrNotFound) {
			uc.logger.Warn("GetRating: route id=%s not found", routeID)
			return nil, ErrRouteNotFound
		}
		uc.logger.Error("GetRating: failed to get rating for route id=%s: %v", routeID, err)
		return nil, fmt.Errorf("%w: failed to get route rating: %v", ErrInternal, err)
	}

	resp := &GetResponse{Aggregate: *aggregate}

	if req.Session == nil || req.Session.Token == "" {
		return resp, nil
	}

	own, err := uc.client.GetUserRating(ctx, req.Session.Token, routeID)
	if err != nil {
		uc.logger.Warn("GetRating: failed to get own rating of user=%s for route id=%s, treating as none: %v",
			req.Session.UserID(), routeID, err)
		return resp, nil
	}
	resp.Own = own

	return resp, nil
}

// Submit создает или перезаписывает оценку пользователя (одна оценка на пользователя и маршрут)
func (uc *UseCase) Submit(ctx context.Context, req *SubmitRequest) error {
	if req.Session == nil || req.Session.Token == "" {
		return ErrAuthRequired
	}

	routeID := strings.TrimSpace(req.RouteID)
	if routeID == "" {
		return fmt.Errorf("%w: routeId is required", ErrInvalidInput)
	}

	if !domain.IsValidRating(req.Rating) {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidRating, domain.MinRating, domain.MaxRating)
	}

	comment := strings.TrimSpace(req.Comment)
	if utf8.RuneCountInString(comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment must be at most %d characters", ErrInvalidRating, domain.MaxCommentLength)
	}

	uc.logger.Info("SubmitRating: user=%s, route=%s, rating=%d", req.Session.UserID(), routeID, req.Rating)

	if err := uc.client.SubmitRating(ctx, req.Session.Token, routeID, req.Rating, comment); err != nil {
		var apiErr *kelaleClient.APIError
		switch {
		case errors.Is(err, kelaleClient.ErrUnauthorized):
			uc.logger.Warn("SubmitRating: backend rejected session token: %v", err)
			return fmt.Errorf("%w: %w", ErrAuthRequired, err)
		case errors.As(err, &apiErr):
			uc.logger.Warn("SubmitRating: backend rejected rating: %v", err)
			return fmt.Errorf("%w: %w", ErrBackendRejected, err)
		default:
			uc.logger.Error("SubmitRating: failed to submit rating: %v", err)
			return fmt.Errorf("%w: failed to submit rating: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("SubmitRating: saved rating of user=%s for route=%s", req.Session.UserID(), routeID)
	return nil
}
