package load_route

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
	kelaleClient "github.com/m04kA/Kelale-BookingPortal/internal/integrations/kelaleapi"
)

// UseCase use case для загрузки маршрута и выбора рейса
type UseCase struct {
	client RouteClient
	seats  SeatResolver
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client RouteClient, seats SeatResolver, logger Logger) *UseCase {
	return &UseCase{
		client: client,
		seats:  seats,
		logger: logger,
	}
}

// Execute загружает маршрут со списком рейсов и выбирает рейс для показа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	routeID := strings.TrimSpace(req.RouteID)
	if routeID == "" {
		return nil, fmt.Errorf("%w: routeId is required", ErrInvalidInput)
	}

	uc.logger.Info("LoadRoute: route=%s, schedule=%q", routeID, req.ScheduleID)

	route, err := uc.client.GetRoute(ctx, routeID)
	if err != nil {
		if errors.Is(err, kelaleClient.ErrRouteNotFound) || errors.Is(err, kelaleClient.ErrNotFound) {
			uc.logger.Warn("LoadRoute: route id=%s not found", routeID)
			return nil, ErrRouteNotFound
		}
		uc.logger.Error("LoadRoute: failed to get route id=%s: %v", routeID, err)
		return nil, fmt.Errorf("%w: failed to get route: %v", ErrInternal, err)
	}

	schedule, fallback := SelectSchedule(route, strings.TrimSpace(req.ScheduleID))
	switch {
	case schedule == nil:
		uc.logger.Warn("LoadRoute: route id=%s has no schedules", routeID)
	case fallback:
		uc.logger.Info("LoadRoute: schedule %q not found on route id=%s, using first schedule id=%s",
			req.ScheduleID, routeID, schedule.ID)
	}

	return &Response{
		Route:            route,
		Schedule:         schedule,
		ScheduleFallback: fallback,
		Seats:            uc.seats.Resolve(route, schedule),
	}, nil
}

// SelectSchedule выбирает рейс: запрошенный, если он есть у маршрута, иначе первый.
// fallback = true, если был запрошен рейс, которого у маршрута нет
func SelectSchedule(route *domain.Route, scheduleID string) (schedule *domain.Schedule, fallback bool) {
	if scheduleID != "" {
		if s, ok := route.FindSchedule(scheduleID); ok {
			return s, false
		}
	}
	if !route.HasSchedules() {
		return nil, false
	}
	return &route.Schedules[0], scheduleID != ""
}
