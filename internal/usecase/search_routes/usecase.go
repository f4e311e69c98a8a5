package search_routes

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
)

// UseCase use case для поиска маршрутов
type UseCase struct {
	client RouteSearcher
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client RouteSearcher, logger Logger) *UseCase {
	return &UseCase{
		client: client,
		logger: logger,
	}
}

// Execute ищет маршруты между городами. Пустые from/to означают "любой"
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	search := domain.RouteSearch{
		From: strings.TrimSpace(req.From),
		To:   strings.TrimSpace(req.To),
	}

	if date := strings.TrimSpace(req.Date); date != "" {
		d, err := domain.ParseDate(date)
		if err != nil {
			uc.logger.Warn("SearchRoutes: invalid date=%q", req.Date)
			return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
		}
		search.Date = &d
	}

	uc.logger.Info("SearchRoutes: from=%q, to=%q", search.From, search.To)

	routes, err := uc.client.SearchRoutes(ctx, search)
	if err != nil {
		uc.logger.Error("SearchRoutes: backend error: %v", err)
		return nil, fmt.Errorf("%w: failed to search routes: %v", ErrInternal, err)
	}

	uc.logger.Info("SearchRoutes: found %d routes", len(routes))
	return &Response{Routes: routes}, nil
}
