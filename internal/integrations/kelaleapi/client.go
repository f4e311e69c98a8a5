package kelaleapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RequestObserver получает длительность и статус каждого вызова backend'а (метрики)
type RequestObserver interface {
	ObserveBackendRequest(endpoint string, statusCode int, d time.Duration)
}

// maxErrorBody сколько байт тела ошибки читаем для логов
const maxErrorBody = 4096

// Client клиент для работы с Kelale REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	observer   RequestObserver
}

// NewClient создает новый экземпляр клиента Kelale API
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// WithObserver подключает сбор метрик по вызовам backend'а
func (c *Client) WithObserver(observer RequestObserver) *Client {
	c.observer = observer
	return c
}

// SearchRoutes ищет маршруты: GET /api/routes?from=&to=[&date=]
func (c *Client) SearchRoutes(ctx context.Context, search domain.RouteSearch) ([]domain.Route, error) {
	query := url.Values{}
	query.Set("from", search.From)
	query.Set("to", search.To)
	if search.Date != nil {
		query.Set("date", search.Date.Format(domain.DateFormat))
	}

	var routes []Route
	if _, err := c.do(ctx, "routes.search", http.MethodGet, "/api/routes?"+query.Encode(), "", nil, &routes); err != nil {
		return nil, err
	}

	out := make([]domain.Route, 0, len(routes))
	for i := range routes {
		out = append(out, routes[i].ToDomain())
	}
	return out, nil
}

// GetRoute получает маршрут со списком рейсов: GET /api/routes/{id}.
// Если backend не знает этот эндпоинт (404/405), ищет маршрут в общем списке GET /api/routes?from=&to=
func (c *Client) GetRoute(ctx context.Context, routeID string) (*domain.Route, error) {
	var route Route
	status, err := c.do(ctx, "routes.get", http.MethodGet, "/api/routes/"+url.PathEscape(routeID), "", nil, &route)
	if err == nil {
		r := route.ToDomain()
		return &r, nil
	}
	if status != http.StatusNotFound && status != http.StatusMethodNotAllowed {
		return nil, err
	}

	c.log.Info("GetRoute: direct lookup for route id=%s returned %d, falling back to route list", routeID, status)

	routes, err := c.SearchRoutes(ctx, domain.RouteSearch{})
	if err != nil {
		return nil, err
	}
	for i := range routes {
		if routes[i].ID == routeID {
			return &routes[i], nil
		}
	}
	return nil, ErrRouteNotFound
}

// GetRouteRating получает агрегированный рейтинг: GET /api/ratings/route/{routeId}
func (c *Client) GetRouteRating(ctx context.Context, routeID string) (*domain.RouteRating, error) {
	var summary RatingSummary
	if _, err := c.do(ctx, "ratings.route", http.MethodGet, "/api/ratings/route/"+url.PathEscape(routeID), "", nil, &summary); err != nil {
		return nil, err
	}
	return &domain.RouteRating{Average: summary.Average, Count: summary.Count}, nil
}

// GetUserRating получает оценку маршрута текущим пользователем: GET /api/ratings/user/route/{routeId}.
// Возвращает nil без ошибки, если пользователь еще не оценивал маршрут
func (c *Client) GetUserRating(ctx context.Context, token, routeID string) (*domain.UserRating, error) {
	var rating *UserRating
	_, err := c.do(ctx, "ratings.user", http.MethodGet, "/api/ratings/user/route/"+url.PathEscape(routeID), token, nil, &rating)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if rating == nil {
		return nil, nil
	}
	return &domain.UserRating{Rating: rating.Rating, Comment: rating.Comment}, nil
}

// SubmitRating создает или обновляет оценку пользователя: POST /api/ratings
func (c *Client) SubmitRating(ctx context.Context, token, routeID string, rating int, comment string) error {
	body := RatingRequest{RouteID: routeID, Rating: rating, Comment: comment}
	_, err := c.do(ctx, "ratings.submit", http.MethodPost, "/api/ratings", token, body, nil)
	return err
}

// CreateBooking создает бронирование: POST /api/bookings
func (c *Client) CreateBooking(ctx context.Context, token string, req domain.BookingRequest) (*domain.BookingResult, error) {
	var resp BookingResponse
	if _, err := c.do(ctx, "bookings.create", http.MethodPost, "/api/bookings", token, FromDomainBookingRequest(req), &resp); err != nil {
		return nil, err
	}
	if resp.Booking.ID == "" {
		return nil, fmt.Errorf("%w: booking id is missing in response", ErrInvalidResponse)
	}
	result := resp.ToDomain()
	return &result, nil
}

// do выполняет запрос и декодирует JSON ответа в out. Возвращает HTTP статус (0, если ответа не было)
func (c *Client) do(ctx context.Context, endpoint, method, path, token string, body, out interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, 0, start)
		return 0, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()
	c.observe(endpoint, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var errResp ErrorResponse
		_ = json.Unmarshal(raw, &errResp)

		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errResp.Text()}
		if resp.StatusCode >= 500 {
			c.log.Error("%s %s - backend error %d: %s", method, path, resp.StatusCode, string(raw))
		} else {
			c.log.Warn("%s %s - backend returned %d: %s", method, path, resp.StatusCode, apiErr.Message)
		}
		return resp.StatusCode, apiErr
	}

	if out == nil {
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			// пустое тело (например, у пользователя нет оценки)
			return resp.StatusCode, nil
		}
		return resp.StatusCode, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return resp.StatusCode, nil
}

func (c *Client) observe(endpoint string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveBackendRequest(endpoint, status, time.Since(start))
	}
}
