package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
	kelaleClient "github.com/m04kA/Kelale-BookingPortal/internal/integrations/kelaleapi"
	"github.com/m04kA/Kelale-BookingPortal/internal/service/seats"
)

// UseCase use case для создания бронирования
type UseCase struct {
	client        BookingClient
	ticketRepo    TicketRepository
	seats         SeatResolver
	recorder      SubmissionRecorder
	defaultMethod domain.PaymentMethod
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case. ticketRepo и recorder могут быть nil
func NewUseCase(
	client BookingClient,
	ticketRepo TicketRepository,
	seatResolver SeatResolver,
	recorder SubmissionRecorder,
	defaultMethod domain.PaymentMethod,
	logger Logger,
) *UseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if !defaultMethod.IsValid() {
		defaultMethod = domain.DefaultPaymentMethod
	}
	return &UseCase{
		client:        client,
		ticketRepo:    ticketRepo,
		seats:         seatResolver,
		recorder:      recorder,
		defaultMethod: defaultMethod,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute проверяет предусловия, создает бронирование на backend'е и сохраняет билет.
// Ошибка сохранения билета не превращает успешное бронирование в неуспешное
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Предусловия: вход, место, рейс, пассажир
	passenger, err := validateRequest(req, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.recorder.IncBookingSubmission(OutcomeInvalid)
		return nil, err
	}

	// 2. Место должно быть среди доступных
	availability := uc.seats.Resolve(req.Route, req.Schedule)
	if err := seats.CheckSelectable(availability, req.Seat); err != nil {
		uc.logger.Warn("CreateBooking: seat %d on schedule id=%s is not available: %v", req.Seat, req.Schedule.ID, err)
		uc.recorder.IncBookingSubmission(OutcomeInvalid)
		return nil, fmt.Errorf("%w: %v", ErrSeatNotAvailable, err)
	}

	method := req.PaymentMethod
	if method == "" {
		method = uc.defaultMethod
	}

	uc.logger.Info("CreateBooking: user=%s, route=%s, schedule=%s, seat=%d, payment=%s, passenger source=%s",
		req.Session.UserID(), req.Route.ID, req.Schedule.ID, req.Seat, method, req.Source.Kind())

	// 3. Создаем бронирование: ровно одно место и один пассажир
	result, err := uc.client.CreateBooking(ctx, req.Session.Token, domain.BookingRequest{
		RouteID:       req.Route.ID,
		BusID:         req.Schedule.BusID(),
		ScheduleID:    req.Schedule.ID,
		Seats:         []int{req.Seat},
		PaymentMethod: method,
		Passengers:    []domain.Passenger{passenger},
	})
	if err != nil {
		return nil, uc.submissionError(ctx, err)
	}

	total := result.Booking.TotalPrice
	if total <= 0 {
		total = req.Route.Price * domain.SeatsPerBooking
	}
	if result.Booking.PaymentMethod.IsValid() {
		method = result.Booking.PaymentMethod
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, status=%s", result.Booking.ID, result.Booking.Status)
	uc.recorder.IncBookingSubmission(OutcomeSucceeded)

	// 4. Сохраняем билет. Бронирование уже существует на backend'е, поэтому ошибку только логируем
	ticket := buildTicket(req, passenger, result, method, total)
	uc.saveTicket(context.WithoutCancel(ctx), ticket)

	return &Response{
		BookingID:   result.Booking.ID,
		Status:      result.Booking.Status,
		PaymentCode: result.PaymentCode,
		QR:          result.QR,
		TotalPrice:  total,
		Passenger:   passenger,
		Ticket:      ticket,
	}, nil
}

// submissionError приводит ошибку backend'а к ошибкам use case
func (uc *UseCase) submissionError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		uc.logger.Warn("CreateBooking: submission cancelled: %v", ctxErr)
		uc.recorder.IncBookingSubmission(OutcomeCancelled)
		return fmt.Errorf("%w: %w", ErrCancelled, ctxErr)
	}

	if errors.Is(err, kelaleClient.ErrUnauthorized) {
		uc.logger.Warn("CreateBooking: backend rejected session token: %v", err)
		uc.recorder.IncBookingSubmission(OutcomeRejected)
		return fmt.Errorf("%w: %w", ErrAuthRequired, err)
	}

	var apiErr *kelaleClient.APIError
	if errors.As(err, &apiErr) {
		uc.logger.Warn("CreateBooking: backend rejected booking: %v", err)
		uc.recorder.IncBookingSubmission(OutcomeRejected)
		return fmt.Errorf("%w: %w", ErrBackendRejected, err)
	}

	uc.logger.Error("CreateBooking: failed to create booking: %v", err)
	uc.recorder.IncBookingSubmission(OutcomeFailed)
	return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
}

func (uc *UseCase) saveTicket(ctx context.Context, ticket *domain.Ticket) {
	if uc.ticketRepo == nil {
		return
	}
	if ticket.UserID == "" {
		uc.logger.Info("CreateBooking: session has no verified owner, ticket for booking id=%s is not stored", ticket.BookingID)
		return
	}

	created, err := uc.ticketRepo.Create(ctx, ticket)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to save ticket for booking id=%s: %v", ticket.BookingID, err)
		return
	}
	if !created {
		uc.logger.Warn("CreateBooking: ticket for booking id=%s already saved", ticket.BookingID)
	}
}
