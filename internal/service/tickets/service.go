package tickets

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
	ticketRepo "github.com/m04kA/Kelale-BookingPortal/internal/infra/storage/ticket"
	"github.com/m04kA/Kelale-BookingPortal/internal/service/tickets/models"
)

// Service сервис выданных билетов
type Service struct {
	ticketRepo TicketRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса билетов
func NewService(ticketRepo TicketRepository, logger Logger) *Service {
	return &Service{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

// GetByBookingID получает билет по ID бронирования.
// Пользователь может видеть только свой билет
func (s *Service) GetByBookingID(ctx context.Context, bookingID, userID string) (*domain.Ticket, error) {
	if bookingID == "" || userID == "" {
		return nil, fmt.Errorf("%w: bookingID and userID are required", ErrInvalidInput)
	}

	s.logger.Info("GetByBookingID: fetching ticket booking=%s for user=%s", bookingID, userID)

	ticket, err := s.ticketRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ticketRepo.ErrTicketNotFound) {
			s.logger.Warn("GetByBookingID: ticket booking=%s not found", bookingID)
			return nil, ErrTicketNotFound
		}
		s.logger.Error("GetByBookingID: repository error for booking=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetByBookingID - repository error: %v", ErrInternal, err)
	}

	if ticket.UserID != userID {
		s.logger.Warn("GetByBookingID: access denied for user=%s to booking=%s", userID, bookingID)
		return nil, ErrAccessDenied
	}

	return ticket, nil
}

// GetTicket то же, что GetByBookingID, но в виде DTO ответа
func (s *Service) GetTicket(ctx context.Context, bookingID, userID string) (*models.TicketResponse, error) {
	ticket, err := s.GetByBookingID(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainTicket(ticket), nil
}

// GetUserTickets получает билеты пользователя, новые сначала
func (s *Service) GetUserTickets(ctx context.Context, userID string) (*models.TicketListResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	s.logger.Info("GetUserTickets: fetching tickets for user=%s", userID)

	tickets, err := s.ticketRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserTickets: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserTickets - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserTickets: successfully fetched %d tickets for user=%s", len(tickets), userID)
	return models.FromDomainTicketList(tickets), nil
}

// GetTicketPDF рендерит билет пользователя в PDF. Возвращает содержимое и имя файла
func (s *Service) GetTicketPDF(ctx context.Context, bookingID, userID string) ([]byte, string, error) {
	ticket, err := s.GetByBookingID(ctx, bookingID, userID)
	if err != nil {
		return nil, "", err
	}

	content, err := RenderPDF(ticket)
	if err != nil {
		s.logger.Error("GetTicketPDF: failed to render booking=%s: %v", bookingID, err)
		return nil, "", fmt.Errorf("%w: GetTicketPDF - render: %v", ErrInternal, err)
	}

	return content, Filename(ticket), nil
}
