package tickets

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
	ticketRepo "github.com/m04kA/Kelale-BookingPortal/internal/infra/storage/ticket"
	"github.com/m04kA/Kelale-BookingPortal/pkg/logger"
)

type fakeRepo struct {
	tickets map[string]*domain.Ticket
	err     error
}

func (f *fakeRepo) GetByBookingID(_ context.Context, id string) (*domain.Ticket, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.tickets[id]
	if !ok {
		return nil, ticketRepo.ErrTicketNotFound
	}
	return t, nil
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID string) ([]*domain.Ticket, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Ticket
	for _, t := range f.tickets {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func newTicket(t *testing.T) *domain.Ticket {
	departure := time.Date(2026, 10, 20, 6, 0, 0, 0, time.UTC)
	return &domain.Ticket{
		BookingID:     "bk1",
		UserID:        "u1",
		RouteID:       "r1",
		Seat:          3,
		PassengerName: "Abel T",
		PaymentMethod: domain.PaymentCash,
		TotalPrice:    850,
		Status:        domain.StatusPending,
		PaymentCode:   "PC-1",
		QR:            pngDataURI(t),
		Origin:        "Addis Ababa",
		Destination:   "Dire Dawa",
		DepartureTime: &departure,
	}
}

func TestGetTicket_Owner(t *testing.T) {
	svc := NewService(&fakeRepo{tickets: map[string]*domain.Ticket{"bk1": newTicket(t)}}, logger.Nop())

	resp, err := svc.GetTicket(context.Background(), "bk1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Pending Payment", resp.StatusLabel)
	assert.Equal(t, "PC-1", resp.PaymentCode)
	assert.Equal(t, "Addis Ababa", resp.From)
}

func TestGetTicket_Errors(t *testing.T) {
	svc := NewService(&fakeRepo{tickets: map[string]*domain.Ticket{"bk1": newTicket(t)}}, logger.Nop())

	_, err := svc.GetTicket(context.Background(), "bk1", "someone-else")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetTicket(context.Background(), "nope", "u1")
	assert.ErrorIs(t, err, ErrTicketNotFound)

	_, err = svc.GetTicket(context.Background(), "", "u1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	broken := NewService(&fakeRepo{err: errors.New("db down")}, logger.Nop())
	_, err = broken.GetTicket(context.Background(), "bk1", "u1")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetUserTickets(t *testing.T) {
	other := newTicket(t)
	other.BookingID, other.UserID = "bk2", "u2"
	svc := NewService(&fakeRepo{tickets: map[string]*domain.Ticket{"bk1": newTicket(t), "bk2": other}}, logger.Nop())

	resp, err := svc.GetUserTickets(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, resp.Tickets, 1)
	assert.Equal(t, "bk1", resp.Tickets[0].BookingID)

	empty, err := svc.GetUserTickets(context.Background(), "u3")
	require.NoError(t, err)
	assert.NotNil(t, empty.Tickets)
	assert.Empty(t, empty.Tickets)
}

func TestGetTicketPDF(t *testing.T) {
	svc := NewService(&fakeRepo{tickets: map[string]*domain.Ticket{"bk1": newTicket(t)}}, logger.Nop())

	content, name, err := svc.GetTicketPDF(context.Background(), "bk1", "u1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
	assert.Equal(t, "TICKET_bk1_seat3.pdf", name)
}

func TestRenderPDF_BrokenQR(t *testing.T) {
	ticket := newTicket(t)
	ticket.QR = "data:image/png;base64,bm90IGEgcG5n"

	content, err := RenderPDF(ticket)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestDecodeImageDataURI(t *testing.T) {
	_, kind, ok := decodeImageDataURI("data:image/jpeg;base64,AAAA")
	assert.True(t, ok)
	assert.Equal(t, "JPG", kind)

	_, _, ok = decodeImageDataURI("https://example.com/qr.png")
	assert.False(t, ok)

	_, _, ok = decodeImageDataURI("data:image/svg+xml;base64,AAAA")
	assert.False(t, ok)
}
