package ticket

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)
	departure := time.Date(2026, 10, 20, 6, 0, 0, 0, time.UTC)

	ticket := &domain.Ticket{
		BookingID:     "bk1",
		UserID:        "u1",
		RouteID:       "r1",
		ScheduleID:    "s1",
		BusID:         "b1",
		Seat:          3,
		PassengerName: "Abel T",
		PaymentMethod: domain.PaymentCash,
		TotalPrice:    850,
		Status:        domain.StatusPending,
		PaymentCode:   "PC-1",
		QR:            "data:image/png;base64,AAA",
		Origin:        "Addis Ababa",
		Destination:   "Dire Dawa",
		DepartureTime: &departure,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tickets (booking_id,user_id,route_id")).
		WithArgs("bk1", "u1", "r1", "s1", "b1", 3, "Abel T", domain.PaymentCash, 850.0,
			domain.StatusPending, "PC-1", "data:image/png;base64,AAA", "Addis Ababa", "Dire Dawa", &departure).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), ticket)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (booking_id) DO NOTHING")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.Create(context.Background(), &domain.Ticket{BookingID: "bk1"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ExecError(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("INSERT INTO tickets").WillReturnError(sql.ErrConnDone)

	_, err := repo.Create(context.Background(), &domain.Ticket{BookingID: "bk1"})
	assert.ErrorIs(t, err, ErrExecQuery)
}

func ticketRows() *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

func TestGetByBookingID(t *testing.T) {
	repo, mock := newMock(t)
	created := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM tickets WHERE booking_id = $1")).
		WithArgs("bk1").
		WillReturnRows(ticketRows().AddRow(
			"bk1", "u1", "r1", "s1", "b1", 3, "Abel T", "cash", 850.0, "pending",
			"PC-1", "", "Addis Ababa", "Dire Dawa", nil, created,
		))

	ticket, err := repo.GetByBookingID(context.Background(), "bk1")
	require.NoError(t, err)
	assert.Equal(t, "u1", ticket.UserID)
	assert.Equal(t, domain.PaymentCash, ticket.PaymentMethod)
	assert.Equal(t, domain.StatusPending, ticket.Status)
	assert.Nil(t, ticket.DepartureTime)
	assert.Equal(t, created, ticket.CreatedAt)
}

func TestGetByBookingID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("FROM tickets").WillReturnRows(ticketRows())

	_, err := repo.GetByBookingID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestGetByUserID(t *testing.T) {
	repo, mock := newMock(t)
	departure := time.Date(2026, 10, 20, 6, 0, 0, 0, time.UTC)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 ORDER BY created_at DESC")).
		WithArgs("u1").
		WillReturnRows(ticketRows().
			AddRow("bk2", "u1", "r1", "s1", "b1", 4, "Abel T", "card", 850.0, "confirmed", "PC-2", "", "A", "B", departure, now).
			AddRow("bk1", "u1", "r1", "s1", "b1", 3, "Abel T", "cash", 850.0, "pending", "PC-1", "", "A", "B", nil, now.Add(-time.Hour)))

	tickets, err := repo.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, "bk2", tickets[0].BookingID)
	require.NotNil(t, tickets[0].DepartureTime)
	assert.Equal(t, departure, *tickets[0].DepartureTime)
	assert.Equal(t, domain.StatusConfirmed, tickets[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
