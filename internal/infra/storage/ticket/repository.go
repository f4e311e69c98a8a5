package ticket

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
	"github.com/m04kA/Kelale-BookingPortal/pkg/dbmetrics"
	"github.com/m04kA/Kelale-BookingPortal/pkg/psqlbuilder"
)

const table = "tickets"

var columns = []string{
	"booking_id",
	"user_id",
	"route_id",
	"schedule_id",
	"bus_id",
	"seat",
	"passenger_name",
	"payment_method",
	"total_price",
	"status",
	"payment_code",
	"qr",
	"origin",
	"destination",
	"departure_time",
	"created_at",
}

// Repository репозиторий выданных билетов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория билетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет билет. Повторное сохранение того же booking_id ничего не меняет.
// Возвращает false, если билет с таким booking_id уже был сохранен
func (r *Repository) Create(ctx context.Context, t *domain.Ticket) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns[:len(columns)-1]...).
		Values(
			t.BookingID,
			t.UserID,
			t.RouteID,
			t.ScheduleID,
			t.BusID,
			t.Seat,
			t.PassengerName,
			t.PaymentMethod,
			t.TotalPrice,
			t.Status,
			t.PaymentCode,
			t.QR,
			t.Origin,
			t.Destination,
			t.DepartureTime,
		).
		Suffix("ON CONFLICT (booking_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Create - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// GetByBookingID получает билет по идентификатору бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Ticket, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	t, err := scanTicket(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan ticket: %v", ErrScanRow, err)
	}

	return t, nil
}

// GetByUserID получает билеты пользователя, новые сначала
func (r *Repository) GetByUserID(ctx context.Context, userID string) ([]*domain.Ticket, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tickets := make([]*domain.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByUserID - scan row: %v", ErrScanRow, err)
		}
		tickets = append(tickets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - rows error: %v", ErrScanRow, err)
	}

	return tickets, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTicket(row scanner) (*domain.Ticket, error) {
	var (
		t         domain.Ticket
		departure sql.NullTime
	)

	err := row.Scan(
		&t.BookingID,
		&t.UserID,
		&t.RouteID,
		&t.ScheduleID,
		&t.BusID,
		&t.Seat,
		&t.PassengerName,
		&t.PaymentMethod,
		&t.TotalPrice,
		&t.Status,
		&t.PaymentCode,
		&t.QR,
		&t.Origin,
		&t.Destination,
		&departure,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if departure.Valid {
		dt := departure.Time
		t.DepartureTime = &dt
	}

	return &t, nil
}
