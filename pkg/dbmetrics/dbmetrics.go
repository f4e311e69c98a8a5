package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/Kelale-BookingPortal/pkg/metrics"
)

// DefaultCollectInterval период сбора статистики connection pool
const DefaultCollectInterval = 15 * time.Second

// DBExecutor общий интерфейс для *sql.DB, *sql.Tx и *DB
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor транзакция
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type txKey struct{}

// WithTx кладет транзакцию в контекст
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе db
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey{}).(TxExecutor); ok && tx != nil {
		return tx
	}
	return db
}

// IsInTransaction проверяет, есть ли в контексте активная транзакция
func IsInTransaction(ctx context.Context) bool {
	tx, ok := ctx.Value(txKey{}).(TxExecutor)
	return ok && tx != nil
}

// DB обертка над *sql.DB, измеряющая длительность запросов
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap оборачивает *sql.DB без сбора статистики пула
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault оборачивает *sql.DB и запускает сбор статистики пула до закрытия stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, dbName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	go wrapped.collectPoolStats(dbName, DefaultCollectInterval, stopCh)
	return wrapped
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer d.observe(query, time.Now())
	return d.db.ExecContext(ctx, query, args...)
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer d.observe(query, time.Now())
	return d.db.QueryContext(ctx, query, args...)
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer d.observe(query, time.Now())
	return d.db.QueryRowContext(ctx, query, args...)
}

func (d *DB) observe(query string, start time.Time) {
	if d.metrics == nil {
		return
	}
	d.metrics.DBQueryDuration.WithLabelValues(operation(query)).Observe(time.Since(start).Seconds())
}

func (d *DB) collectPoolStats(dbName string, interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBOpenConnections.WithLabelValues(dbName).Set(float64(stats.OpenConnections))
			d.metrics.DBInUseConnections.WithLabelValues(dbName).Set(float64(stats.InUse))
			d.metrics.DBIdleConnections.WithLabelValues(dbName).Set(float64(stats.Idle))
			d.metrics.DBWaitCount.WithLabelValues(dbName).Set(float64(stats.WaitCount))
		}
	}
}

// operation первое слово запроса (SELECT, INSERT, ...)
func operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToUpper(fields[0])
}
