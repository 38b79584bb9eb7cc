package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-PetCareService/pkg/metrics"
)

// DefaultStatsInterval период сбора статистики connection pool
const DefaultStatsInterval = 15 * time.Second

// DBExecutor интерфейс для выполнения запросов.
// Реализуется *sql.DB и *DB.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// DB обёртка над *sql.DB, измеряющая длительность запросов
type DB struct {
	db          *sql.DB
	metrics     *metrics.Metrics
	serviceName string
}

// Wrap оборачивает соединение метриками без сбора статистики пула
func Wrap(db *sql.DB, m *metrics.Metrics, serviceName string) *DB {
	return &DB{
		db:          db,
		metrics:     m,
		serviceName: serviceName,
	}
}

// WrapWithDefault оборачивает соединение и запускает сбор статистики пула
// с интервалом DefaultStatsInterval до закрытия stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m, serviceName)
	go wrapped.collectStats(DefaultStatsInterval, stopCh)
	return wrapped
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return result, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

// QueryRowContext ошибка *sql.Row становится известна только при Scan,
// поэтому здесь учитывается через Err()
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, start, row.Err())
	return row
}

func (d *DB) observe(query string, start time.Time, err error) {
	if d.metrics == nil {
		return
	}
	result := "success"
	if err != nil && err != sql.ErrNoRows {
		result = "error"
	}
	d.metrics.DBQueryDuration.
		WithLabelValues(d.serviceName, QueryOperation(query), result).
		Observe(time.Since(start).Seconds())
}

func (d *DB) collectStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		d.recordStats()
		select {
		case <-ticker.C:
		case <-stopCh:
			return
		}
	}
}

func (d *DB) recordStats() {
	if d.metrics == nil {
		return
	}
	stats := d.db.Stats()
	d.metrics.DBConnections.WithLabelValues(d.serviceName, "open").Set(float64(stats.OpenConnections))
	d.metrics.DBConnections.WithLabelValues(d.serviceName, "in_use").Set(float64(stats.InUse))
	d.metrics.DBConnections.WithLabelValues(d.serviceName, "idle").Set(float64(stats.Idle))
}

// QueryOperation возвращает тип запроса (select, update, ...) для метки метрики
func QueryOperation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	switch op := strings.ToLower(fields[0]); op {
	case "select", "insert", "update", "delete", "with":
		return op
	default:
		return "other"
	}
}
