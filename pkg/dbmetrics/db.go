package dbmetrics

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/m04kA/SMC-ProphetBookingService/pkg/metrics"
)

// DefaultStatsInterval период сбора статистики connection pool
const DefaultStatsInterval = 15 * time.Second

// DB обёртка над *sql.DB, замеряющая длительность запросов.
// С nil метриками работает как обычный *sql.DB.
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Plain оборачивает *sql.DB без сбора метрик
func Plain(db *sql.DB) *DB {
	return &DB{db: db}
}

// Wrap оборачивает *sql.DB с метриками запросов
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault оборачивает *sql.DB и запускает сбор статистики пула
// до закрытия stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, dbName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	go wrapped.collectStats(dbName, DefaultStatsInterval, stopCh)
	return wrapped
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	defer d.observe("exec", time.Now())
	res, err := d.db.ExecContext(ctx, query, args...)
	d.countError("exec", err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	defer d.observe("query", time.Now())
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.countError("query", err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	defer d.observe("query_row", time.Now())
	return d.db.QueryRowContext(ctx, query, args...)
}

// BeginTx открывает транзакцию с указанными опциями
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		d.countError("begin", err)
		return nil, err
	}
	return &Tx{tx: tx, metrics: d.metrics, startedAt: time.Now()}, nil
}

func (d *DB) observe(op string, start time.Time) {
	if d.metrics == nil {
		return
	}
	d.metrics.DBQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (d *DB) countError(op string, err error) {
	if d.metrics == nil || err == nil {
		return
	}
	d.metrics.DBQueryErrors.WithLabelValues(op).Inc()
}

func (d *DB) collectStats(dbName string, interval time.Duration, stopCh <-chan struct{}) {
	if d.metrics == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		d.recordStats(dbName)
		select {
		case <-ticker.C:
		case <-stopCh:
			return
		}
	}
}

func (d *DB) recordStats(dbName string) {
	stats := d.db.Stats()
	d.metrics.DBOpenConnections.WithLabelValues(dbName).Set(float64(stats.OpenConnections))
	d.metrics.DBInUseConnections.WithLabelValues(dbName).Set(float64(stats.InUse))
	d.metrics.DBIdleConnections.WithLabelValues(dbName).Set(float64(stats.Idle))
	d.metrics.DBWaitCount.WithLabelValues(dbName).Set(float64(stats.WaitCount))
}

// Tx обёртка над *sql.Tx
type Tx struct {
	tx        *sql.Tx
	metrics   *metrics.Metrics
	startedAt time.Time
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	defer t.observe("tx_exec", time.Now())
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.countError("tx_exec", err)
	return res, err
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	defer t.observe("tx_query", time.Now())
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.countError("tx_query", err)
	return rows, err
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	defer t.observe("tx_query_row", time.Now())
	return t.tx.QueryRowContext(ctx, query, args...)
}

// Commit фиксирует транзакцию; ошибка фиксации (в т.ч. 40001) учитывается как tx_commit
func (t *Tx) Commit() error {
	defer t.observe("tx_total", t.startedAt)
	err := t.tx.Commit()
	t.countError("tx_commit", err)
	return err
}

func (t *Tx) Rollback() error {
	defer t.observe("tx_total", t.startedAt)
	err := t.tx.Rollback()
	if !errors.Is(err, sql.ErrTxDone) {
		t.countError("tx_rollback", err)
	}
	return err
}

func (t *Tx) observe(op string, start time.Time) {
	if t.metrics == nil {
		return
	}
	t.metrics.DBQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (t *Tx) countError(op string, err error) {
	if t.metrics == nil || err == nil {
		return
	}
	t.metrics.DBQueryErrors.WithLabelValues(op).Inc()
}
