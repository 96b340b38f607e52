package dbmetrics

import (
	"context"
	"database/sql"
)

// DBExecutor общий интерфейс *sql.DB, *sql.Tx и их обёрток с метриками.
// Репозитории работают только через него.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxExecutor активная транзакция
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// Executor выбирает, где выполнять запрос: в переданной транзакции
// или, если tx == nil, на соединении по умолчанию.
func Executor(tx DBExecutor, db DBExecutor) DBExecutor {
	if tx != nil {
		return tx
	}
	return db
}
