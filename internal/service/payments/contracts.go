package payments

import (
	"context"

	"github.com/m04kA/SMC-ProphetBookingService/internal/domain"
	"github.com/m04kA/SMC-ProphetBookingService/pkg/dbmetrics"
)

// PaymentRepository интерфейс репозитория платёжных транзакций
type PaymentRepository interface {
	Create(ctx context.Context, tx dbmetrics.DBExecutor, payment *domain.PaymentTransaction) (*domain.PaymentTransaction, error)
	GetByBookingID(ctx context.Context, tx dbmetrics.DBExecutor, bookingID string) (*domain.PaymentTransaction, error)
	UpdateStatus(ctx context.Context, tx dbmetrics.DBExecutor, bookingID string, from, to domain.PayoutStatus) error
}

// IDGenerator генератор идентификаторов платёжных транзакций
type IDGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
