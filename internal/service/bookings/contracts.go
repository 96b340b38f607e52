package bookings

import (
	"context"

	"github.com/m04kA/SMC-ProphetBookingService/internal/domain"
	"github.com/m04kA/SMC-ProphetBookingService/pkg/dbmetrics"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, tx dbmetrics.DBExecutor, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, tx dbmetrics.DBExecutor, id string, from, to domain.BookingStatus) error
}

// PaymentLedger журнал платёжных транзакций.
// UpdatePayoutStatus выполняется в транзакции вызывающего кода.
type PaymentLedger interface {
	GetByBookingID(ctx context.Context, bookingID string) (*domain.PaymentTransaction, error)
	UpdatePayoutStatus(ctx context.Context, tx dbmetrics.DBExecutor, bookingID string, status domain.PayoutStatus) (*domain.PaymentTransaction, error)
}

// CustomerLookup поиск клиента по ID аккаунта
type CustomerLookup interface {
	GetByAccountID(ctx context.Context, accountID string) (*domain.Customer, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context, tx dbmetrics.DBExecutor) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
