package create_booking

import (
	"context"
	"database/sql"

	"github.com/m04kA/SMC-ProphetBookingService/internal/domain"
	paymentModels "github.com/m04kA/SMC-ProphetBookingService/internal/service/payments/models"
	"github.com/m04kA/SMC-ProphetBookingService/pkg/dbmetrics"
)

// CustomerLookup поиск клиента по ID аккаунта.
// Отсутствующий клиент возвращается как (nil, nil).
type CustomerLookup interface {
	GetByAccountID(ctx context.Context, accountID string) (*domain.Customer, error)
}

// CourseLookup поиск курса для бронирования (цена и владелец).
// Отсутствующий курс - ошибка самого collaborator'а.
type CourseLookup interface {
	GetForBooking(ctx context.Context, courseID string) (*domain.Course, error)
}

// IDGenerator генератор идентификаторов бронирований
type IDGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// BookingStore интерфейс репозитория бронирований
type BookingStore interface {
	Create(ctx context.Context, tx dbmetrics.DBExecutor, booking *domain.Booking) (*domain.Booking, error)
}

// PaymentLedger запись платёжной транзакции бронирования
type PaymentLedger interface {
	CreatePayment(ctx context.Context, tx dbmetrics.DBExecutor, input paymentModels.CreatePaymentInput) (*domain.PaymentTransaction, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, level sql.IsolationLevel, fn func(ctx context.Context, tx dbmetrics.DBExecutor) error) error
}

// Metrics счётчик исходов создания бронирования
type Metrics interface {
	BookingResult(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Dependencies зависимости use case создания бронирования
type Dependencies struct {
	Customers CustomerLookup
	Courses   CourseLookup
	IDs       IDGenerator
	Bookings  BookingStore
	Payments  PaymentLedger
	TxManager TransactionManager
	Metrics   Metrics // опционально
	Logger    Logger
}
