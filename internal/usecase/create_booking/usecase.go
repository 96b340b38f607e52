package create_booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ProphetBookingService/internal/domain"
	paymentModels "github.com/m04kA/SMC-ProphetBookingService/internal/service/payments/models"
	"github.com/m04kA/SMC-ProphetBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ProphetBookingService/pkg/dberrors"
)

// Исходы для метрики создания бронирования
const (
	resultCreated    = "created"
	resultNotFound   = "not_found"
	resultBadRequest = "bad_request"
	resultInternal   = "internal"
)

// UseCase use case для создания бронирования вместе с платёжной транзакцией
type UseCase struct {
	customers CustomerLookup
	courses   CourseLookup
	ids       IDGenerator
	bookings  BookingStore
	payments  PaymentLedger
	txManager TransactionManager
	metrics   Metrics
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(deps Dependencies) *UseCase {
	return &UseCase{
		customers: deps.Customers,
		courses:   deps.Courses,
		ids:       deps.IDs,
		bookings:  deps.Bookings,
		payments:  deps.Payments,
		txManager: deps.TxManager,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}
}

// Execute создаёт бронирование и его платёжную транзакцию атомарно.
// Обе записи выполняются в одной SERIALIZABLE транзакции: либо создаются обе, либо ни одна.
// Ошибки поиска курса возвращаются как есть, ошибки транзакции переклассифицируются
// в ErrBadRequest (известная ошибка целостности БД) или ErrInternal (всё остальное).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: account=%s, course=%s, start=%s, end=%s",
		req.AccountID, req.CourseID, req.StartTime, req.EndTime)

	// 1. Клиент проверяется до любых побочных эффектов
	customer, err := uc.customers.GetByAccountID(ctx, req.AccountID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get customer for account=%s: %v", req.AccountID, err)
		return nil, err
	}
	if !customer.Exists() {
		uc.logger.Warn("CreateBooking: customer for account=%s not found", req.AccountID)
		uc.observe(resultNotFound)
		return nil, newError(ErrNotFound, fmt.Sprintf("Customer with account id %s not found", req.AccountID), nil)
	}

	// 2. Идентификатор бронирования
	bookingID, err := uc.ids.Generate(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to generate booking id: %v", err)
		return nil, err
	}

	// 3. Снимок цены и владельца курса
	course, err := uc.courses.GetForBooking(ctx, req.CourseID)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to get course=%s: %v", req.CourseID, err)
		return nil, err
	}

	startTime, endTime, err := parseTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid time range: %v", err)
		uc.observe(resultBadRequest)
		return nil, newError(ErrBadRequest, err.Error(), err)
	}

	var result Response

	// 4. Бронирование и платёжная транзакция в одной сериализуемой транзакции
	err = uc.txManager.Do(ctx, sql.LevelSerializable, func(ctx context.Context, tx dbmetrics.DBExecutor) error {
		booking, err := uc.bookings.Create(ctx, tx, &domain.Booking{
			ID:         bookingID,
			CustomerID: customer.ID,
			ProphetID:  course.ProphetID,
			CourseID:   req.CourseID,
			StartTime:  startTime,
			EndTime:    endTime,
			Status:     domain.StatusScheduled,
		})
		if err != nil {
			return err
		}

		transaction, err := uc.payments.CreatePayment(ctx, tx, paymentModels.CreatePaymentInput{
			BookingID:    booking.ID,
			PayoutStatus: domain.PayoutPending,
			Amount:       course.Price,
		})
		if err != nil {
			return err
		}

		result = Response{Booking: booking, Transaction: transaction}
		return nil
	})

	if err != nil {
		return nil, uc.translateTxError(err, req)
	}

	uc.logger.Info("CreateBooking: created booking id=%s, transaction id=%s, amount=%s",
		result.Booking.ID, result.Transaction.ID, result.Transaction.Amount)
	uc.observe(resultCreated)

	return &result, nil
}

// translateTxError переводит ошибку транзакции в ошибку для вызывающего кода.
// Сырые ошибки хранилища наружу не выходят.
func (uc *UseCase) translateTxError(err error, req *Request) error {
	if dberrors.IsKnown(err) {
		uc.logger.Warn("CreateBooking: rejected by database for account=%s, course=%s: %v",
			req.AccountID, req.CourseID, err)
		uc.observe(resultBadRequest)
		return newError(ErrBadRequest, "Database error: "+dberrors.Message(err), err)
	}

	uc.logger.Error("CreateBooking: transaction failed for account=%s, course=%s: %v",
		req.AccountID, req.CourseID, err)
	uc.observe(resultInternal)
	return newError(ErrInternal, MsgTransactionFailed, err)
}

func (uc *UseCase) observe(result string) {
	if uc.metrics != nil {
		uc.metrics.BookingResult(result)
	}
}

// parseTimeRange разбирает ISO-8601 границы сессии.
// Порядок границ проверяет CHECK bookings_time_range_check.
func parseTimeRange(start, end string) (time.Time, time.Time, error) {
	startTime, err := time.Parse(domain.TimestampFormat, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time %q", start)
	}

	endTime, err := time.Parse(domain.TimestampFormat, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end time %q", end)
	}

	return startTime, endTime, nil
}
