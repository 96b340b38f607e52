package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ProphetBookingService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-ProphetBookingService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-ProphetBookingService/internal/service/payments/models"
	"github.com/m04kA/SMC-ProphetBookingService/pkg/dberrors"
	"github.com/m04kA/SMC-ProphetBookingService/pkg/dbmetrics"
)

// Service сервис платёжных транзакций (журнал выплат)
type Service struct {
	paymentRepo PaymentRepository
	idGenerator IDGenerator
	logger      Logger
}

// NewService создает новый экземпляр сервиса платёжных транзакций
func NewService(
	paymentRepo PaymentRepository,
	idGenerator IDGenerator,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		idGenerator: idGenerator,
		logger:      logger,
	}
}

// CreatePayment записывает платёжную транзакцию бронирования в переданной транзакции БД.
// Ошибки репозитория возвращаются без переклассификации: их разбирает вызывающий код.
func (s *Service) CreatePayment(ctx context.Context, tx dbmetrics.DBExecutor, input models.CreatePaymentInput) (*domain.PaymentTransaction, error) {
	if input.Amount.IsNegative() {
		s.logger.Warn("CreatePayment: negative amount=%s for booking=%s", input.Amount, input.BookingID)
		return nil, ErrInvalidAmount
	}
	if !input.PayoutStatus.IsValid() {
		s.logger.Warn("CreatePayment: invalid payout status=%s for booking=%s", input.PayoutStatus, input.BookingID)
		return nil, ErrInvalidStatus
	}

	id, err := s.idGenerator.Generate(ctx)
	if err != nil {
		s.logger.Error("CreatePayment: failed to generate id for booking=%s: %v", input.BookingID, err)
		return nil, fmt.Errorf("%w: generate id: %w", ErrInternal, err)
	}

	payment, err := s.paymentRepo.Create(ctx, tx, &domain.PaymentTransaction{
		ID:        id,
		BookingID: input.BookingID,
		Status:    input.PayoutStatus,
		Amount:    input.Amount,
	})
	if err != nil {
		s.logger.Error("CreatePayment: failed to create payment for booking=%s: %v", input.BookingID, err)
		return nil, err
	}

	s.logger.Info("CreatePayment: created payment id=%s for booking=%s, amount=%s",
		payment.ID, payment.BookingID, payment.Amount)
	return payment, nil
}

// GetByBookingID получает платёжную транзакцию бронирования
func (s *Service) GetByBookingID(ctx context.Context, bookingID string) (*domain.PaymentTransaction, error) {
	payment, err := s.paymentRepo.GetByBookingID(ctx, nil, bookingID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("GetByBookingID: repository error for booking=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetByBookingID - repository error: %v", ErrInternal, err)
	}
	return payment, nil
}

// UpdatePayoutStatus двигает статус выплаты вперёд по жизненному циклу
// PENDING_PAYOUT -> PROCESSING -> COMPLETED | FAILED в переданной транзакции БД.
// Проигрыш в конфликте сериализации считается отклонённым переходом.
func (s *Service) UpdatePayoutStatus(ctx context.Context, tx dbmetrics.DBExecutor, bookingID string, status domain.PayoutStatus) (*domain.PaymentTransaction, error) {
	s.logger.Info("UpdatePayoutStatus: booking=%s, status=%s", bookingID, status)

	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	payment, err := s.paymentRepo.GetByBookingID(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, s.updateError(bookingID, "get payment", err)
	}

	if !payment.Status.CanTransitionTo(status) {
		s.logger.Warn("UpdatePayoutStatus: transition %s -> %s not allowed for booking=%s",
			payment.Status, status, bookingID)
		return nil, ErrInvalidTransition
	}

	if err := s.paymentRepo.UpdateStatus(ctx, tx, bookingID, payment.Status, status); err != nil {
		if errors.Is(err, paymentRepo.ErrStatusConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, s.updateError(bookingID, "update status", err)
	}

	payment.Status = status

	s.logger.Info("UpdatePayoutStatus: booking=%s moved to status=%s", bookingID, status)
	return payment, nil
}

func (s *Service) updateError(bookingID, op string, err error) error {
	if dberrors.IsSerializationFailure(err) {
		s.logger.Warn("UpdatePayoutStatus: concurrent update for booking=%s: %v", bookingID, err)
		return ErrInvalidTransition
	}
	s.logger.Error("UpdatePayoutStatus: %s failed for booking=%s: %v", op, bookingID, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
