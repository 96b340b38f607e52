package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ProphetBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ProphetBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ProphetBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ProphetBookingService/internal/service/payments"
	"github.com/m04kA/SMC-ProphetBookingService/pkg/dberrors"
	"github.com/m04kA/SMC-ProphetBookingService/pkg/dbmetrics"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	payments    PaymentLedger
	customers   CustomerLookup
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	payments PaymentLedger,
	customers CustomerLookup,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		payments:    payments,
		customers:   customers,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование вместе с платёжной транзакцией.
// Доступно только клиенту, которому принадлежит бронирование.
func (s *Service) GetByID(ctx context.Context, id string, accountID string) (*models.BookingWithTransactionResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for account=%s", id, accountID)

	booking, err := s.bookingRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	customer, err := s.resolveCustomer(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(booking, customer, accountID); err != nil {
		return nil, err
	}

	payment, err := s.payments.GetByBookingID(ctx, id)
	if err != nil && !errors.Is(err, payments.ErrPaymentNotFound) {
		s.logger.Error("GetByID: failed to get payment for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - payment error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomain(booking, payment), nil
}

// UpdateStatus завершает бронирование клиента: SCHEDULED -> COMPLETED | FAILED.
// В той же транзакции выплата переходит в PROCESSING (COMPLETED) или FAILED (FAILED).
// Завершённое бронирование не изменяется.
func (s *Service) UpdateStatus(ctx context.Context, id string, accountID string, req *models.UpdateStatusRequest) (*models.BookingWithTransactionResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s by account=%s", id, req.Status, accountID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, id)
		return nil, ErrInvalidStatus
	}
	payout, ok := newStatus.SettledPayout()
	if !ok {
		s.logger.Warn("UpdateStatus: status=%s is not terminal, booking id=%s", newStatus, id)
		return nil, ErrInvalidTransition
	}

	customer, err := s.resolveCustomer(ctx, accountID)
	if err != nil {
		return nil, err
	}

	var (
		booking *domain.Booking
		payment *domain.PaymentTransaction
	)

	err = s.txManager.DoSerializable(ctx, func(ctx context.Context, tx dbmetrics.DBExecutor) error {
		current, err := s.bookingRepo.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return s.txError("get booking", err)
		}

		if err := s.checkOwnership(current, customer, accountID); err != nil {
			return err
		}

		if !current.Status.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%s",
				current.Status, newStatus, id)
			return ErrInvalidTransition
		}

		if err := s.bookingRepo.UpdateStatus(ctx, tx, id, current.Status, newStatus); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return ErrInvalidTransition
			}
			return s.txError("update booking", err)
		}

		payment, err = s.payments.UpdatePayoutStatus(ctx, tx, id, payout)
		if err != nil {
			if errors.Is(err, payments.ErrInvalidTransition) {
				return ErrInvalidTransition
			}
			return s.txError("update payout", err)
		}

		current.Status = newStatus
		booking = current
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrAccessDenied), errors.Is(err, ErrInvalidTransition):
			return nil, err
		case dberrors.IsSerializationFailure(err):
			// конфликт обнаружен при фиксации транзакции
			s.logger.Warn("UpdateStatus: concurrent update of booking id=%s: %v", id, err)
			return nil, ErrInvalidTransition
		}
		s.logger.Error("UpdateStatus: failed for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus: %w", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: booking id=%s moved to status=%s, payout=%s", id, newStatus, payment.Status)
	return models.FromDomain(booking, payment), nil
}

// txError переводит ошибку внутри транзакции: проигрыш в конфликте
// сериализации - отклонённый переход, остальное - внутренняя ошибка
func (s *Service) txError(op string, err error) error {
	if dberrors.IsSerializationFailure(err) {
		return ErrInvalidTransition
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Service) resolveCustomer(ctx context.Context, accountID string) (*domain.Customer, error) {
	customer, err := s.customers.GetByAccountID(ctx, accountID)
	if err != nil {
		s.logger.Error("resolveCustomer: failed to get customer for account=%s: %v", accountID, err)
		return nil, fmt.Errorf("%w: resolveCustomer - failed to get customer: %v", ErrInternal, err)
	}
	return customer, nil
}

// checkOwnership проверяет, что аккаунт является клиентом бронирования
func (s *Service) checkOwnership(booking *domain.Booking, customer *domain.Customer, accountID string) error {
	if !customer.Exists() || !booking.IsOwnedBy(customer.ID) {
		s.logger.Warn("checkOwnership: account=%s has no access to booking id=%s", accountID, booking.ID)
		return ErrAccessDenied
	}
	return nil
}
