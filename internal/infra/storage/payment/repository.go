package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ProphetBookingService/internal/domain"
	"github.com/m04kA/SMC-ProphetBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ProphetBookingService/pkg/psqlbuilder"
)

const table = "payment_transactions"

// Repository репозиторий платёжных транзакций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платёжных транзакций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платёжную транзакцию.
// tx - активная транзакция; если nil, запрос выполняется на соединении по умолчанию.
func (r *Repository) Create(ctx context.Context, tx DBExecutor, payment *domain.PaymentTransaction) (*domain.PaymentTransaction, error) {
	executor := dbmetrics.Executor(tx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "booking_id", "status", "amount").
		Values(payment.ID, payment.BookingID, payment.Status, payment.Amount).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	created := *payment
	created.CreatedAt = createdAt.Time
	created.UpdatedAt = updatedAt.Time

	return &created, nil
}

// GetByBookingID получает платёжную транзакцию бронирования
func (r *Repository) GetByBookingID(ctx context.Context, tx DBExecutor, bookingID string) (*domain.PaymentTransaction, error) {
	executor := dbmetrics.Executor(tx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"status",
		"amount",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var payment domain.PaymentTransaction
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Status,
		&payment.Amount,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan payment: %w", ErrScanRow, err)
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return &payment, nil
}

// ExistsByID проверяет, занят ли идентификатор
func (r *Repository) ExistsByID(ctx context.Context, id string) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsByID - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByID - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// UpdateStatus переводит выплату бронирования из статуса from в статус to
func (r *Repository) UpdateStatus(ctx context.Context, tx DBExecutor, bookingID string, from, to domain.PayoutStatus) error {
	executor := dbmetrics.Executor(tx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": bookingID, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}
