package booking

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

const table = "bookings"

var columns = []string{
	"id",
	"customer_id",
	"prophet_id",
	"course_id",
	"start_time",
	"end_time",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// tx - активная транзакция; если nil, запрос выполняется на соединении по умолчанию.
// Ошибки базы (нарушения ограничений) сохраняются в цепочке и доступны через errors.As.
func (r *Repository) Create(ctx context.Context, tx DBExecutor, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.Executor(tx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"customer_id",
			"prophet_id",
			"course_id",
			"start_time",
			"end_time",
			"status",
		).
		Values(
			booking.ID,
			booking.CustomerID,
			booking.ProphetID,
			booking.CourseID,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
		).
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

	created := *booking
	created.CreatedAt = createdAt.Time
	created.UpdatedAt = updatedAt.Time

	return &created, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, tx DBExecutor, id string) (*domain.Booking, error) {
	executor := dbmetrics.Executor(tx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
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

// UpdateStatus переводит бронирование из статуса from в статус to.
// Обновление условное: если текущий статус уже не from, возвращается ErrStatusConflict.
func (r *Repository) UpdateStatus(ctx context.Context, tx DBExecutor, id string, from, to domain.BookingStatus) error {
	executor := dbmetrics.Executor(tx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
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

// scanBooking сканирует строку результата в бронирование
func scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.ProphetID,
		&booking.CourseID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
