package course

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

// Repository репозиторий курсов (только чтение)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория курсов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetForBooking возвращает цену и владельца курса для создания бронирования.
// Если курс не существует, возвращает ErrCourseNotFound.
func (r *Repository) GetForBooking(ctx context.Context, courseID string) (*domain.Course, error) {
	query, args, err := psqlbuilder.Select("id", "prophet_id", "title", "price").
		From("courses").
		Where(squirrel.Eq{"id": courseID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForBooking - build select query: %v", ErrBuildQuery, err)
	}

	var course domain.Course
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&course.ID,
		&course.ProphetID,
		&course.Title,
		&course.Price,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%s", ErrCourseNotFound, courseID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetForBooking - scan course: %v", ErrScanRow, err)
	}

	return &course, nil
}
