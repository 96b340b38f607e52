package customer

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

// Repository репозиторий клиентов (только чтение)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByAccountID находит клиента по ID аккаунта.
// Если клиента нет, возвращает (nil, nil): отсутствие проверяет вызывающий код.
func (r *Repository) GetByAccountID(ctx context.Context, accountID string) (*domain.Customer, error) {
	query, args, err := psqlbuilder.Select("id", "account_id").
		From("customers").
		Where(squirrel.Eq{"account_id": accountID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAccountID - build select query: %v", ErrBuildQuery, err)
	}

	var customer domain.Customer
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&customer.ID, &customer.AccountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAccountID - scan customer: %v", ErrScanRow, err)
	}

	return &customer, nil
}
