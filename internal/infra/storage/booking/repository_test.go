package booking

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ProphetBookingService/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(db), mock
}

func sampleBooking() *domain.Booking {
	start := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:         "a1b2c3d4e5f6",
		CustomerID: "customer_789",
		ProphetID:  "prophet_101",
		CourseID:   "course_456",
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     domain.StatusScheduled,
	}
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)
	b := sampleBooking()
	now := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings (id,customer_id,prophet_id,course_id,start_time,end_time,status) VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING created_at, updated_at")).
		WithArgs(b.ID, b.CustomerID, b.ProphetID, b.CourseID, b.StartTime, b.EndTime, "SCHEDULED").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	created, err := repo.Create(context.Background(), nil, b)
	require.NoError(t, err)

	assert.Equal(t, b.ID, created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.True(t, b.CreatedAt.IsZero(), "input must not be mutated")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_PreservesDatabaseError(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_prophet_slot_key"})

	_, err := repo.Create(context.Background(), nil, sampleBooking())
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrExecQuery)
	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, "bookings_prophet_slot_key", pqErr.Constraint)
}

func TestCreate_UsesTransactionHandle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), tx, sampleBooking())
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := newMock(t)
	b := sampleBooking()
	now := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, customer_id, prophet_id, course_id, start_time, end_time, status, created_at, updated_at FROM bookings WHERE id = $1")).
		WithArgs(b.ID).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(b.ID, b.CustomerID, b.ProphetID, b.CourseID, b.StartTime, b.EndTime, "COMPLETED", now, now))

	got, err := repo.GetByID(context.Background(), nil, b.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.Equal(t, b.ProphetID, got.ProphetID)
	assert.Equal(t, now, got.UpdatedAt)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), nil, "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExistsByID(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM bookings WHERE id = $1 LIMIT 1")).
		WithArgs("taken").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM bookings WHERE id = $1 LIMIT 1")).
		WithArgs("free").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.ExistsByID(context.Background(), "taken")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByID(context.Background(), "free")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3")).
		WithArgs("COMPLETED", "a1b2c3d4e5f6", "SCHEDULED").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), nil, "a1b2c3d4e5f6", domain.StatusScheduled, domain.StatusCompleted)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_Conflict(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), nil, "a1b2c3d4e5f6", domain.StatusScheduled, domain.StatusFailed)
	assert.ErrorIs(t, err, ErrStatusConflict)
}
