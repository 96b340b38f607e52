package payments

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ProphetBookingService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-ProphetBookingService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-ProphetBookingService/internal/service/payments/models"
	"github.com/m04kA/SMC-ProphetBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ProphetBookingService/pkg/logger"
)

type fakeRepo struct {
	payments  map[string]*domain.PaymentTransaction
	getErr    error
	createErr error
	updateErr error
	created   []*domain.PaymentTransaction
	handles   []dbmetrics.DBExecutor
}

func (r *fakeRepo) Create(_ context.Context, tx dbmetrics.DBExecutor, p *domain.PaymentTransaction) (*domain.PaymentTransaction, error) {
	r.handles = append(r.handles, tx)
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.created = append(r.created, p)
	out := *p
	return &out, nil
}

func (r *fakeRepo) GetByBookingID(_ context.Context, tx dbmetrics.DBExecutor, bookingID string) (*domain.PaymentTransaction, error) {
	r.handles = append(r.handles, tx)
	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.payments[bookingID]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	out := *p
	return &out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, tx dbmetrics.DBExecutor, bookingID string, from, to domain.PayoutStatus) error {
	r.handles = append(r.handles, tx)
	if r.updateErr != nil {
		return r.updateErr
	}
	p := r.payments[bookingID]
	if p.Status != from {
		return paymentRepo.ErrStatusConflict
	}
	p.Status = to
	return nil
}

type fakeIDs struct {
	id  string
	err error
}

func (f *fakeIDs) Generate(context.Context) (string, error) {
	return f.id, f.err
}

type markerTx struct {
	dbmetrics.DBExecutor
}

func newService(repo *fakeRepo, ids *fakeIDs) *Service {
	return NewService(repo, ids, logger.NewNop())
}

func TestCreatePayment(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakeIDs{id: "a1b2c3d4e5f6"})
	tx := &markerTx{}

	payment, err := svc.CreatePayment(context.Background(), tx, models.CreatePaymentInput{
		BookingID:    "bk_1",
		PayoutStatus: domain.PayoutPending,
		Amount:       decimal.NewFromInt(500),
	})

	require.NoError(t, err)
	assert.Equal(t, "a1b2c3d4e5f6", payment.ID)
	assert.Equal(t, "bk_1", payment.BookingID)
	assert.Equal(t, domain.PayoutPending, payment.Status)
	assert.Equal(t, "500.00", payment.Amount.StringFixed(2))
	require.Len(t, repo.handles, 1)
	assert.Same(t, tx, repo.handles[0])
}

func TestCreatePayment_ZeroAmountAllowed(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeIDs{id: "a1b2c3d4e5f6"})

	_, err := svc.CreatePayment(context.Background(), nil, models.CreatePaymentInput{
		BookingID:    "bk_1",
		PayoutStatus: domain.PayoutPending,
		Amount:       decimal.Zero,
	})
	assert.NoError(t, err)
}

func TestCreatePayment_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		input   models.CreatePaymentInput
		wantErr error
	}{
		{
			name:    "negative amount",
			input:   models.CreatePaymentInput{BookingID: "bk_1", PayoutStatus: domain.PayoutPending, Amount: decimal.NewFromInt(-1)},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "unknown status",
			input:   models.CreatePaymentInput{BookingID: "bk_1", PayoutStatus: "PAID", Amount: decimal.NewFromInt(1)},
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := newService(repo, &fakeIDs{id: "a1b2c3d4e5f6"})

			_, err := svc.CreatePayment(context.Background(), nil, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.created)
		})
	}
}

func TestCreatePayment_RepositoryErrorNotReclassified(t *testing.T) {
	pqErr := &pq.Error{Code: "23505", Message: "duplicate key"}
	svc := newService(&fakeRepo{createErr: pqErr}, &fakeIDs{id: "a1b2c3d4e5f6"})

	_, err := svc.CreatePayment(context.Background(), nil, models.CreatePaymentInput{
		BookingID: "bk_1", PayoutStatus: domain.PayoutPending, Amount: decimal.NewFromInt(1),
	})

	var got *pq.Error
	require.True(t, errors.As(err, &got))
	assert.Equal(t, pq.ErrorCode("23505"), got.Code)
	assert.NotErrorIs(t, err, ErrInternal)
}

func TestCreatePayment_IDGenerationFailure(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeIDs{err: errors.New("exhausted")})

	_, err := svc.CreatePayment(context.Background(), nil, models.CreatePaymentInput{
		BookingID: "bk_1", PayoutStatus: domain.PayoutPending, Amount: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdatePayoutStatus(t *testing.T) {
	tests := []struct {
		name    string
		current domain.PayoutStatus
		next    domain.PayoutStatus
		wantErr error
	}{
		{name: "pending to processing", current: domain.PayoutPending, next: domain.PayoutProcessing},
		{name: "processing to completed", current: domain.PayoutProcessing, next: domain.PayoutCompleted},
		{name: "pending to failed", current: domain.PayoutPending, next: domain.PayoutFailed},
		{name: "completed is final", current: domain.PayoutCompleted, next: domain.PayoutProcessing, wantErr: ErrInvalidTransition},
		{name: "no going back", current: domain.PayoutProcessing, next: domain.PayoutPending, wantErr: ErrInvalidTransition},
		{name: "unknown status", current: domain.PayoutPending, next: "PAID", wantErr: ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{payments: map[string]*domain.PaymentTransaction{
				"bk_1": {ID: "pt_1", BookingID: "bk_1", Status: tt.current},
			}}
			svc := newService(repo, &fakeIDs{})

			payment, err := svc.UpdatePayoutStatus(context.Background(), nil, "bk_1", tt.next)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.current, repo.payments["bk_1"].Status)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.next, payment.Status)
			assert.Equal(t, tt.next, repo.payments["bk_1"].Status)
		})
	}
}

func TestUpdatePayoutStatus_RunsInCallerTransaction(t *testing.T) {
	repo := &fakeRepo{payments: map[string]*domain.PaymentTransaction{
		"bk_1": {ID: "pt_1", BookingID: "bk_1", Status: domain.PayoutPending},
	}}
	svc := newService(repo, &fakeIDs{})
	tx := &markerTx{}

	_, err := svc.UpdatePayoutStatus(context.Background(), tx, "bk_1", domain.PayoutProcessing)
	require.NoError(t, err)

	require.Len(t, repo.handles, 2)
	assert.Same(t, tx, repo.handles[0])
	assert.Same(t, tx, repo.handles[1])
}

func TestUpdatePayoutStatus_ConcurrentChangeIsConflict(t *testing.T) {
	serializationErr := fmt.Errorf("%w: %w", paymentRepo.ErrExecQuery, &pq.Error{
		Code:    "40001",
		Message: "could not serialize access due to concurrent update",
	})

	tests := []struct {
		name      string
		getErr    error
		updateErr error
	}{
		{name: "row already updated", updateErr: paymentRepo.ErrStatusConflict},
		{name: "serialization failure on update", updateErr: serializationErr},
		{name: "serialization failure on read", getErr: serializationErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{
				payments:  map[string]*domain.PaymentTransaction{"bk_1": {ID: "pt_1", BookingID: "bk_1", Status: domain.PayoutPending}},
				getErr:    tt.getErr,
				updateErr: tt.updateErr,
			}
			svc := newService(repo, &fakeIDs{})

			_, err := svc.UpdatePayoutStatus(context.Background(), nil, "bk_1", domain.PayoutProcessing)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.NotErrorIs(t, err, ErrInternal)
		})
	}
}

func TestUpdatePayoutStatus_RepositoryFailureIsInternal(t *testing.T) {
	repo := &fakeRepo{
		payments:  map[string]*domain.PaymentTransaction{"bk_1": {ID: "pt_1", BookingID: "bk_1", Status: domain.PayoutPending}},
		updateErr: errors.New("connection reset"),
	}
	svc := newService(repo, &fakeIDs{})

	_, err := svc.UpdatePayoutStatus(context.Background(), nil, "bk_1", domain.PayoutProcessing)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdatePayoutStatus_NotFound(t *testing.T) {
	svc := newService(&fakeRepo{payments: map[string]*domain.PaymentTransaction{}}, &fakeIDs{})

	_, err := svc.UpdatePayoutStatus(context.Background(), nil, "bk_missing", domain.PayoutProcessing)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestGetByBookingID(t *testing.T) {
	repo := &fakeRepo{payments: map[string]*domain.PaymentTransaction{
		"bk_1": {ID: "pt_1", BookingID: "bk_1", Status: domain.PayoutPending, Amount: decimal.NewFromInt(500)},
	}}
	svc := newService(repo, &fakeIDs{})

	payment, err := svc.GetByBookingID(context.Background(), "bk_1")
	require.NoError(t, err)
	assert.Equal(t, "pt_1", payment.ID)

	_, err = svc.GetByBookingID(context.Background(), "bk_2")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
