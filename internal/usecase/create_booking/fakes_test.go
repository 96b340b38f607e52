package create_booking

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-ProphetBookingService/internal/domain"
	paymentModels "github.com/m04kA/SMC-ProphetBookingService/internal/service/payments/models"
	"github.com/m04kA/SMC-ProphetBookingService/pkg/dbmetrics"
)

type fakeCustomers struct {
	mu       sync.Mutex
	customer *domain.Customer
	err      error
	calls    int
}

func (f *fakeCustomers) GetByAccountID(_ context.Context, accountID string) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.customer == nil {
		return nil, nil
	}
	c := *f.customer
	c.AccountID = accountID
	return &c, nil
}

type fakeCourses struct {
	mu     sync.Mutex
	course *domain.Course
	err    error
	calls  int
}

func (f *fakeCourses) GetForBooking(_ context.Context, courseID string) (*domain.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	c := *f.course
	c.ID = courseID
	return &c, nil
}

type fakeIDs struct {
	mu    sync.Mutex
	next  int
	err   error
	calls int
}

func (f *fakeIDs) Generate(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return "", f.err
	}
	f.next++
	return fmt.Sprintf("bk%010d", f.next), nil
}

// fakeTx дескриптор транзакции: хранит откаты записей
type fakeTx struct {
	dbmetrics.DBExecutor
	undo []func()
}

// fakeTxManager выполняет транзакции строго по очереди, как SERIALIZABLE без конфликтов
type fakeTxManager struct {
	mu       sync.Mutex
	levels   []sql.IsolationLevel
	beginErr error
	handles  []dbmetrics.DBExecutor
}

func (m *fakeTxManager) Do(ctx context.Context, level sql.IsolationLevel, fn func(ctx context.Context, tx dbmetrics.DBExecutor) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.levels = append(m.levels, level)
	if m.beginErr != nil {
		return m.beginErr
	}

	tx := &fakeTx{}
	m.handles = append(m.handles, tx)

	if err := fn(ctx, tx); err != nil {
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		return err
	}
	return nil
}

type fakeBookings struct {
	mu      sync.Mutex
	rows    map[string]*domain.Booking
	slots   map[string]string
	err     error
	calls   int
	handles []dbmetrics.DBExecutor
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{
		rows:  make(map[string]*domain.Booking),
		slots: make(map[string]string),
	}
}

func (f *fakeBookings) Create(_ context.Context, tx dbmetrics.DBExecutor, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.handles = append(f.handles, tx)
	if f.err != nil {
		return nil, f.err
	}

	if !booking.StartTime.Before(booking.EndTime) {
		return nil, &pq.Error{
			Code:    "23514",
			Message: `new row for relation "bookings" violates check constraint "bookings_time_range_check"`,
		}
	}

	slot := booking.ProphetID + "|" + booking.StartTime.String() + "|" + booking.EndTime.String()
	if _, taken := f.slots[slot]; taken {
		return nil, &pq.Error{
			Code:    "23505",
			Message: `duplicate key value violates unique constraint "bookings_prophet_slot_key"`,
		}
	}

	created := *booking
	created.CreatedAt = time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	f.rows[created.ID] = &created
	f.slots[slot] = created.ID

	if t, ok := tx.(*fakeTx); ok {
		t.undo = append(t.undo, func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.rows, created.ID)
			delete(f.slots, slot)
		})
	}

	return &created, nil
}

func (f *fakeBookings) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakePayments struct {
	mu      sync.Mutex
	rows    map[string]*domain.PaymentTransaction
	inputs  []paymentModels.CreatePaymentInput
	err     error
	handles []dbmetrics.DBExecutor
}

func newFakePayments() *fakePayments {
	return &fakePayments{rows: make(map[string]*domain.PaymentTransaction)}
}

func (f *fakePayments) CreatePayment(_ context.Context, tx dbmetrics.DBExecutor, input paymentModels.CreatePaymentInput) (*domain.PaymentTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inputs = append(f.inputs, input)
	f.handles = append(f.handles, tx)
	if f.err != nil {
		return nil, f.err
	}

	payment := &domain.PaymentTransaction{
		ID:        "pt_" + input.BookingID,
		BookingID: input.BookingID,
		Status:    input.PayoutStatus,
		Amount:    input.Amount,
	}
	f.rows[payment.ID] = payment

	if t, ok := tx.(*fakeTx); ok {
		t.undo = append(t.undo, func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.rows, payment.ID)
		})
	}

	return payment, nil
}

func (f *fakePayments) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeMetrics struct {
	mu      sync.Mutex
	results []string
}

func (m *fakeMetrics) BookingResult(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}
