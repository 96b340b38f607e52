package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutStatus represents the lifecycle of the money owed to a prophet
type PayoutStatus string

const (
	PayoutPending    PayoutStatus = "PENDING_PAYOUT"
	PayoutProcessing PayoutStatus = "PROCESSING"
	PayoutCompleted  PayoutStatus = "COMPLETED"
	PayoutFailed     PayoutStatus = "FAILED"
)

// PaymentTransaction is the monetary record tied 1:1 to a booking
type PaymentTransaction struct {
	ID        string
	BookingID string
	Status    PayoutStatus
	Amount    decimal.Decimal // price snapshot at booking time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValid returns true if the status is a known payout status
func (s PayoutStatus) IsValid() bool {
	switch s {
	case PayoutPending, PayoutProcessing, PayoutCompleted, PayoutFailed:
		return true
	}
	return false
}

// IsTerminal returns true if the payout is completed or failed
func (s PayoutStatus) IsTerminal() bool {
	return s == PayoutCompleted || s == PayoutFailed
}

// CanTransitionTo reports whether the payout status may move forward to next.
// PENDING_PAYOUT -> PROCESSING -> COMPLETED | FAILED; a pending payout may also fail directly.
func (s PayoutStatus) CanTransitionTo(next PayoutStatus) bool {
	switch s {
	case PayoutPending:
		return next == PayoutProcessing || next == PayoutFailed
	case PayoutProcessing:
		return next.IsTerminal()
	}
	return false
}
