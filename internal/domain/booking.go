package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusScheduled BookingStatus = "SCHEDULED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusFailed    BookingStatus = "FAILED"
)

// Booking represents a scheduled session between one customer and one prophet
// for one course
type Booking struct {
	ID         string
	CustomerID string
	ProphetID  string
	CourseID   string
	StartTime  time.Time
	EndTime    time.Time
	Status     BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValid returns true if the status is a known booking status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// IsTerminal returns true if no further transitions are allowed
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransitionTo reports whether the status may move forward to next.
// Only SCHEDULED -> COMPLETED and SCHEDULED -> FAILED are allowed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == StatusScheduled && next.IsTerminal()
}

// SettledPayout returns the payout status that follows a terminal booking status:
// a completed session is handed to payout processing, a failed one is never paid out.
func (s BookingStatus) SettledPayout() (PayoutStatus, bool) {
	switch s {
	case StatusCompleted:
		return PayoutProcessing, true
	case StatusFailed:
		return PayoutFailed, true
	}
	return "", false
}

// IsOwnedBy returns true if the booking belongs to the customer
func (b *Booking) IsOwnedBy(customerID string) bool {
	return customerID != "" && b.CustomerID == customerID
}
