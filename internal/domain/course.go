package domain

import "github.com/shopspring/decimal"

// Course is a consultation offering owned by a prophet.
// Read-only from the booking flow's perspective.
type Course struct {
	ID        string
	ProphetID string
	Title     string
	Price     decimal.Decimal
}
