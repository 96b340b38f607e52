package domain

// Customer is the requesting party of a booking, resolved from an account
type Customer struct {
	ID        string
	AccountID string
}

// Exists returns true if the customer was resolved to a usable identifier
func (c *Customer) Exists() bool {
	return c != nil && c.ID != ""
}
