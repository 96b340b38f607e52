package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ProphetBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// UpdateStatusRequest запрос на завершение бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// BookingResponse бронирование для ответа API
type BookingResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"customerId"`
	ProphetID  string `json:"prophetId"`
	CourseID   string `json:"courseId"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// TransactionResponse платёжная транзакция для ответа API.
// Сумма передаётся строкой, чтобы не терять точность.
type TransactionResponse struct {
	ID        string `json:"id"`
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
	Amount    string `json:"amount"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// BookingWithTransactionResponse бронирование вместе с платёжной транзакцией
type BookingWithTransactionResponse struct {
	Booking     *BookingResponse     `json:"booking"`
	Transaction *TransactionResponse `json:"transaction"`
}

// FromDomainBooking конвертирует domain модель в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}
	return &BookingResponse{
		ID:         b.ID,
		CustomerID: b.CustomerID,
		ProphetID:  b.ProphetID,
		CourseID:   b.CourseID,
		StartTime:  b.StartTime.UTC().Format(domain.TimestampFormat),
		EndTime:    b.EndTime.UTC().Format(domain.TimestampFormat),
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// FromDomainTransaction конвертирует domain модель в response
func FromDomainTransaction(t *domain.PaymentTransaction) *TransactionResponse {
	if t == nil {
		return nil
	}
	return &TransactionResponse{
		ID:        t.ID,
		BookingID: t.BookingID,
		Status:    string(t.Status),
		Amount:    t.Amount.StringFixed(2),
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// FromDomain собирает ответ из бронирования и транзакции
func FromDomain(b *domain.Booking, t *domain.PaymentTransaction) *BookingWithTransactionResponse {
	return &BookingWithTransactionResponse{
		Booking:     FromDomainBooking(b),
		Transaction: FromDomainTransaction(t),
	}
}

// ToDomainBookingStatus конвертирует строку в статус завершения бронирования
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
