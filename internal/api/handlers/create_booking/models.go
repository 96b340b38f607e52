package create_booking

import (
	"github.com/m04kA/SMC-ProphetBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-ProphetBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CourseID  string `json:"courseId" validate:"required,max=32"`
	StartTime string `json:"startTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"` // "2025-12-01T10:00:00Z"
	EndTime   string `json:"endTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(accountID string) *createBooking.Request {
	return &createBooking.Request{
		AccountID: accountID,
		CourseID:  r.CourseID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingWithTransactionResponse {
	return models.FromDomain(resp.Booking, resp.Transaction)
}
