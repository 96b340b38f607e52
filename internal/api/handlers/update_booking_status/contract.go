package update_booking_status

import (
	"context"

	"github.com/m04kA/SMC-ProphetBookingService/internal/service/bookings/models"
)

type BookingService interface {
	UpdateStatus(ctx context.Context, id string, accountID string, req *models.UpdateStatusRequest) (*models.BookingWithTransactionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
