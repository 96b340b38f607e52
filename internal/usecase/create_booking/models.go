package create_booking

import "github.com/m04kA/SMC-ProphetBookingService/internal/domain"

// Request модель запроса на создание бронирования
type Request struct {
	AccountID string // ID аккаунта, от имени которого создаётся бронирование
	CourseID  string // ID курса
	StartTime string // ISO-8601, например "2025-12-01T10:00:00Z"
	EndTime   string // ISO-8601
}

// Response созданное бронирование и его платёжная транзакция
type Response struct {
	Booking     *domain.Booking
	Transaction *domain.PaymentTransaction
}
