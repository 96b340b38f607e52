package models

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ProphetBookingService/internal/domain"
)

// CreatePaymentInput данные для записи платёжной транзакции бронирования
type CreatePaymentInput struct {
	BookingID    string
	PayoutStatus domain.PayoutStatus
	Amount       decimal.Decimal
}
