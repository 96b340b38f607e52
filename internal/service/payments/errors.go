package payments

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёжная транзакция не найдена
	ErrPaymentNotFound = errors.New("payment transaction not found")

	// ErrInvalidAmount возвращается при отрицательной сумме
	ErrInvalidAmount = errors.New("payments: amount must be non-negative")

	// ErrInvalidStatus возвращается при неизвестном статусе выплаты
	ErrInvalidStatus = errors.New("payments: invalid payout status")

	// ErrInvalidTransition возвращается при попытке вернуть статус выплаты назад
	ErrInvalidTransition = errors.New("payments: payout status transition not allowed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payments: internal error")
)
