package create_booking

import (
	"errors"

	courseRepo "github.com/m04kA/SMC-ProphetBookingService/internal/infra/storage/course"
)

var (
	// ErrNotFound клиент для аккаунта не найден
	ErrNotFound = errors.New("create_booking: not found")

	// ErrBadRequest запись отклонена базой из-за нарушения целостности или некорректного запроса
	ErrBadRequest = errors.New("create_booking: bad request")

	// ErrInternal нераспознанная ошибка внутри транзакции
	ErrInternal = errors.New("create_booking: internal error")

	// ErrCourseNotFound ошибка поиска курса, пробрасывается как есть
	ErrCourseNotFound = courseRepo.ErrCourseNotFound
)

// MsgTransactionFailed сообщение для вызывающего кода при внутренней ошибке транзакции
const MsgTransactionFailed = "Booking transaction failed, please try again"

// Error ошибка use case. Error() - текст для вызывающего кода,
// errors.Is сопоставляет её с ErrNotFound, ErrBadRequest или ErrInternal.
// Исходная ошибка хранилища доступна только через Cause() для логирования.
type Error struct {
	kind  error
	msg   string
	cause error
}

func newError(kind error, msg string, cause error) *Error {
	return &Error{kind: kind, msg: msg, cause: cause}
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

// Cause исходная ошибка (может быть nil)
func (e *Error) Cause() error {
	return e.cause
}
