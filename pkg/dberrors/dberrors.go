// Package dberrors распознаёт ошибки PostgreSQL, которые несут смысл для
// вызывающего кода (нарушения ограничений, конфликты сериализации).
package dberrors

import (
	"errors"

	"github.com/lib/pq"
)

const (
	classIntegrityConstraintViolation = "23"

	codeSerializationFailure pq.ErrorCode = "40001"
	codeDeadlockDetected     pq.ErrorCode = "40P01"
)

// asPQ извлекает *pq.Error из цепочки ошибок
func asPQ(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}

// IsKnown сообщает, что ошибка пришла от базы и относится к целостности
// данных: нарушение ограничения или проигрыш в конфликте сериализации.
func IsKnown(err error) bool {
	pqErr, ok := asPQ(err)
	if !ok {
		return false
	}
	return string(pqErr.Code.Class()) == classIntegrityConstraintViolation || isSerialization(pqErr)
}

// IsSerializationFailure транзакция отменена базой из-за конфликта сериализации
func IsSerializationFailure(err error) bool {
	pqErr, ok := asPQ(err)
	return ok && isSerialization(pqErr)
}

func isSerialization(pqErr *pq.Error) bool {
	return pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected
}

// Message возвращает текст ошибки базы без обёрток слоёв выше
func Message(err error) string {
	if pqErr, ok := asPQ(err); ok {
		return pqErr.Message
	}
	return err.Error()
}
