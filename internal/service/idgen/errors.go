package idgen

import "errors"

var (
	// ErrExhausted возвращается, когда не удалось подобрать свободный идентификатор
	ErrExhausted = errors.New("idgen: no free identifier after max attempts")

	// ErrCheck возвращается при ошибке проверки занятости идентификатора
	ErrCheck = errors.New("idgen: failed to check identifier")
)
