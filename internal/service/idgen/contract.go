package idgen

import "context"

// Checker проверяет, занят ли идентификатор в таблице сущности
type Checker interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}

// Source источник случайных кандидатов
type Source func() string

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
