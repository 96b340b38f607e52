package idgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ProphetBookingService/internal/domain"
)

// Generator выдаёт короткие уникальные идентификаторы для новых сущностей.
// Занятость кандидата проверяется через Checker; при коллизии берётся новый кандидат.
type Generator struct {
	checker     Checker
	source      Source
	length      int
	maxAttempts int
	logger      Logger
}

// Option настройка генератора
type Option func(*Generator)

// WithLength задаёт длину идентификатора (не больше 32)
func WithLength(n int) Option {
	return func(g *Generator) {
		if n > 0 && n <= 32 {
			g.length = n
		}
	}
}

// WithMaxAttempts задаёт число попыток подобрать свободный идентификатор
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithSource подменяет источник кандидатов (используется в тестах)
func WithSource(src Source) Option {
	return func(g *Generator) {
		g.source = src
	}
}

// NewGenerator создает генератор идентификаторов
func NewGenerator(checker Checker, logger Logger, opts ...Option) *Generator {
	g := &Generator{
		checker:     checker,
		source:      randomHex,
		length:      domain.DefaultIDLength,
		maxAttempts: domain.DefaultIDMaxAttempts,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate выделяет новый идентификатор. Идентификатор ничего не резервирует:
// он становится занятым только после записи сущности в базу.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		candidate := g.candidate()

		exists, err := g.checker.ExistsByID(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrCheck, err)
		}
		if !exists {
			return candidate, nil
		}

		g.logger.Warn("idgen: collision on id=%s, attempt %d/%d", candidate, attempt, g.maxAttempts)
	}

	return "", ErrExhausted
}

func (g *Generator) candidate() string {
	id := g.source()
	if len(id) > g.length {
		id = id[:g.length]
	}
	return id
}

// randomHex 32 шестнадцатеричных символа из UUIDv4
func randomHex() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
