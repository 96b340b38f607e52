package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ProphetBookingService/internal/api/handlers"
)

// AccountIDHeader заголовок с ID аккаунта, проставляемый API gateway после аутентификации
const AccountIDHeader = "X-Account-ID"

type contextKey string

const accountIDKey contextKey = "accountID"

// Auth проверяет наличие X-Account-ID и кладёт его в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := strings.TrimSpace(r.Header.Get(AccountIDHeader))
		if accountID == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+AccountIDHeader)
			return
		}

		ctx := WithAccountID(r.Context(), accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithAccountID кладёт ID аккаунта в контекст
func WithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountIDKey, accountID)
}

// GetAccountID извлекает ID аккаунта из контекста
func GetAccountID(ctx context.Context) (string, bool) {
	accountID, ok := ctx.Value(accountIDKey).(string)
	return accountID, ok && accountID != ""
}
