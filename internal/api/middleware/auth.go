package middleware

import (
	"context"
	"net/http"

	"github.com/v-demidov/HCS-AdmissionService/internal/api/handlers"
)

type ctxKey string

// UserIDKey ключ контекста с идентификатором пользователя
const UserIDKey ctxKey = "userID"

const headerUserID = "X-User-ID"

// Auth проверяет наличие заголовка X-User-ID и кладет его в контекст запроса.
// Аутентификацию выполняет внешний шлюз; сервис доверяет заголовку.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(headerUserID)
		if userID == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-User-ID")
			return
		}
		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID извлекает идентификатор пользователя из контекста
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}
