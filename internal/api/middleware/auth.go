package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/footbook/FB-GroundBookingService/internal/api/handlers"
)

// Заголовки, проставляемые шлюзом аутентификации
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
	HeaderUserName = "X-User-Name"
	HeaderPhone    = "X-User-Phone"
)

// Роли пользователей
const (
	RoleCustomer = "customer"
	RoleOwner    = "owner"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
	userNameKey contextKey = "userName"
	userPhoneKey contextKey = "userPhone"
)

// Auth требует валидный X-User-ID и складывает личность пользователя
// в контекст запроса. Сервис доверяет заголовкам: аутентификацию
// выполняет внешний шлюз
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idStr := r.Header.Get(HeaderUserID)
		if idStr == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		role := r.Header.Get(HeaderUserRole)
		if role == "" {
			role = RoleCustomer
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, role)
		ctx = context.WithValue(ctx, userNameKey, r.Header.Get(HeaderUserName))
		ctx = context.WithValue(ctx, userPhoneKey, r.Header.Get(HeaderPhone))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID возвращает идентификатор пользователя из контекста
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// UserRole возвращает роль пользователя из контекста
func UserRole(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}

// UserName возвращает отображаемое имя пользователя из контекста
func UserName(ctx context.Context) string {
	name, _ := ctx.Value(userNameKey).(string)
	return name
}

// UserPhone возвращает телефон пользователя из контекста
func UserPhone(ctx context.Context) string {
	phone, _ := ctx.Value(userPhoneKey).(string)
	return phone
}
