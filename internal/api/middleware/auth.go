package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный X-User-ID"
	msgInvalidRole   = "некорректная роль в X-User-Role"
	msgForbidden     = "недостаточно прав"
)

type actorKey struct{}

// Auth читает пользователя из заголовков, выставленных шлюзом
// Без X-User-Role пользователь считается клиентом
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(HeaderUserID)
		if rawID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || id <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		role := domain.RoleCustomer
		if rawRole := r.Header.Get(HeaderUserRole); rawRole != "" {
			role, err = domain.ParseRole(rawRole)
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidRole)
				return
			}
		}

		ctx := WithActor(r.Context(), domain.Actor{ID: id, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles пропускает только пользователей с одной из ролей
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActor(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}
			for _, role := range roles {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			handlers.RespondForbidden(w, msgForbidden)
		})
	}
}

// WithActor кладет пользователя в контекст запроса
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor достает пользователя из контекста запроса
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}
