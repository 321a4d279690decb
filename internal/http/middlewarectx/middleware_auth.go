// Package middlewarectx содержит HTTP middleware для обработки и проверки JWT токенов.
//
// JWTMiddleware проверяет наличие и валидность JWT токена в заголовке Authorization,
// резолвит его в Principal через сервис аутентификации и в случае успеха
// добавляет Principal в контекст запроса для дальнейшего использования в обработчиках.
//
// Любая причина отказа в аутентификации — отсутствующий заголовок, битый
// токен, истёкший срок, удалённый пользователь — даёт одинаковый HTTP 401
// Unauthorized. Внутренняя ошибка при резолве (недоступное хранилище)
// отдаётся как HTTP 500, а не как проблема с токеном.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-saas/internal/http/response"
	"github.com/magabrotheeeer/notes-saas/internal/lib/sl"
	"github.com/magabrotheeeer/notes-saas/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// PrincipalKey — ключ для Principal в контексте.
const PrincipalKey Key = "principal"

// Service описывает интерфейс сервиса для резолва JWT токена в Principal.
type Service interface {
	ResolveToken(ctx context.Context, token string) (*models.Principal, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Если токен валиден, добавляет Principal в контекст запроса, иначе
// возвращает ошибку со статусом по её виду: 401 для проблем с токеном,
// 500 для внутренних сбоев резолва.
func JWTMiddleware(resolver Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			principal, err := resolver.ResolveToken(r.Context(), tokenStr)
			if err != nil {
				log.Error("failed to resolve token", sl.Err(err))
				status, body := response.Err(err)
				render.Status(r, status)
				render.JSON(w, r, body)
				return
			}
			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext достаёт Principal из контекста запроса.
func PrincipalFromContext(ctx context.Context) (*models.Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(*models.Principal)
	return principal, ok && principal != nil
}
