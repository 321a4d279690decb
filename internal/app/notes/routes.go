// Package notes предоставляет маршруты API-сервера заметок.
package notes

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/notes-saas/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/notes-saas/internal/http/handlers/health"
	notescreate "github.com/magabrotheeeer/notes-saas/internal/http/handlers/notes/create"
	noteslist "github.com/magabrotheeeer/notes-saas/internal/http/handlers/notes/list"
	notesread "github.com/magabrotheeeer/notes-saas/internal/http/handlers/notes/read"
	notesremove "github.com/magabrotheeeer/notes-saas/internal/http/handlers/notes/remove"
	notesupdate "github.com/magabrotheeeer/notes-saas/internal/http/handlers/notes/update"
	"github.com/magabrotheeeer/notes-saas/internal/http/handlers/tenants/invite"
	"github.com/magabrotheeeer/notes-saas/internal/http/handlers/tenants/upgrade"
	"github.com/magabrotheeeer/notes-saas/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/notes-saas/internal/services/auth"
	notesservice "github.com/magabrotheeeer/notes-saas/internal/services/notes"
	tenantsservice "github.com/magabrotheeeer/notes-saas/internal/services/tenants"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.Service, notesService *notesservice.Service, tenantsService *tenantsservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/notes", notescreate.New(logger, notesService).ServeHTTP)
			r.Get("/notes", noteslist.New(logger, notesService).ServeHTTP)
			r.Get("/notes/{id}", notesread.New(logger, notesService).ServeHTTP)
			r.Put("/notes/{id}", notesupdate.New(logger, notesService).ServeHTTP)
			r.Delete("/notes/{id}", notesremove.New(logger, notesService).ServeHTTP)
			r.Post("/tenants/{slug}/upgrade", upgrade.New(logger, tenantsService).ServeHTTP)
			r.Post("/tenants/{slug}/invite", invite.New(logger, tenantsService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
