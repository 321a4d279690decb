// Package upgrade реализует HTTP-обработчик для перевода арендатора
// на тариф pro. Операция доступна только админу своего арендатора.
package upgrade

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-saas/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-saas/internal/http/response"
	"github.com/magabrotheeeer/notes-saas/internal/lib/sl"
	"github.com/magabrotheeeer/notes-saas/internal/models"
)

// Handler обрабатывает запросы на апгрейд тарифа арендатора.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики арендаторов
}

// Service описывает интерфейс бизнес-логики апгрейда арендатора.
type Service interface {
	Upgrade(ctx context.Context, p *models.Principal, tenantSlug string) (*models.Tenant, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Перевести арендатора на тариф pro
// @Description Переводит арендатора на тариф pro. Доступно только админу своего арендатора. Лимит заметок снимается немедленно.
// @Tags Tenants
// @Produce  json
// @Param slug path string true "Slug арендатора"
// @Success 200 {object} map[string]any "Арендатор после апгрейда"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при апгрейде"
// @Router /tenants/{slug}/upgrade [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tenants.upgrade"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	principal, ok := middlewarectx.PrincipalFromContext(r.Context())
	if !ok {
		log.Error("principal not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	slug := chi.URLParam(r, "slug")
	tenant, err := h.service.Upgrade(r.Context(), principal, slug)
	if err != nil {
		log.Error("failed to upgrade tenant", sl.Err(err))
		status, body := response.Err(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("success to upgrade tenant", slog.String("slug", tenant.Slug))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"tenant": tenant,
	}))
}
