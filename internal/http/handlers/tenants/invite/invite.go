// Package invite реализует HTTP-обработчик для приглашения пользователей
// в арендатора. Операция доступна только админу своего арендатора.
package invite

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/notes-saas/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-saas/internal/http/response"
	"github.com/magabrotheeeer/notes-saas/internal/lib/sl"
	"github.com/magabrotheeeer/notes-saas/internal/models"
)

// Request — структура входных данных для приглашения.
// Роль и пароль опциональны: по умолчанию приглашается member
// с паролем по умолчанию.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role,omitempty"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// Handler обрабатывает запросы на приглашение пользователей.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики арендаторов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики приглашения пользователя.
type Service interface {
	Invite(ctx context.Context, p *models.Principal, tenantSlug, email, role, rawPassword string) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Пригласить пользователя
// @Description Создает пользователя в арендаторе текущего админа и отправляет приглашение на почту.
// @Tags Tenants
// @Accept  json
// @Produce  json
// @Param slug path string true "Slug арендатора"
// @Param request body Request true "Данные приглашения"
// @Success 200 {object} map[string]any "Созданный пользователь"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании пользователя"
// @Router /tenants/{slug}/invite [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tenants.invite"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	principal, ok := middlewarectx.PrincipalFromContext(r.Context())
	if !ok {
		log.Error("principal not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	slug := chi.URLParam(r, "slug")
	user, err := h.service.Invite(r.Context(), principal, slug, req.Email, req.Role, req.Password)
	if err != nil {
		log.Error("failed to invite user", sl.Err(err))
		status, body := response.Err(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("success to invite user", slog.String("email", user.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user": user,
	}))
}
