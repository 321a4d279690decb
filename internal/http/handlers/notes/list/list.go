// Package list реализует HTTP-обработчик для получения списка заметок
// арендатора текущего пользователя с пагинацией.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-saas/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-saas/internal/http/response"
	"github.com/magabrotheeeer/notes-saas/internal/lib/sl"
	"github.com/magabrotheeeer/notes-saas/internal/models"
)

// Handler обрабатывает запросы на получение списка заметок.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для списка заметок
}

// Service описывает интерфейс бизнес-логики списка заметок.
type Service interface {
	List(ctx context.Context, p *models.Principal, limit, offset int) ([]*models.Note, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список заметок
// @Description Возвращает заметки арендатора текущего пользователя, новые впереди.
// @Tags Notes
// @Produce  json
// @Param limit query int false "Максимум заметок в ответе"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Список заметок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при чтении заметок"
// @Router /notes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notes.list"

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

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	notes, err := h.service.List(r.Context(), principal, limit, offset)
	if err != nil {
		log.Error("failed to list notes", sl.Err(err))
		status, body := response.Err(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("success to list notes", slog.Int("count", len(notes)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"notes": notes,
	}))
}
