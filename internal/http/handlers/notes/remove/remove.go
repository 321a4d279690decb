// Package remove реализует HTTP-обработчик для удаления заметки
// в пределах арендатора текущего пользователя.
package remove

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

// Handler обрабатывает запросы на удаление заметки.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для удаления заметки
}

// Service описывает интерфейс бизнес-логики удаления заметки.
type Service interface {
	Remove(ctx context.Context, p *models.Principal, noteID string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить заметку
// @Description Удаляет заметку арендатора текущего пользователя по ID.
// @Tags Notes
// @Produce  json
// @Param id path string true "ID заметки"
// @Success 200 {object} map[string]any "Количество удаленных заметок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Заметка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при удалении заметки"
// @Router /notes/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notes.remove"

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

	noteID := chi.URLParam(r, "id")
	if err := h.service.Remove(r.Context(), principal, noteID); err != nil {
		log.Error("failed to remove note", sl.Err(err))
		status, body := response.Err(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("success to remove note", slog.String("note_id", noteID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deleted": 1,
	}))
}
