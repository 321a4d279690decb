// Package read реализует HTTP-обработчик для получения конкретной заметки по ID.
//
// Handler извлекает ID из URL-параметров, вызывает бизнес-логику чтения
// заметки в пределах арендатора текущего пользователя и возвращает её
// в JSON-формате. Чужая заметка неотличима от несуществующей.
package read

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

// Handler обрабатывает запросы на получение заметки по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для чтения заметки
}

// Service описывает интерфейс бизнес-логики чтения заметки.
type Service interface {
	Read(ctx context.Context, p *models.Principal, noteID string) (*models.Note, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить заметку
// @Description Возвращает заметку арендатора текущего пользователя по ID.
// @Tags Notes
// @Produce  json
// @Param id path string true "ID заметки"
// @Success 200 {object} map[string]any "Данные заметки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Заметка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при чтении заметки"
// @Router /notes/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notes.read"

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
	note, err := h.service.Read(r.Context(), principal, noteID)
	if err != nil {
		log.Error("failed to read note", sl.Err(err))
		status, body := response.Err(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("success to read note", slog.String("note_id", note.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"note": note,
	}))
}
