// Package create реализует HTTP-обработчик для создания новых заметок.
//
// Handler принимает JSON-запрос с данными заметки, валидирует их, извлекает
// Principal из контекста запроса, вызывает бизнес-логику создания заметки
// и возвращает созданную заметку в JSON-формате.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/notes-saas/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-saas/internal/http/response"
	"github.com/magabrotheeeer/notes-saas/internal/lib/sl"
	"github.com/magabrotheeeer/notes-saas/internal/models"
)

// Handler управляет HTTP-запросами на создание новых заметок.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания заметок
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания заметки.
type Service interface {
	Create(ctx context.Context, p *models.Principal, dummy models.DummyNote) (*models.Note, error)
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
// @Summary Создать новую заметку
// @Description Создает заметку в арендаторе текущего пользователя. На тарифе free действует лимит заметок.
// @Tags Notes
// @Accept  json
// @Produce  json
// @Param request body models.DummyNote true "Данные новой заметки"
// @Success 200 {object} map[string]any "Созданная заметка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Достигнут лимит заметок тарифа"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании заметки"
// @Router /notes [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notes.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyNote
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

	note, err := h.service.Create(r.Context(), principal, req)
	if err != nil {
		log.Error("failed to create note", sl.Err(err))
		status, body := response.Err(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("success to create note", slog.String("note_id", note.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"note": note,
	}))
}
