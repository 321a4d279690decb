// Package notes реализует работу с заметками в пределах арендатора:
// создание с проверкой лимита тарифа, чтение с кешем, список,
// обновление и удаление. Все операции принимают Principal и никогда
// не выходят за пределы его арендатора.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/notes-saas/internal/apperr"
	"github.com/magabrotheeeer/notes-saas/internal/cache"
	"github.com/magabrotheeeer/notes-saas/internal/lib/sl"
	"github.com/magabrotheeeer/notes-saas/internal/models"
	"github.com/magabrotheeeer/notes-saas/internal/services/access"
	"github.com/magabrotheeeer/notes-saas/internal/services/quota"
)

// NoteRepository описывает контракт для работы с заметками в базе данных.
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.Note) (string, error)
	GetNote(ctx context.Context, tenantID, noteID string) (*models.Note, error)
	ListNotes(ctx context.Context, tenantID string, limit, offset int) ([]*models.Note, error)
	UpdateNote(ctx context.Context, tenantID, noteID, title, content string) (int64, error)
	RemoveNote(ctx context.Context, tenantID, noteID string) (int64, error)
	CountNotes(ctx context.Context, tenantID string) (int, error)
}

// NoteCache описывает контракт кеша заметок.
type NoteCache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Время жизни заметки в кеше.
const cacheTTL = 5 * time.Minute

// Service реализует операции над заметками.
type Service struct {
	log   *slog.Logger
	repo  NoteRepository
	cache NoteCache
}

// New создает новый экземпляр Service. Кеш может быть nil, тогда все
// чтения идут в базу.
func New(log *slog.Logger, repo NoteRepository, noteCache NoteCache) *Service {
	return &Service{
		log:   log,
		repo:  repo,
		cache: noteCache,
	}
}

// Create создаёт заметку от имени принципала. Перед созданием
// проверяется лимит тарифа: на free больше models.FreeNoteLimit заметок
// создать нельзя.
func (s *Service) Create(ctx context.Context, p *models.Principal, dummy models.DummyNote) (*models.Note, error) {
	count, err := s.repo.CountNotes(ctx, p.Tenant.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to count notes", err)
	}
	if err := quota.CheckNoteLimit(p.Tenant.Plan, count); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note := models.Note{
		ID:        uuid.NewString(),
		Title:     dummy.Title,
		Content:   dummy.Content,
		TenantID:  p.Tenant.ID,
		AuthorID:  p.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.repo.CreateNote(ctx, note); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create note", err)
	}
	note.AuthorEmail = p.Email

	s.cacheSet(cache.NoteKey(p.Tenant.ID, note.ID), &note)
	return &note, nil
}

// Read возвращает заметку арендатора принципала. Несуществующая и чужая
// заметка дают одинаковый результат — "не найдено".
func (s *Service) Read(ctx context.Context, p *models.Principal, noteID string) (*models.Note, error) {
	key := cache.NoteKey(p.Tenant.ID, noteID)
	if s.cache != nil {
		var cached models.Note
		found, err := s.cache.Get(key, &cached)
		if err != nil {
			s.log.Warn("note cache read failed", sl.Err(err))
		}
		if found {
			// Кешированная копия проходит ту же проверку владения,
			// что и строка из базы.
			if err := access.RequireOwnership(p, cached.TenantID); err != nil {
				return nil, err
			}
			return &cached, nil
		}
	}

	note, err := s.repo.GetNote(ctx, p.Tenant.ID, noteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNoteNotFound
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to read note", err)
	}

	s.cacheSet(key, note)
	return note, nil
}

// List возвращает заметки арендатора принципала, новые впереди.
func (s *Service) List(ctx context.Context, p *models.Principal, limit, offset int) ([]*models.Note, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	result, err := s.repo.ListNotes(ctx, p.Tenant.ID, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list notes", err)
	}
	return result, nil
}

// Update обновляет заголовок и текст заметки арендатора принципала.
func (s *Service) Update(ctx context.Context, p *models.Principal, noteID string, dummy models.DummyNote) (*models.Note, error) {
	affected, err := s.repo.UpdateNote(ctx, p.Tenant.ID, noteID, dummy.Title, dummy.Content)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update note", err)
	}
	if affected == 0 {
		return nil, apperr.ErrNoteNotFound
	}

	s.cacheInvalidate(cache.NoteKey(p.Tenant.ID, noteID))

	note, err := s.repo.GetNote(ctx, p.Tenant.ID, noteID)
	if err != nil {
		// Заметка могла быть удалена между обновлением и перечитыванием.
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNoteNotFound
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to read updated note", err)
	}
	return note, nil
}

// Remove удаляет заметку арендатора принципала.
func (s *Service) Remove(ctx context.Context, p *models.Principal, noteID string) error {
	affected, err := s.repo.RemoveNote(ctx, p.Tenant.ID, noteID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to remove note", err)
	}
	if affected == 0 {
		return apperr.ErrNoteNotFound
	}

	s.cacheInvalidate(cache.NoteKey(p.Tenant.ID, noteID))
	return nil
}

// Ошибки кеша не влияют на результат операции, только на лог.
func (s *Service) cacheSet(key string, note *models.Note) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(key, note, cacheTTL); err != nil {
		s.log.Warn("note cache write failed", sl.Err(err))
	}
}

func (s *Service) cacheInvalidate(key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("note cache invalidation failed", sl.Err(err))
	}
}
