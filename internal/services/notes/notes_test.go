package notes

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/notes-saas/internal/apperr"
	"github.com/magabrotheeeer/notes-saas/internal/cache"
	"github.com/magabrotheeeer/notes-saas/internal/models"
)

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) CreateNote(ctx context.Context, note models.Note) (string, error) {
	args := m.Called(ctx, note)
	return args.String(0), args.Error(1)
}

func (m *mockNoteRepository) GetNote(ctx context.Context, tenantID, noteID string) (*models.Note, error) {
	args := m.Called(ctx, tenantID, noteID)
	note, _ := args.Get(0).(*models.Note)
	return note, args.Error(1)
}

func (m *mockNoteRepository) ListNotes(ctx context.Context, tenantID string, limit, offset int) ([]*models.Note, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	result, _ := args.Get(0).([]*models.Note)
	return result, args.Error(1)
}

func (m *mockNoteRepository) UpdateNote(ctx context.Context, tenantID, noteID, title, content string) (int64, error) {
	args := m.Called(ctx, tenantID, noteID, title, content)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNoteRepository) RemoveNote(ctx context.Context, tenantID, noteID string) (int64, error) {
	args := m.Called(ctx, tenantID, noteID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNoteRepository) CountNotes(ctx context.Context, tenantID string) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

type mockNoteCache struct {
	mock.Mock
}

func (m *mockNoteCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *mockNoteCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *mockNoteCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func freePrincipal() *models.Principal {
	return &models.Principal{
		UserID: "user-1",
		Email:  "user@acme.test",
		Role:   models.RoleMember,
		Tenant: models.Tenant{ID: "tenant-1", Slug: "acme", Plan: models.PlanFree},
	}
}

func proPrincipal() *models.Principal {
	p := freePrincipal()
	p.Tenant.Plan = models.PlanPro
	return p
}

func TestService_Create(t *testing.T) {
	dummy := models.DummyNote{Title: "Plan", Content: "Quarterly goals"}

	tests := []struct {
		name      string
		principal *models.Principal
		setupMock func(*mockNoteRepository)
		wantErr   error
		wantKind  apperr.Kind
	}{
		{
			name:      "free plan under limit",
			principal: freePrincipal(),
			setupMock: func(m *mockNoteRepository) {
				m.On("CountNotes", mock.Anything, "tenant-1").Return(models.FreeNoteLimit-1, nil)
				m.On("CreateNote", mock.Anything, mock.MatchedBy(func(n models.Note) bool {
					return n.TenantID == "tenant-1" && n.AuthorID == "user-1" && n.Title == dummy.Title && n.ID != ""
				})).Return("note-1", nil)
			},
		},
		{
			name:      "free plan at limit",
			principal: freePrincipal(),
			setupMock: func(m *mockNoteRepository) {
				m.On("CountNotes", mock.Anything, "tenant-1").Return(models.FreeNoteLimit, nil)
			},
			wantErr: apperr.ErrQuotaExceeded,
		},
		{
			name:      "pro plan has no limit",
			principal: proPrincipal(),
			setupMock: func(m *mockNoteRepository) {
				m.On("CountNotes", mock.Anything, "tenant-1").Return(100, nil)
				m.On("CreateNote", mock.Anything, mock.Anything).Return("note-1", nil)
			},
		},
		{
			name:      "count failure",
			principal: freePrincipal(),
			setupMock: func(m *mockNoteRepository) {
				m.On("CountNotes", mock.Anything, "tenant-1").Return(0, errors.New("connection refused"))
			},
			wantKind: apperr.KindInternal,
		},
		{
			name:      "insert failure",
			principal: freePrincipal(),
			setupMock: func(m *mockNoteRepository) {
				m.On("CountNotes", mock.Anything, "tenant-1").Return(0, nil)
				m.On("CreateNote", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))
			},
			wantKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockNoteRepository)
			tt.setupMock(repo)
			service := New(discardLogger(), repo, nil)

			note, err := service.Create(context.Background(), tt.principal, dummy)

			if tt.wantErr == nil && tt.wantKind == "" {
				require.NoError(t, err)
				require.NotNil(t, note)
				assert.Equal(t, tt.principal.Tenant.ID, note.TenantID)
				assert.Equal(t, tt.principal.UserID, note.AuthorID)
				assert.Equal(t, tt.principal.Email, note.AuthorEmail)
				assert.NotEmpty(t, note.ID)
			} else {
				require.Error(t, err)
				assert.Nil(t, note)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				if tt.wantKind != "" {
					assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				}
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Read(t *testing.T) {
	p := freePrincipal()
	stored := &models.Note{
		ID:          "note-1",
		Title:       "Plan",
		TenantID:    p.Tenant.ID,
		AuthorID:    p.UserID,
		AuthorEmail: p.Email,
	}

	t.Run("cache miss falls through to storage and backfills", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("GetNote", mock.Anything, p.Tenant.ID, "note-1").Return(stored, nil)

		noteCache := new(mockNoteCache)
		key := cache.NoteKey(p.Tenant.ID, "note-1")
		noteCache.On("Get", key, mock.Anything).Return(false, nil)
		noteCache.On("Set", key, stored, cacheTTL).Return(nil)

		service := New(discardLogger(), repo, noteCache)
		note, err := service.Read(context.Background(), p, "note-1")
		require.NoError(t, err)
		assert.Equal(t, stored, note)
		repo.AssertExpectations(t)
		noteCache.AssertExpectations(t)
	})

	t.Run("cache hit skips storage", func(t *testing.T) {
		repo := new(mockNoteRepository)
		noteCache := new(mockNoteCache)
		key := cache.NoteKey(p.Tenant.ID, "note-1")
		noteCache.On("Get", key, mock.Anything).Run(func(args mock.Arguments) {
			out := args.Get(1).(*models.Note)
			*out = *stored
		}).Return(true, nil)

		service := New(discardLogger(), repo, noteCache)
		note, err := service.Read(context.Background(), p, "note-1")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, note.ID)
		repo.AssertNotCalled(t, "GetNote", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cached note of foreign tenant reads as missing", func(t *testing.T) {
		repo := new(mockNoteRepository)
		noteCache := new(mockNoteCache)
		key := cache.NoteKey(p.Tenant.ID, "note-1")
		noteCache.On("Get", key, mock.Anything).Run(func(args mock.Arguments) {
			out := args.Get(1).(*models.Note)
			*out = *stored
			out.TenantID = "tenant-2"
		}).Return(true, nil)

		service := New(discardLogger(), repo, noteCache)
		note, err := service.Read(context.Background(), p, "note-1")
		require.Error(t, err)
		assert.Nil(t, note)
		assert.ErrorIs(t, err, apperr.ErrNoteNotFound)
		repo.AssertNotCalled(t, "GetNote", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing note maps to not found", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("GetNote", mock.Anything, p.Tenant.ID, "missing").Return(nil, sql.ErrNoRows)

		service := New(discardLogger(), repo, nil)
		note, err := service.Read(context.Background(), p, "missing")
		require.Error(t, err)
		assert.Nil(t, note)
		assert.ErrorIs(t, err, apperr.ErrNoteNotFound)
	})

	t.Run("cache failure does not fail the read", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("GetNote", mock.Anything, p.Tenant.ID, "note-1").Return(stored, nil)

		noteCache := new(mockNoteCache)
		key := cache.NoteKey(p.Tenant.ID, "note-1")
		noteCache.On("Get", key, mock.Anything).Return(false, errors.New("redis down"))
		noteCache.On("Set", key, stored, cacheTTL).Return(errors.New("redis down"))

		service := New(discardLogger(), repo, noteCache)
		note, err := service.Read(context.Background(), p, "note-1")
		require.NoError(t, err)
		assert.Equal(t, stored, note)
	})
}

func TestService_List(t *testing.T) {
	p := freePrincipal()
	stored := []*models.Note{{ID: "note-2"}, {ID: "note-1"}}

	repo := new(mockNoteRepository)
	repo.On("ListNotes", mock.Anything, p.Tenant.ID, 50, 0).Return(stored, nil)

	service := New(discardLogger(), repo, nil)

	// Некорректные limit/offset приводятся к значениям по умолчанию.
	result, err := service.List(context.Background(), p, 0, -5)
	require.NoError(t, err)
	assert.Equal(t, stored, result)
	repo.AssertExpectations(t)
}

func TestService_Update(t *testing.T) {
	p := freePrincipal()
	dummy := models.DummyNote{Title: "Updated", Content: "New text"}

	t.Run("successful update invalidates cache", func(t *testing.T) {
		updated := &models.Note{ID: "note-1", Title: dummy.Title, TenantID: p.Tenant.ID}
		repo := new(mockNoteRepository)
		repo.On("UpdateNote", mock.Anything, p.Tenant.ID, "note-1", dummy.Title, dummy.Content).Return(int64(1), nil)
		repo.On("GetNote", mock.Anything, p.Tenant.ID, "note-1").Return(updated, nil)

		noteCache := new(mockNoteCache)
		noteCache.On("Invalidate", cache.NoteKey(p.Tenant.ID, "note-1")).Return(nil)

		service := New(discardLogger(), repo, noteCache)
		note, err := service.Update(context.Background(), p, "note-1", dummy)
		require.NoError(t, err)
		assert.Equal(t, dummy.Title, note.Title)
		noteCache.AssertExpectations(t)
	})

	t.Run("zero affected rows maps to not found", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("UpdateNote", mock.Anything, p.Tenant.ID, "foreign", dummy.Title, dummy.Content).Return(int64(0), nil)

		service := New(discardLogger(), repo, nil)
		note, err := service.Update(context.Background(), p, "foreign", dummy)
		require.Error(t, err)
		assert.Nil(t, note)
		assert.ErrorIs(t, err, apperr.ErrNoteNotFound)
	})

	t.Run("note deleted between update and re-read maps to not found", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("UpdateNote", mock.Anything, p.Tenant.ID, "note-1", dummy.Title, dummy.Content).Return(int64(1), nil)
		repo.On("GetNote", mock.Anything, p.Tenant.ID, "note-1").Return(nil, sql.ErrNoRows)

		service := New(discardLogger(), repo, nil)
		note, err := service.Update(context.Background(), p, "note-1", dummy)
		require.Error(t, err)
		assert.Nil(t, note)
		assert.ErrorIs(t, err, apperr.ErrNoteNotFound)
	})
}

func TestService_Remove(t *testing.T) {
	p := freePrincipal()

	t.Run("successful remove invalidates cache", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("RemoveNote", mock.Anything, p.Tenant.ID, "note-1").Return(int64(1), nil)

		noteCache := new(mockNoteCache)
		noteCache.On("Invalidate", cache.NoteKey(p.Tenant.ID, "note-1")).Return(nil)

		service := New(discardLogger(), repo, noteCache)
		require.NoError(t, service.Remove(context.Background(), p, "note-1"))
		noteCache.AssertExpectations(t)
	})

	t.Run("zero affected rows maps to not found", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("RemoveNote", mock.Anything, p.Tenant.ID, "foreign").Return(int64(0), nil)

		service := New(discardLogger(), repo, nil)
		err := service.Remove(context.Background(), p, "foreign")
		assert.ErrorIs(t, err, apperr.ErrNoteNotFound)
	})
}
