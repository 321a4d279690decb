package upgrade

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/notes-saas/internal/apperr"
	"github.com/magabrotheeeer/notes-saas/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-saas/internal/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Upgrade(ctx context.Context, p *models.Principal, tenantSlug string) (*models.Tenant, error) {
	args := m.Called(ctx, p, tenantSlug)
	tenant, _ := args.Get(0).(*models.Tenant)
	return tenant, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func adminPrincipal() *models.Principal {
	return &models.Principal{
		UserID: "user-1",
		Email:  "admin@acme.test",
		Role:   models.RoleAdmin,
		Tenant: models.Tenant{ID: "tenant-1", Slug: "acme", Plan: models.PlanFree},
	}
}

func newRequest(slug string, principal *models.Principal) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenants/"+slug+"/upgrade", nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", slug)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if principal != nil {
		ctx = context.WithValue(ctx, middlewarectx.PrincipalKey, principal)
	}
	return req.WithContext(ctx)
}

func TestHandler_ServeHTTP(t *testing.T) {
	principal := adminPrincipal()
	upgraded := &models.Tenant{ID: "tenant-1", Slug: "acme", Plan: models.PlanPro}

	tests := []struct {
		name       string
		slug       string
		principal  *models.Principal
		setupMock  func(*mockService)
		wantStatus int
	}{
		{
			name:      "admin upgrades own tenant",
			slug:      "acme",
			principal: principal,
			setupMock: func(m *mockService) {
				m.On("Upgrade", mock.Anything, principal, "acme").Return(upgraded, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:      "forbidden for member or foreign tenant",
			slug:      "globex",
			principal: principal,
			setupMock: func(m *mockService) {
				m.On("Upgrade", mock.Anything, principal, "globex").Return(nil, apperr.ErrForbidden)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no principal in context",
			slug:       "acme",
			setupMock:  func(m *mockService) {},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockService)
			tt.setupMock(service)
			handler := New(newNoopLogger(), service)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, newRequest(tt.slug, tt.principal))

			assert.Equal(t, tt.wantStatus, rec.Code)
			service.AssertExpectations(t)
		})
	}
}
