package tenants

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/notes-saas/internal/apperr"
	"github.com/magabrotheeeer/notes-saas/internal/lib/password"
	"github.com/magabrotheeeer/notes-saas/internal/models"
)

type mockTenantRepository struct {
	mock.Mock
}

func (m *mockTenantRepository) UpdateTenantPlan(ctx context.Context, tenantID, plan string) (*models.Tenant, error) {
	args := m.Called(ctx, tenantID, plan)
	tenant, _ := args.Get(0).(*models.Tenant)
	return tenant, args.Error(1)
}

func (m *mockTenantRepository) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func adminPrincipal() *models.Principal {
	return &models.Principal{
		UserID: "user-1",
		Email:  "admin@acme.test",
		Role:   models.RoleAdmin,
		Tenant: models.Tenant{ID: "tenant-1", Slug: "acme", Name: "Acme", Plan: models.PlanFree},
	}
}

func memberPrincipal() *models.Principal {
	p := adminPrincipal()
	p.Email = "user@acme.test"
	p.Role = models.RoleMember
	return p
}

func TestService_Upgrade(t *testing.T) {
	upgraded := &models.Tenant{ID: "tenant-1", Slug: "acme", Name: "Acme", Plan: models.PlanPro}

	tests := []struct {
		name      string
		principal *models.Principal
		slug      string
		setupMock func(*mockTenantRepository, *mockPublisher)
		wantErr   error
		wantKind  apperr.Kind
	}{
		{
			name:      "admin upgrades own tenant",
			principal: adminPrincipal(),
			slug:      "acme",
			setupMock: func(repo *mockTenantRepository, pub *mockPublisher) {
				repo.On("UpdateTenantPlan", mock.Anything, "tenant-1", models.PlanPro).Return(upgraded, nil)
				pub.On("Publish", "tenant.upgraded", UpgradeEvent{TenantSlug: "acme", Plan: models.PlanPro}).Return(nil)
			},
		},
		{
			name:      "member cannot upgrade",
			principal: memberPrincipal(),
			slug:      "acme",
			setupMock: func(repo *mockTenantRepository, pub *mockPublisher) {},
			wantErr:   apperr.ErrForbidden,
		},
		{
			name:      "admin of another tenant is rejected",
			principal: adminPrincipal(),
			slug:      "globex",
			setupMock: func(repo *mockTenantRepository, pub *mockPublisher) {},
			wantErr:   apperr.ErrForbidden,
		},
		{
			name:      "storage failure",
			principal: adminPrincipal(),
			slug:      "acme",
			setupMock: func(repo *mockTenantRepository, pub *mockPublisher) {
				repo.On("UpdateTenantPlan", mock.Anything, "tenant-1", models.PlanPro).Return(nil, errors.New("connection refused"))
			},
			wantKind: apperr.KindInternal,
		},
		{
			name:      "publish failure does not fail the upgrade",
			principal: adminPrincipal(),
			slug:      "acme",
			setupMock: func(repo *mockTenantRepository, pub *mockPublisher) {
				repo.On("UpdateTenantPlan", mock.Anything, "tenant-1", models.PlanPro).Return(upgraded, nil)
				pub.On("Publish", "tenant.upgraded", mock.Anything).Return(errors.New("broker down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockTenantRepository)
			pub := new(mockPublisher)
			tt.setupMock(repo, pub)
			service := New(discardLogger(), repo, pub)

			tenant, err := service.Upgrade(context.Background(), tt.principal, tt.slug)

			if tt.wantErr == nil && tt.wantKind == "" {
				require.NoError(t, err)
				require.NotNil(t, tenant)
				assert.Equal(t, models.PlanPro, tenant.Plan)
			} else {
				require.Error(t, err)
				assert.Nil(t, tenant)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				if tt.wantKind != "" {
					assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				}
			}
			repo.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestService_Invite(t *testing.T) {
	tests := []struct {
		name      string
		principal *models.Principal
		slug      string
		email     string
		role      string
		password  string
		setupMock func(*mockTenantRepository, *mockPublisher)
		wantErr   error
		wantKind  apperr.Kind
		check     func(*testing.T, *models.User)
	}{
		{
			name:      "admin invites member with defaults",
			principal: adminPrincipal(),
			slug:      "acme",
			email:     "New.User@acme.test",
			setupMock: func(repo *mockTenantRepository, pub *mockPublisher) {
				repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Email == "new.user@acme.test" &&
						u.Role == models.RoleMember &&
						u.TenantID == "tenant-1" &&
						password.CompareHash(u.PasswordHash, defaultInvitePassword) == nil
				})).Return("user-9", nil)
				pub.On("Publish", "user.invited", InviteEvent{
					Email:      "new.user@acme.test",
					TenantSlug: "acme",
					Inviter:    "admin@acme.test",
				}).Return(nil)
			},
			check: func(t *testing.T, u *models.User) {
				assert.Equal(t, "user-9", u.ID)
				assert.Equal(t, models.RoleMember, u.Role)
			},
		},
		{
			name:      "admin invites another admin with explicit password",
			principal: adminPrincipal(),
			slug:      "acme",
			email:     "second@acme.test",
			role:      models.RoleAdmin,
			password:  "s3cret",
			setupMock: func(repo *mockTenantRepository, pub *mockPublisher) {
				repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Role == models.RoleAdmin &&
						password.CompareHash(u.PasswordHash, "s3cret") == nil
				})).Return("user-10", nil)
				pub.On("Publish", "user.invited", mock.Anything).Return(nil)
			},
			check: func(t *testing.T, u *models.User) {
				assert.Equal(t, models.RoleAdmin, u.Role)
			},
		},
		{
			name:      "member cannot invite",
			principal: memberPrincipal(),
			slug:      "acme",
			email:     "new@acme.test",
			setupMock: func(repo *mockTenantRepository, pub *mockPublisher) {},
			wantErr:   apperr.ErrForbidden,
		},
		{
			name:      "foreign tenant slug is rejected",
			principal: adminPrincipal(),
			slug:      "globex",
			email:     "new@globex.test",
			setupMock: func(repo *mockTenantRepository, pub *mockPublisher) {},
			wantErr:   apperr.ErrForbidden,
		},
		{
			name:      "unknown role is rejected",
			principal: adminPrincipal(),
			slug:      "acme",
			email:     "new@acme.test",
			role:      "owner",
			setupMock: func(repo *mockTenantRepository, pub *mockPublisher) {},
			wantKind:  apperr.KindValidation,
		},
		{
			name:      "already registered email is a validation error",
			principal: adminPrincipal(),
			slug:      "acme",
			email:     "taken@acme.test",
			setupMock: func(repo *mockTenantRepository, pub *mockPublisher) {
				repo.On("CreateUser", mock.Anything, mock.Anything).
					Return("", &pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantKind: apperr.KindValidation,
		},
		{
			name:      "storage failure",
			principal: adminPrincipal(),
			slug:      "acme",
			email:     "new@acme.test",
			setupMock: func(repo *mockTenantRepository, pub *mockPublisher) {
				repo.On("CreateUser", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))
			},
			wantKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockTenantRepository)
			pub := new(mockPublisher)
			tt.setupMock(repo, pub)
			service := New(discardLogger(), repo, pub)

			user, err := service.Invite(context.Background(), tt.principal, tt.slug, tt.email, tt.role, tt.password)

			if tt.wantErr == nil && tt.wantKind == "" {
				require.NoError(t, err)
				require.NotNil(t, user)
				if tt.check != nil {
					tt.check(t, user)
				}
			} else {
				require.Error(t, err)
				assert.Nil(t, user)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				if tt.wantKind != "" {
					assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				}
			}
			repo.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}
