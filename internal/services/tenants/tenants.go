// Package tenants реализует административные операции арендатора:
// апгрейд тарифного плана и приглашение пользователей. Обе операции
// доступны только админу своего арендатора.
package tenants

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/notes-saas/internal/apperr"
	"github.com/magabrotheeeer/notes-saas/internal/lib/password"
	"github.com/magabrotheeeer/notes-saas/internal/lib/sl"
	"github.com/magabrotheeeer/notes-saas/internal/models"
	"github.com/magabrotheeeer/notes-saas/internal/services/access"
)

// Пароль по умолчанию для приглашённых пользователей, если явный
// не передан в запросе.
const defaultInvitePassword = "password"

// TenantRepository описывает контракт для работы с арендаторами и
// создания приглашённых пользователей.
type TenantRepository interface {
	UpdateTenantPlan(ctx context.Context, tenantID, plan string) (*models.Tenant, error)
	CreateUser(ctx context.Context, user models.User) (string, error)
}

// Publisher отправляет события в очередь уведомлений.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// InviteEvent — событие приглашения пользователя, уходящее в очередь
// уведомлений для отправки письма.
type InviteEvent struct {
	Email      string `json:"email"`
	TenantSlug string `json:"tenant_slug"`
	Inviter    string `json:"inviter"`
}

// UpgradeEvent — событие смены тарифа арендатора.
type UpgradeEvent struct {
	TenantSlug string `json:"tenant_slug"`
	Plan       string `json:"plan"`
}

// Service реализует операции над арендаторами.
type Service struct {
	log       *slog.Logger
	repo      TenantRepository
	publisher Publisher
}

// New создает новый экземпляр Service. Publisher может быть nil,
// тогда события не отправляются.
func New(log *slog.Logger, repo TenantRepository, publisher Publisher) *Service {
	return &Service{
		log:       log,
		repo:      repo,
		publisher: publisher,
	}
}

// Upgrade переводит арендатора принципала на тариф pro. Требует роль
// admin и совпадение slug из пути с арендатором принципала. Повторный
// апгрейд уже оплаченного арендатора идемпотентен.
func (s *Service) Upgrade(ctx context.Context, p *models.Principal, tenantSlug string) (*models.Tenant, error) {
	if err := access.RequireRole(p, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := access.RequireTenantMatch(p, tenantSlug); err != nil {
		return nil, err
	}

	tenant, err := s.repo.UpdateTenantPlan(ctx, p.Tenant.ID, models.PlanPro)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to upgrade tenant", err)
	}

	s.publish("tenant.upgraded", UpgradeEvent{TenantSlug: tenant.Slug, Plan: tenant.Plan})
	return tenant, nil
}

// Invite создаёт пользователя в арендаторе принципала. Требует роль
// admin и совпадение slug. Пустая роль превращается в member, пустой
// пароль — в пароль по умолчанию.
func (s *Service) Invite(ctx context.Context, p *models.Principal, tenantSlug, email, role, rawPassword string) (*models.User, error) {
	if err := access.RequireRole(p, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := access.RequireTenantMatch(p, tenantSlug); err != nil {
		return nil, err
	}

	if role == "" {
		role = models.RoleMember
	}
	if role != models.RoleAdmin && role != models.RoleMember {
		return nil, apperr.New(apperr.KindValidation, "role must be admin or member")
	}
	if rawPassword == "" {
		rawPassword = defaultInvitePassword
	}

	hash, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	user := models.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Role:         role,
		TenantID:     p.Tenant.ID,
		CreatedAt:    time.Now().UTC(),
	}
	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, apperr.New(apperr.KindValidation, "email is already registered")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create user", err)
	}
	user.ID = id

	s.publish("user.invited", InviteEvent{
		Email:      user.Email,
		TenantSlug: p.Tenant.Slug,
		Inviter:    p.Email,
	})
	return &user, nil
}

// Ошибки очереди не влияют на результат операции, только на лог.
func (s *Service) publish(routingKey string, message any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, message); err != nil {
		s.log.Warn("failed to publish event", slog.String("routing_key", routingKey), sl.Err(err))
	}
}
