package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/notes-saas/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает его ID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO users (email, password_hash, role, tenant_id)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.Role, user.TenantID).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByEmail возвращает пользователя вместе с его арендатором по email.
// Поиск идёт по всем арендаторам: email уникален в системе.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, *models.Tenant, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.id, u.email, u.password_hash, u.role, u.tenant_id, u.created_at,
			      t.id, t.slug, t.name, t.plan
			  FROM users u
			  JOIN tenants t ON t.id = u.tenant_id
			  WHERE u.email = $1`
	u := &models.User{}
	t := &models.Tenant{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.TenantID, &u.CreatedAt,
		&t.ID, &t.Slug, &t.Name, &t.Plan); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, t, nil
}

// GetUserWithTenant возвращает пользователя и его арендатора по ID.
// Используется при разборе токена: роль и тариф берутся отсюда,
// а не из claims.
func (s *Storage) GetUserWithTenant(ctx context.Context, userID string) (*models.User, *models.Tenant, error) {
	const op = "storage.GetUserWithTenant"
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.id, u.email, u.password_hash, u.role, u.tenant_id, u.created_at,
			      t.id, t.slug, t.name, t.plan
			  FROM users u
			  JOIN tenants t ON t.id = u.tenant_id
			  WHERE u.id = $1`
	u := &models.User{}
	t := &models.Tenant{}
	row := s.DB.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.TenantID, &u.CreatedAt,
		&t.ID, &t.Slug, &t.Name, &t.Plan); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, t, nil
}
