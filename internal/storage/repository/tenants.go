package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/notes-saas/internal/models"
)

// UpdateTenantPlan переводит арендатора на указанный тариф и возвращает
// обновлённую запись. Повторное применение того же тарифа безвредно.
func (s *Storage) UpdateTenantPlan(ctx context.Context, tenantID, plan string) (*models.Tenant, error) {
	const op = "storage.UpdateTenantPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE tenants
			  SET plan = $1
			  WHERE id = $2
			  RETURNING id, slug, name, plan`
	t := &models.Tenant{}
	row := s.DB.QueryRowContext(ctx, query, plan, tenantID)
	if err := row.Scan(&t.ID, &t.Slug, &t.Name, &t.Plan); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// GetTenantBySlug возвращает арендатора по его slug.
func (s *Storage) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	const op = "storage.GetTenantBySlug"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, slug, name, plan
			  FROM tenants
			  WHERE slug = $1`
	t := &models.Tenant{}
	row := s.DB.QueryRowContext(ctx, query, slug)
	if err := row.Scan(&t.ID, &t.Slug, &t.Name, &t.Plan); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}
