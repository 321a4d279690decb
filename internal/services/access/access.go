// Package access содержит проверки авторизации поверх Principal:
// роль, принадлежность арендатору и владение ресурсом.
package access

import (
	"github.com/magabrotheeeer/notes-saas/internal/apperr"
	"github.com/magabrotheeeer/notes-saas/internal/models"
)

// RequireRole проверяет, что роль принципала совпадает с требуемой.
// При несовпадении возвращается отказ в доступе.
func RequireRole(p *models.Principal, role string) error {
	if p == nil || p.Role != role {
		return apperr.ErrForbidden
	}
	return nil
}

// RequireTenantMatch проверяет, что арендатор из пути запроса совпадает
// с арендатором принципала. Админ одного арендатора не может управлять
// другим, даже зная его slug.
func RequireTenantMatch(p *models.Principal, tenantSlug string) error {
	if p == nil || p.Tenant.Slug != tenantSlug {
		return apperr.ErrForbidden
	}
	return nil
}

// RequireOwnership проверяет, что ресурс принадлежит арендатору принципала.
//
// Несовпадение возвращает "не найдено", а не "запрещено": ответ
// неотличим от обращения к несуществующему ресурсу, и чужой арендатор
// не может проверить существование заметки перебором идентификаторов.
func RequireOwnership(p *models.Principal, resourceTenantID string) error {
	if p == nil || p.Tenant.ID != resourceTenantID {
		return apperr.ErrNoteNotFound
	}
	return nil
}
