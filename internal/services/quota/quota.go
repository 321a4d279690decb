// Package quota проверяет лимиты тарифных планов арендаторов.
package quota

import (
	"github.com/magabrotheeeer/notes-saas/internal/apperr"
	"github.com/magabrotheeeer/notes-saas/internal/models"
)

// CheckNoteLimit проверяет, может ли арендатор на данном тарифе создать
// ещё одну заметку при текущем количестве. На тарифе pro лимита нет;
// любой другой тариф трактуется как free.
func CheckNoteLimit(plan string, count int) error {
	if plan == models.PlanPro {
		return nil
	}
	if count >= models.FreeNoteLimit {
		return apperr.ErrQuotaExceeded
	}
	return nil
}
