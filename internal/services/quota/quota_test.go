package quota

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/notes-saas/internal/apperr"
	"github.com/magabrotheeeer/notes-saas/internal/models"
)

func TestCheckNoteLimit(t *testing.T) {
	tests := []struct {
		name    string
		plan    string
		count   int
		wantErr bool
	}{
		{name: "free plan under limit", plan: models.PlanFree, count: 0},
		{name: "free plan one below limit", plan: models.PlanFree, count: models.FreeNoteLimit - 1},
		{name: "free plan at limit", plan: models.PlanFree, count: models.FreeNoteLimit, wantErr: true},
		{name: "free plan above limit", plan: models.PlanFree, count: models.FreeNoteLimit + 5, wantErr: true},
		{name: "pro plan at free limit", plan: models.PlanPro, count: models.FreeNoteLimit},
		{name: "pro plan with many notes", plan: models.PlanPro, count: 1000},
		{name: "unknown plan behaves like free", plan: "enterprise", count: models.FreeNoteLimit, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckNoteLimit(tt.plan, tt.count)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrQuotaExceeded)
				assert.Equal(t, apperr.KindQuotaExceeded, apperr.KindOf(err))
				assert.Equal(t, "NOTE_LIMIT_REACHED", apperr.CodeOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
