package response

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/notes-saas/internal/apperr"
)

func TestErr(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
		wantCode   string
	}{
		{
			name:       "unauthenticated",
			err:        apperr.ErrUnauthenticated,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "authentication required",
		},
		{
			name:       "invalid credentials",
			err:        apperr.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "invalid credentials",
		},
		{
			name:       "forbidden",
			err:        apperr.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantMsg:    "insufficient permissions",
		},
		{
			name:       "not found",
			err:        apperr.ErrNoteNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "note not found",
		},
		{
			name:       "quota exceeded carries machine-readable code",
			err:        apperr.ErrQuotaExceeded,
			wantStatus: http.StatusForbidden,
			wantMsg:    "note limit reached, upgrade to pro for unlimited notes",
			wantCode:   "NOTE_LIMIT_REACHED",
		},
		{
			name:       "validation",
			err:        apperr.New(apperr.KindValidation, "role must be admin or member"),
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "role must be admin or member",
		},
		{
			name:       "internal details are not leaked",
			err:        apperr.Wrap(apperr.KindInternal, "failed to read note", errors.New("dial tcp: connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
		{
			name:       "plain error maps to internal",
			err:        errors.New("something broke"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := Err(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, StatusError, resp.Status)
			assert.Equal(t, tt.wantMsg, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestOKWithData(t *testing.T) {
	resp := OKWithData(map[string]any{"token": "abc"})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}
