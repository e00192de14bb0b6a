package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: bad", apperrors.ErrValidation), http.StatusBadRequest},
		{"not found", fmt.Errorf("load: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden},
		{"conflict", apperrors.ErrConflict, http.StatusConflict},
		{"duplicate", apperrors.ErrDuplicate, http.StatusConflict},
		{"integrity", apperrors.ErrIntegrity, http.StatusConflict},
		{"app error 4xx", apperrors.NewAppError(http.StatusUnprocessableEntity, "nope", nil), http.StatusUnprocessableEntity},
		{"app error 5xx", apperrors.NewAppError(http.StatusBadGateway, "upstream", nil), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
