package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantKind Kind
		wantCode int
	}{
		{"already open", NewAlreadyOpenError("settlement exists"), KindAlreadyOpen, http.StatusConflict},
		{"settlement not open", NewSettlementNotOpenError("closed"), KindSettlementNotOpen, http.StatusConflict},
		{"invalid amount", NewInvalidAmountError("negative"), KindInvalidAmount, http.StatusUnprocessableEntity},
		{"insufficient cash", NewInsufficientCashError("would go negative"), KindInsufficientCash, http.StatusUnprocessableEntity},
		{"not found", NewNotFoundError("Settlement"), KindNotFound, http.StatusNotFound},
		{"conflict", NewConflictError("busy"), KindConflict, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKind, tt.err.Kind)
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.True(t, IsKind(tt.err, tt.wantKind))
		})
	}
}

func TestIsKind(t *testing.T) {
	err := NewAlreadyOpenError("settlement exists")

	assert.True(t, IsKind(err, KindAlreadyOpen))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(errors.New("plain"), KindAlreadyOpen))
	assert.False(t, IsKind(nil, KindAlreadyOpen))
}

func TestIsKindWrapped(t *testing.T) {
	wrapped := fmt.Errorf("closing settlement: %w", NewInsufficientCashError("short"))
	assert.True(t, IsKind(wrapped, KindInsufficientCash))
}

func TestGetAppError(t *testing.T) {
	t.Run("passes through app errors", func(t *testing.T) {
		appErr := NewNotFoundError("Settlement")
		got := GetAppError(fmt.Errorf("lookup: %w", appErr))
		require.NotNil(t, got)
		assert.Equal(t, KindNotFound, got.Kind)
		assert.Equal(t, "Settlement not found", got.Message)
	})

	t.Run("wraps unknown errors as internal", func(t *testing.T) {
		got := GetAppError(errors.New("connection refused"))
		assert.Equal(t, http.StatusInternalServerError, got.Code)
		assert.Equal(t, KindInternal, got.Kind)
	})
}

func TestValidationError(t *testing.T) {
	err := NewValidationError([]FieldError{
		{Field: "amount", Message: "must be positive"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, KindValidation, err.Kind)
	assert.Len(t, err.Errors, 1)
}
