package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError_WrapsUnknownErrorsAsInternal(t *testing.T) {
	appErr := GetAppError(errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, KindInternal, appErr.Kind)
	assert.Equal(t, "Internal server error", appErr.Message)
}

func TestGetAppError_FindsWrappedAppError(t *testing.T) {
	err := fmt.Errorf("commit: %w", NewDuplicateEntryError("Transaction number already exists", nil))

	assert.Equal(t, KindDuplicateEntry, KindOf(err))
	assert.Equal(t, http.StatusConflict, GetAppError(err).Code)
	assert.True(t, Is(err, KindDuplicateEntry))
	assert.False(t, Is(err, KindValidation))
}

func TestTransientStoreError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransientStoreError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusServiceUnavailable, err.Code)
}

func TestKindOf_Nil(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.False(t, Is(nil, KindInternal))
}
