package errors_test

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "firmdesk.backend/internal/domain/errors"
)

func TestAppError_WrapsSentinels(t *testing.T) {
	err := domainerrors.NotFound(domainerrors.CodeInfluencerNotFound, "influencer not found")

	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "INFLUENCER_NOT_FOUND", err.Code)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestValidation_CarriesDetails(t *testing.T) {
	err := domainerrors.Validation([]string{"name too short", "email invalid"})

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "VALIDATION_ERROR", err.Code)
	assert.Len(t, err.Details, 2)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestAsAppError(t *testing.T) {
	appErr := domainerrors.Conflict(domainerrors.CodeDuplicateValues, "dup")
	wrapped := stderrors.Join(appErr)
	require.Same(t, appErr, domainerrors.AsAppError(wrapped))

	plain := stderrors.New("boom")
	got := domainerrors.AsAppError(plain)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", got.Code)
	assert.ErrorIs(t, got, plain)
}
