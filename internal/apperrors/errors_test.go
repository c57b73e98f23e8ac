package apperrors_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_IsKindAndCause(t *testing.T) {
	cause := context.DeadlineExceeded
	err := apperrors.NewTimeoutError("failed to load project", cause)

	assert.ErrorIs(t, err, apperrors.ErrTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, apperrors.ErrStorage)
	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.Contains(t, err.Error(), "failed to load project")
}

func TestKindName(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "validation", err: apperrors.NewValidationFailedError("name is required"), want: "ValidationError"},
		{name: "invalid id", err: apperrors.NewInvalidIDError("bad id"), want: "InvalidId"},
		{name: "not found", err: apperrors.NewNotFoundError("project not found"), want: "NotFound"},
		{name: "out of range", err: apperrors.NewIndexOutOfRangeError(3), want: "IndexOutOfRange"},
		{name: "timeout", err: apperrors.NewTimeoutError("slow", nil), want: "Timeout"},
		{name: "storage", err: apperrors.NewStorageError("down", errors.New("conn refused")), want: "StorageError"},
		{name: "wrapped", err: fmt.Errorf("service: %w", apperrors.NewNotFoundError("gone")), want: "NotFound"},
		{name: "unclassified", err: errors.New("boom"), want: "StorageError"},
		{name: "ref out of range", err: apperrors.NewRefOutOfRangeError("99999999999999999999"), want: "IndexOutOfRange"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.KindName(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	wrapped := fmt.Errorf("failed to get project: %w", apperrors.NewNotFoundError("project not found"))
	assert.Equal(t, "project not found", apperrors.Message(wrapped))
	assert.Equal(t, "plain", apperrors.Message(errors.New("plain")))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(apperrors.NewValidationFailedError("bad")))
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(apperrors.NewRefOutOfRangeError("1e30")))
	assert.Equal(t, http.StatusNotFound, apperrors.StatusCode(fmt.Errorf("wrap: %w", apperrors.NewNotFoundError("gone"))))
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(apperrors.NewTimeoutError("slow", nil)))
	assert.Equal(t, http.StatusNotFound, apperrors.StatusCode(fmt.Errorf("wrap: %w", apperrors.ErrNotFound)))
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(errors.New("boom")))
}

func TestIsClientError(t *testing.T) {
	assert.True(t, apperrors.IsClientError(apperrors.NewIndexOutOfRangeError(0)))
	assert.True(t, apperrors.IsClientError(fmt.Errorf("wrap: %w", apperrors.ErrNotFound)))
	assert.False(t, apperrors.IsClientError(apperrors.NewTimeoutError("slow", nil)))
	assert.False(t, apperrors.IsClientError(errors.New("boom")))
}
