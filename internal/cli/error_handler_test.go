package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"todo-tracker/internal/errors"
	"todo-tracker/internal/validation"
)

func TestErrorHandler_HandleValidationError(t *testing.T) {
	handler := NewErrorHandler()

	validationErr := validation.NewValidationError()
	validationErr.AddRequiredError("title")

	err := handler.Handle("add task", validationErr)
	assert.Contains(t, err.Error(), "failed to add task")
	assert.Contains(t, err.Error(), "title")
}

func TestErrorHandler_HandleAppError(t *testing.T) {
	handler := NewErrorHandler()

	err := handler.Handle("show task", errors.NewNotFoundError("task", "42"))
	assert.Contains(t, err.Error(), "failed to show task")
}

func TestErrorHandler_HandleUnknownError(t *testing.T) {
	handler := NewErrorHandler()

	cause := fmt.Errorf("boom")
	err := handler.Handle("delete task", cause)
	assert.ErrorIs(t, err, cause)
}

func TestErrorHandler_Predicates(t *testing.T) {
	handler := NewErrorHandler()

	validationErr := validation.NewValidationError()
	validationErr.AddRequiredError("title")

	assert.True(t, handler.IsValidationError(validationErr))
	assert.True(t, handler.IsValidationError(errors.NewValidationError("bad", nil)))
	assert.False(t, handler.IsValidationError(errors.NewNotFoundError("task", "1")))

	assert.True(t, handler.IsNotFoundError(errors.NewNotFoundError("task", "1")))
	assert.False(t, handler.IsNotFoundError(validationErr))
}
