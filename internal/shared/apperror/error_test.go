package apperror_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/symtons/leavedesk/internal/shared/apperror"
)

func TestAppError(t *testing.T) {
	t.Run("success wrap preserves the cause", func(t *testing.T) {
		cause := errors.New("dial tcp: connection refused")
		err := apperror.Wrap(cause, apperror.CodeTransport, "Unable to reach the server", 0)

		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "Unable to reach the server")
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("success wrap of nil is nil", func(t *testing.T) {
		assert.Nil(t, apperror.Wrap(nil, apperror.CodeTransport, "x", 0))
	})

	t.Run("success message surfaces structured errors verbatim", func(t *testing.T) {
		err := apperror.New(apperror.CodeConflict, "Request is not pending approval", http.StatusConflict)

		assert.Equal(t, "Request is not pending approval", apperror.Message(err))
	})

	t.Run("success message falls back for unstructured errors", func(t *testing.T) {
		assert.Equal(t, "An unexpected error occurred", apperror.Message(errors.New("boom")))
	})

	t.Run("success validation detection covers input and state codes", func(t *testing.T) {
		assert.True(t, apperror.IsValidation(apperror.RequiredField("Reason")))
		assert.True(t, apperror.IsValidation(apperror.New(apperror.CodeInvalidState, "x", 400)))
		assert.False(t, apperror.IsValidation(apperror.New(apperror.CodeNotFound, "x", 404)))
		assert.False(t, apperror.IsValidation(errors.New("boom")))
	})
}

func TestMapValidationError(t *testing.T) {
	type form struct {
		LeaveTypeID string  `json:"leaveTypeId" validate:"required"`
		TotalDays   float64 `json:"totalDays" validate:"required,gt=0"`
	}

	v := validator.New()
	apperror.RegisterTagNames(v)

	t.Run("success required tag maps to a field-level message", func(t *testing.T) {
		err := apperror.MapValidationError(v.Struct(form{TotalDays: 1}))

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
		assert.Contains(t, appErr.Message, "is required")
	})

	t.Run("success other tags map to the invalid-field message", func(t *testing.T) {
		err := apperror.MapValidationError(v.Struct(form{LeaveTypeID: "lt-1", TotalDays: -1}))

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Message, "is invalid")
	})

	t.Run("success non-validator errors map to the generic input error", func(t *testing.T) {
		err := apperror.MapValidationError(errors.New("boom"))

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	})
}
