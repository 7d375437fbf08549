package approvalerrors

import (
	"net/http"

	"github.com/symtons/leavedesk/internal/shared/apperror"
)

var (
	ErrReasonTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"Rejection reason must be at least 10 characters",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"That request is no longer in the pending list",
		http.StatusNotFound,
	)
	ErrActionInFlight = apperror.New(
		apperror.CodeConflict,
		"This request is already being processed",
		http.StatusConflict,
	)
)
