package leaveerrors

import (
	"net/http"

	"github.com/symtons/leavedesk/internal/shared/apperror"
)

var (
	ErrEndBeforeStart = apperror.New(
		apperror.CodeInvalidInput,
		"End date cannot be before start date",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrLeaveTypeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Please select a leave type",
		http.StatusBadRequest,
	)
	ErrDatesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Please choose both a start and an end date",
		http.StatusBadRequest,
	)
	ErrNotCancellable = apperror.New(
		apperror.CodeInvalidState,
		"Only your own pending requests can be cancelled",
		http.StatusBadRequest,
	)
)
