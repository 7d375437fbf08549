package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// Server / network errors (5xx or no response at all)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeTransport          = "TRANSPORT_ERROR"

	// Partial data: a supporting lookup failed but the primary view is fine.
	// Logged, never surfaced as blocking.
	CodePartialData = "PARTIAL_DATA"
)
