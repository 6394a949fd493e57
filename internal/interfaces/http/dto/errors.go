package dto

import "net/http"

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	ErrCodeForbidden:      http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:         http.StatusNotFound,
	"ALREADY_EXISTS":        http.StatusConflict,
	"CONCURRENCY_CONFLICT":  http.StatusConflict,
	"OPTIMISTIC_LOCK_ERROR": http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"ALREADY_CONVERTED":   http.StatusUnprocessableEntity,
	"EXCEEDS_OUTSTANDING": http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	"INVALID_INPUT":           http.StatusBadRequest,
	"INVALID_CLIENT":          http.StatusBadRequest,
	"INVALID_CALL_LOG_TARGET": http.StatusBadRequest,
	"VALIDATION_ERROR":        http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
