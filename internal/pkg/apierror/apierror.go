package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a failure so the HTTP layer can pick a status code
// without string-matching error messages.
type ErrorCode string

const (
	ErrAuthentication     ErrorCode = "AUTHENTICATION_FAILED"
	ErrAuthorization      ErrorCode = "AUTHORIZATION_DENIED"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrBadRequest         ErrorCode = "BAD_REQUEST"
	ErrConflict           ErrorCode = "CONFLICT"
	ErrGatewayUnavailable ErrorCode = "GATEWAY_UNAVAILABLE"
	ErrIntegrityViolation ErrorCode = "INTEGRITY_VIOLATION"
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"
)

// APIError is the error type every service returns to its handler.
type APIError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code ErrorCode, message string, details interface{}) APIError {
	return APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// MapErrorToHTTPStatus translates an error into the HTTP status code the
// caller should receive. Unknown error types map to 500.
func MapErrorToHTTPStatus(err error) int {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case ErrAuthentication:
			return http.StatusUnauthorized
		case ErrAuthorization:
			return http.StatusForbidden
		case ErrNotFound:
			return http.StatusNotFound
		case ErrBadRequest, ErrIntegrityViolation:
			return http.StatusBadRequest
		case ErrConflict:
			return http.StatusConflict
		case ErrGatewayUnavailable:
			return http.StatusBadGateway
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

// IsCode reports whether err is an APIError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var apiErr APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
