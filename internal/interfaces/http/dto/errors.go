package dto

import (
	"net/http"

	"github.com/poolcrm/backend/internal/domain/shared"
)

// HTTP-layer error codes that have no domain counterpart
const (
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:     http.StatusBadRequest,
	shared.CodeUnauthorized:   http.StatusUnauthorized,
	shared.CodeForbidden:      http.StatusForbidden,
	shared.CodeNotFound:       http.StatusNotFound,
	shared.CodeConflict:       http.StatusConflict,
	shared.CodeDuplicatePhone: http.StatusConflict,
	shared.CodeRateLimited:    http.StatusTooManyRequests,
	shared.CodeInternal:       http.StatusInternalServerError,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
