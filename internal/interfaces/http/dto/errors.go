package dto

import (
	"net/http"
	"strings"
)

// Common error codes surfaced by the API. Domain errors carry their own
// codes; these cover the transport-level failures.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodePayloadSize  = "FILE_TOO_LARGE"
)

// errorCodeStatus maps domain error codes to HTTP status codes.
var errorCodeStatus = map[string]int{
	"NOT_FOUND":      http.StatusNotFound,
	"CART_NOT_FOUND": http.StatusNotFound,
	"ITEM_NOT_FOUND": http.StatusNotFound,

	"UNAUTHORIZED": http.StatusUnauthorized,
	"FORBIDDEN":    http.StatusForbidden,

	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"INSUFFICIENT_STOCK":   http.StatusConflict,
	"INVALID_STATE":        http.StatusConflict,

	"NO_ITEMS":            http.StatusBadRequest,
	"VALIDATION_FAILED":   http.StatusBadRequest,
	"CATEGORY_RESOLUTION": http.StatusBadRequest,
	"CONTACT_LIMIT":       http.StatusBadRequest,
	"BAD_REQUEST":         http.StatusBadRequest,

	"FILE_TOO_LARGE": http.StatusRequestEntityTooLarge,

	"INTERNAL_ERROR":      http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code.
// Validation-style codes (INVALID_*) map to 400, duplicate-state codes
// (ALREADY_*) to 409, and anything unknown to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	if strings.HasPrefix(code, "ALREADY_") {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
