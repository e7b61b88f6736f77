// Package apperr defines the closed error taxonomy shared by every layer.
// Callers classify failures by code, never by message text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a failure class.
type Code string

const (
	CodeMissingField             Code = "MISSING_FIELD"
	CodeInvalidCoordinates       Code = "INVALID_COORDINATES"
	CodeInvalidConfiguration     Code = "INVALID_CONFIGURATION"
	CodeRouteProviderUnavailable Code = "ROUTE_PROVIDER_UNAVAILABLE"
	CodePriceAPIUnavailable      Code = "PRICE_API_UNAVAILABLE"
	CodeOfflineNoCache           Code = "OFFLINE_NO_CACHE"
	CodeNotFound                 Code = "NOT_FOUND"
	CodeDatabaseUnavailable      Code = "DATABASE_UNAVAILABLE"
	CodeConflict                 Code = "CONFLICT"
	CodeUnauthorized             Code = "UNAUTHORIZED"
	CodeForbidden                Code = "FORBIDDEN"
	CodeInternal                 Code = "INTERNAL"
)

// Error is a coded application error.
type Error struct {
	Code    Code
	Message string
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return e.Message
}

// Is reports whether target carries the same code, so sentinel values
// below work with errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// Sentinels for errors.Is matching.
var (
	ErrMissingField             = &Error{Code: CodeMissingField}
	ErrInvalidCoordinates       = &Error{Code: CodeInvalidCoordinates}
	ErrInvalidConfiguration     = &Error{Code: CodeInvalidConfiguration}
	ErrRouteProviderUnavailable = &Error{Code: CodeRouteProviderUnavailable}
	ErrPriceAPIUnavailable      = &Error{Code: CodePriceAPIUnavailable}
	ErrOfflineNoCache           = &Error{Code: CodeOfflineNoCache}
	ErrNotFound                 = &Error{Code: CodeNotFound}
	ErrDatabaseUnavailable      = &Error{Code: CodeDatabaseUnavailable}
	ErrConflict                 = &Error{Code: CodeConflict}
	ErrUnauthorized             = &Error{Code: CodeUnauthorized}
	ErrForbidden                = &Error{Code: CodeForbidden}
)

// NewMissingField reports a required field that is absent or blank.
func NewMissingField(field string) *Error {
	return &Error{Code: CodeMissingField, Message: fmt.Sprintf("%s is required", field)}
}

// NewInvalidCoordinates reports a coordinate pair that failed parsing or range checks.
func NewInvalidCoordinates(detail string) *Error {
	return &Error{Code: CodeInvalidCoordinates, Message: detail}
}

// NewInvalidConfiguration reports an invalid mobility profile construction.
func NewInvalidConfiguration(detail string) *Error {
	return &Error{Code: CodeInvalidConfiguration, Message: detail}
}

// NewRouteProviderUnavailable normalizes any transport-level routing failure.
func NewRouteProviderUnavailable(detail string) *Error {
	return &Error{Code: CodeRouteProviderUnavailable, Message: detail}
}

// NewPriceAPIUnavailable reports a price feed failure. Non-fatal to planning.
func NewPriceAPIUnavailable(detail string) *Error {
	return &Error{Code: CodePriceAPIUnavailable, Message: detail}
}

// NewOfflineNoCache reports an offline read with no cached fallback.
func NewOfflineNoCache() *Error {
	return &Error{Code: CodeOfflineNoCache, Message: "offline and no cached data available"}
}

// NewNotFound reports a missing entity.
func NewNotFound(entity, id string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewDatabaseUnavailable reports an online-only mutation attempted while offline.
func NewDatabaseUnavailable() *Error {
	return &Error{Code: CodeDatabaseUnavailable, Message: "an internet connection is required for this action"}
}

// NewConflict reports a uniqueness violation.
func NewConflict(detail string) *Error {
	return &Error{Code: CodeConflict, Message: detail}
}

// NewUnauthorized reports a missing or invalid credential.
func NewUnauthorized(detail string) *Error {
	return &Error{Code: CodeUnauthorized, Message: detail}
}

// CodeOf extracts the code from err, or CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// HTTPStatus maps an error to the response status used by the handler layer.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeMissingField, CodeInvalidCoordinates, CodeInvalidConfiguration:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeRouteProviderUnavailable, CodePriceAPIUnavailable:
		return http.StatusBadGateway
	case CodeOfflineNoCache, CodeDatabaseUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
