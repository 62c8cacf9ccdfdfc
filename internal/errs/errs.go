// Package errs defines the error taxonomy shared by the search core and its
// HTTP/MCP surfaces.
package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code identifies a class of failure.
type Code string

const (
	CodeConfiguration        Code = "CONFIGURATION_ERROR"
	CodeProviderFetch        Code = "PROVIDER_FETCH_ERROR"
	CodeInvalidFilterPattern Code = "INVALID_FILTER_PATTERN"
	CodeRecordStore          Code = "RECORD_STORE_ERROR"
	CodeNotFound             Code = "NOT_FOUND"
	CodeValidation           Code = "VALIDATION_FAILED"
	CodeInternal             Code = "INTERNAL_ERROR"
)

// Error is a coded error carrying the HTTP status it should surface with.
type Error struct {
	Code    Code
	Message string
	Status  int
	Details []string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Configuration reports missing or invalid startup settings.
func Configuration(msg string, err error) *Error {
	return &Error{
		Code:    CodeConfiguration,
		Message: msg,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// ProviderFetch reports a non-success answer from the external search provider.
// status is the provider's HTTP status; zero means the request never got an answer.
func ProviderFetch(provider string, status int, err error) *Error {
	surfaced := status
	if surfaced < http.StatusBadRequest {
		surfaced = http.StatusBadGateway
	}
	msg := fmt.Sprintf("failed to fetch jobs from %s", provider)
	if status > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, status)
	}
	return &Error{
		Code:    CodeProviderFetch,
		Message: msg,
		Status:  surfaced,
		Err:     err,
	}
}

// RecordStore reports a read or write failure against the record store.
func RecordStore(op string, err error) *Error {
	return &Error{
		Code:    CodeRecordStore,
		Message: "record store " + op + " failed",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// InvalidFilterPattern is recovered locally by the filter engine and never
// reaches a caller; it exists so the condition can be logged uniformly.
func InvalidFilterPattern(stage, pattern string, err error) *Error {
	return &Error{
		Code:    CodeInvalidFilterPattern,
		Message: fmt.Sprintf("invalid %s pattern %q", stage, pattern),
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func NotFound(msg string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: msg,
		Status:  http.StatusNotFound,
	}
}

func Validation(msg string, details ...string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: msg,
		Status:  http.StatusBadRequest,
		Details: details,
	}
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// HTTPStatus returns the status err should be rendered with.
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Status > 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
