package api

import (
	"fmt"
	"net/http"
	"strings"
)

// ApiError is the error envelope every failed request is reduced to. The
// body serializes as {"error": "..."}.
type ApiError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
	Err        error  `json:"-"`
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}

	return e.Message
}

func (e *ApiError) Unwrap() error {
	return e.Err
}

func lower(s string) string {
	return strings.ToLower(s)
}

// NewValidationError reports malformed or out-of-bounds input.
func NewValidationError(message string) *ApiError {
	return &ApiError{
		StatusCode: http.StatusBadRequest,
		Message:    message,
	}
}

// NewConflictError reports a uniqueness violation on a member-supplied value.
func NewConflictError(message string) *ApiError {
	return &ApiError{
		StatusCode: http.StatusBadRequest,
		Message:    message,
	}
}

// NewAuthenticationError reports a missing, malformed, or unknown credential.
func NewAuthenticationError(message string) *ApiError {
	return &ApiError{
		StatusCode: http.StatusUnauthorized,
		Message:    message,
	}
}

func NewBadRequestError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusBadRequest,
		Message:    lower(http.StatusText(http.StatusBadRequest)),
	}
}

func NewInternalServerError(err error) *ApiError {
	return &ApiError{
		StatusCode: http.StatusInternalServerError,
		Message:    lower(http.StatusText(http.StatusInternalServerError)),
		Err:        err,
	}
}
