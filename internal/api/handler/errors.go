package handler

import (
	"net/http"

	"github.com/betstack/betstack/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest     = apierr.CodeInvalidRequest
	CodeUnauthorized       = apierr.CodeUnauthorized
	CodeInvalidCredentials = apierr.CodeInvalidCredentials
	CodeUsernameExists     = apierr.CodeUsernameExists
	CodeUserNotFound       = apierr.CodeUserNotFound
	CodeReceiptNotFound    = apierr.CodeReceiptNotFound
	CodeMissingReference   = apierr.CodeMissingReference
	CodeInvalidAmount      = apierr.CodeInvalidAmount
	CodeGatewayUnavailable = apierr.CodeGatewayUnavailable
	CodeInternalError      = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
