package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/betstack/betstack/internal/model"
	"github.com/betstack/betstack/internal/services/auth"
	"github.com/betstack/betstack/internal/services/topup"
	"github.com/betstack/betstack/internal/services/wallet"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeReceiptNotFound    = "RECEIPT_NOT_FOUND"
	CodeMissingReference   = "MISSING_REFERENCE"
	CodeInvalidAmount      = "INVALID_AMOUNT"
	CodeGatewayUnavailable = "GATEWAY_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Map model errors
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrReceiptNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeReceiptNotFound, "Top-up receipt not found"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	// Map wallet and top-up errors
	case errors.Is(err, wallet.ErrInvalidAmount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidAmount, "Credit amount must be positive"}}
	case errors.Is(err, topup.ErrMissingReference):
		return &httpError{http.StatusBadRequest, APIError{CodeMissingReference, "Payment reference is required"}}
	case errors.Is(err, topup.ErrGatewayUnavailable):
		return &httpError{http.StatusBadGateway, APIError{CodeGatewayUnavailable, "Payment gateway unavailable, try again"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
