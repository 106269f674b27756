// Package errors provides custom error types for the Meridian API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized   = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrForbidden      = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrInvalidToken   = &AppError{Code: "INVALID_TOKEN", Message: "Invalid or expired sign-in link", StatusCode: http.StatusUnauthorized}
	ErrTooManyLinks   = &AppError{Code: "TOO_MANY_LINKS", Message: "Too many sign-in links requested, try again shortly", StatusCode: http.StatusTooManyRequests}
	ErrInvalidRefresh = &AppError{Code: "INVALID_REFRESH", Message: "Invalid or expired refresh token", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Validation errors. ErrFormInvalid carries no field detail itself; the
// per-field messages ride alongside it in the response body.
var (
	ErrFormInvalid = &AppError{Code: "FORM_INVALID", Message: "One or more fields failed validation", StatusCode: http.StatusUnprocessableEntity}
	ErrFormFailed  = &AppError{Code: "FORM_VALIDATION_FAILED", Message: "Validation could not be completed", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrUserInactive = &AppError{Code: "USER_INACTIVE", Message: "User account is deactivated", StatusCode: http.StatusForbidden}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Portfolio errors.
var (
	ErrCompanyNotFound = &AppError{Code: "COMPANY_NOT_FOUND", Message: "Portfolio company not found", StatusCode: http.StatusNotFound}
	ErrDuplicateSlug   = &AppError{Code: "DUPLICATE_SLUG", Message: "A company with this slug already exists", StatusCode: http.StatusConflict}
	ErrFounderNotFound = &AppError{Code: "FOUNDER_NOT_FOUND", Message: "Founder not found", StatusCode: http.StatusNotFound}
	ErrGuestNotFound   = &AppError{Code: "GUEST_NOT_FOUND", Message: "Guest not found", StatusCode: http.StatusNotFound}
)

// Newsletter errors.
var (
	ErrSubscriberNotFound = &AppError{Code: "SUBSCRIBER_NOT_FOUND", Message: "Subscriber not found", StatusCode: http.StatusNotFound}
	ErrSubscribeFailed    = &AppError{Code: "SUBSCRIBE_FAILED", Message: "Subscription could not be completed", StatusCode: http.StatusBadGateway}
)

// Extraction errors.
var (
	ErrFetchFailed   = &AppError{Code: "FETCH_FAILED", Message: "Could not fetch the requested page", StatusCode: http.StatusBadGateway}
	ErrExtractFailed = &AppError{Code: "EXTRACT_FAILED", Message: "Could not extract data from the page", StatusCode: http.StatusUnprocessableEntity}
	ErrVectorizeFailed = &AppError{Code: "VECTORIZE_FAILED", Message: "Image vectorization failed", StatusCode: http.StatusBadGateway}
)
