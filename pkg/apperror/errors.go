package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}

	// Checkout error taxonomy. Stock and precondition failures are caught
	// before any backend call is made; none of them is fatal to the session.
	ErrStockExhausted       = &AppError{Code: http.StatusConflict, Message: "Stock exhausted"}
	ErrInsufficientStock    = &AppError{Code: http.StatusConflict, Message: "Insufficient stock"}
	ErrEmptyCart            = &AppError{Code: http.StatusBadRequest, Message: "Cart is empty"}
	ErrInsufficientPayment  = &AppError{Code: http.StatusBadRequest, Message: "Insufficient payment"}
	ErrSessionNotFound      = &AppError{Code: http.StatusNotFound, Message: "Checkout session not found or expired"}
	ErrSubmissionInFlight   = &AppError{Code: http.StatusConflict, Message: "Submission already in progress"}
	ErrCustomerNotFound     = &AppError{Code: http.StatusNotFound, Message: "Customer not found"}
	ErrProductNotInCatalog  = &AppError{Code: http.StatusNotFound, Message: "Product not found in catalog"}
	ErrInvoiceNotFound      = &AppError{Code: http.StatusNotFound, Message: "Invoice not found"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewSubmissionError wraps a backend rejection of a sale. The backend's
// message is surfaced verbatim so the cashier sees exactly what the
// backend said.
func NewSubmissionError(code int, message string) *AppError {
	if message == "" {
		message = "Sale submission failed"
	}
	if code < 400 {
		code = http.StatusBadGateway
	}
	return &AppError{Code: code, Message: message}
}

// NewFetchError wraps a failed catalog/roster/history load. These are
// non-blocking: the affected list degrades to empty on the caller's side.
func NewFetchError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: "Failed to fetch " + resource,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
