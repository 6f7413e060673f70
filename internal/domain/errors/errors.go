package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("Ownable: caller is not the owner")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInvalidSignature = errors.New("KYCPlatform: Invalid Signature")
	ErrVersionMismatch  = errors.New("KYCPlatform: KYC version mismatch")
	ErrExpired          = errors.New("KYCPlatform: expired")
	ErrInsufficientFee  = errors.New("KYCPlatform: insufficient service fee")
	ErrTokenExpired     = errors.New("token expired")
)

// Error codes returned in API responses
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "ALREADY_EXISTS"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "UNAUTHORIZED"
	CodeInvalidSignature   = "INVALID_SIGNATURE"
	CodeKycVersionMismatch = "KYC_VERSION_MISMATCH"
	CodeExpired            = "EXPIRED"
	CodeInsufficientFee    = "INSUFFICIENT_FEE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthenticated, message, ErrUnauthenticated)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrUnauthorized)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// FromDomain maps a domain sentinel (possibly wrapped) to its HTTP representation.
// Errors that already are an *AppError are returned unchanged.
func FromDomain(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, CodeNotFound, err.Error(), err)
	case errors.Is(err, ErrAlreadyExists):
		return NewAppError(http.StatusConflict, CodeConflict, err.Error(), err)
	case errors.Is(err, ErrUnauthorized):
		return NewAppError(http.StatusForbidden, CodeForbidden, err.Error(), err)
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrTokenExpired):
		return NewAppError(http.StatusUnauthorized, CodeUnauthenticated, err.Error(), err)
	case errors.Is(err, ErrInvalidSignature):
		return NewAppError(http.StatusUnauthorized, CodeInvalidSignature, err.Error(), err)
	case errors.Is(err, ErrVersionMismatch):
		return NewAppError(http.StatusGone, CodeKycVersionMismatch, err.Error(), err)
	case errors.Is(err, ErrExpired):
		return NewAppError(http.StatusGone, CodeExpired, err.Error(), err)
	case errors.Is(err, ErrInsufficientFee):
		return NewAppError(http.StatusPaymentRequired, CodeInsufficientFee, err.Error(), err)
	case errors.Is(err, ErrInvalidInput):
		return NewAppError(http.StatusBadRequest, CodeBadRequest, err.Error(), err)
	default:
		return InternalError(err)
	}
}

// Reason returns a short label for metrics
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrVersionMismatch):
		return "version_mismatch"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrInsufficientFee):
		return "insufficient_fee"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}
