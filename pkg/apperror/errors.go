package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUnauthorized      = errors.New("no autenticado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInvalidInput      = errors.New("datos inválidos")
	ErrDuplicate         = errors.New("el registro ya existe")
	ErrPolicy            = errors.New("operación no permitida")
	ErrInternal          = errors.New("error interno")
	ErrRateLimitExceeded = errors.New("demasiadas peticiones")
)

// AppError is a custom error type that can hold an HTTP status code
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap attaches a user-facing message to one of the sentinel errors.
func Wrap(sentinel error, message string) *AppError {
	return &AppError{
		Code:    mapSentinel(sentinel),
		Message: message,
		Err:     sentinel,
	}
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return mapSentinel(err)
}

func mapSentinel(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrPolicy) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrRateLimitExceeded) {
		return http.StatusTooManyRequests
	}
	// Default to internal server error
	return http.StatusInternalServerError
}
