package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrUnauthorized            = errors.New("unauthorized access")
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserInactive      = errors.New("user account is inactive")

	ErrInvalidInput = errors.New("invalid input data")
	ErrInvalidOTP   = errors.New("invalid OTP")
	ErrWeakPassword = errors.New("password does not meet requirements")
)

// Error codes used by services and mapped to HTTP statuses at the handler layer.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeInvalidInput = "INVALID_INPUT"
	CodeInvalidState = "INVALID_STATUS"
	CodeInvalidOTP   = "INVALID_OTP"
	CodeNotQualified = "NOT_QUALIFIED"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeValidation   = "VALIDATION_ERROR"
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotQualifiedError carries the qualifying count against the certificate
// threshold so callers can render a progress message.
type NotQualifiedError struct {
	Qualified int64
	Required  int64
}

func (e *NotQualifiedError) Error() string {
	return fmt.Sprintf("you do not qualify for a certificate yet: %d of %d completed/collected submissions",
		e.Qualified, e.Required)
}

// CodeOf extracts the application error code from err, or empty when err is not
// an AppError.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
