package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error taxonomy. Config errors are fatal and abort the run before any job
// starts; everything else is local to one image and surfaces as a
// placeholder record in the result set.
var (
	ErrConfig          = errors.New("invalid configuration")
	ErrUnreadable      = errors.New("image unreadable")
	ErrInferenceFailed = errors.New("inference call failed")
	ErrCropFailed      = errors.New("face crop failed")
)

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
