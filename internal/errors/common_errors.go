package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeLoad        ErrorType = "LOAD"
	ErrTypeOutputWrite ErrorType = "OUTPUT_WRITE"
	ErrTypeConfig      ErrorType = "CONFIG"
	ErrTypeChart       ErrorType = "CHART"
	ErrTypeValidation  ErrorType = "VALIDATION"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewLoadError reports an input file that could not be read, parsed or
// recognized. The pipeline records it against the file and moves on.
func NewLoadError(path, message string, cause error) *AppError {
	return NewAppError(ErrTypeLoad, message, cause).WithContext("path", path)
}

// NewOutputWriteError reports that the output directory or report file could
// not be created. It ends the run.
func NewOutputWriteError(message string, cause error) *AppError {
	return NewAppError(ErrTypeOutputWrite, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewChartError reports a chart image that could not be rendered or saved.
func NewChartError(path string, cause error) *AppError {
	return NewAppError(ErrTypeChart, "failed to render chart", cause).WithContext("path", path)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or "".
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsLoadError reports whether err is a per-file load failure.
func IsLoadError(err error) bool {
	return TypeOf(err) == ErrTypeLoad
}

// IsFatal reports whether err must abort the whole run.
func IsFatal(err error) bool {
	switch TypeOf(err) {
	case ErrTypeOutputWrite, ErrTypeConfig:
		return true
	}
	return false
}

// Describe returns the user-facing part of an error: the message and cause of
// an AppError without its type tag, or err.Error() otherwise.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		if appErr.Cause != nil {
			return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
		}
		return appErr.Message
	}
	return err.Error()
}
