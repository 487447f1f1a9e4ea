package operations

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of operation error
type ErrorType string

const (
	ErrorTypeExecution    ErrorType = "execution"
	ErrorTypePanic        ErrorType = "panic"
	ErrorTypeCancellation ErrorType = "cancellation"
)

// OperationError is a failure of one step for one file.
type OperationError struct {
	Type    ErrorType `json:"type"`
	Step    string    `json:"step,omitempty"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *OperationError) Error() string {
	if e == nil {
		return "unknown operation error"
	}
	msg := e.Message
	if e.Step != "" {
		msg = e.Step + " step: " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewExecutionError wraps the error a step returned.
func NewExecutionError(step string, cause error) *OperationError {
	return &OperationError{Type: ErrorTypeExecution, Step: step, Message: "failed", Cause: cause}
}

// NewPanicError converts a recovered panic into an error.
func NewPanicError(step string, recovered any) *OperationError {
	return &OperationError{
		Type:    ErrorTypePanic,
		Step:    step,
		Message: fmt.Sprintf("unexpected failure (%v)", recovered),
	}
}

// NewCancellationError reports a file skipped because the run was cancelled.
func NewCancellationError(step string, cause error) *OperationError {
	return &OperationError{Type: ErrorTypeCancellation, Step: step, Message: "cancelled", Cause: cause}
}

// GetErrorType returns the type of an OperationError in err's chain, or "".
func GetErrorType(err error) ErrorType {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Type
	}
	return ""
}
