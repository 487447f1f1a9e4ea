package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "load error type", errType: ErrTypeLoad, expected: "LOAD"},
		{name: "output write error type", errType: ErrTypeOutputWrite, expected: "OUTPUT_WRITE"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
		{name: "chart error type", errType: ErrTypeChart, expected: "CHART"},
		{name: "validation error type", errType: ErrTypeValidation, expected: "VALIDATION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name:        "error without cause",
			appError:    &AppError{Type: ErrTypeValidation, Message: "invalid log level"},
			wantMessage: "[VALIDATION] invalid log level",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeLoad,
				Message: "failed to open workbook",
				Cause:   fmt.Errorf("zip: not a valid zip file"),
			},
			wantMessage: "[LOAD] failed to open workbook: zip: not a valid zip file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewOutputWriteError("failed to create report file", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))

	wrapped := fmt.Errorf("run: %w", err)
	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ErrTypeOutputWrite, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeChart, Message: "render"}
	err.WithContext("path", "output/benford_a.png").WithContext("digits", 9)

	require.NotNil(t, err.Context)
	assert.Equal(t, "output/benford_a.png", err.Context["path"])
	assert.Equal(t, 9, err.Context["digits"])
}

func TestNewLoadError(t *testing.T) {
	err := NewLoadError("data/bad.xlsx", "unsupported file extension", nil)

	assert.Equal(t, ErrTypeLoad, err.Type)
	assert.Equal(t, "data/bad.xlsx", err.Context["path"])
	assert.True(t, IsLoadError(err))
	assert.False(t, IsFatal(err))
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "load error", err: NewLoadError("a.xlsx", "corrupt", nil), want: false},
		{name: "chart error", err: NewChartError("a.png", errors.New("disk full")), want: false},
		{name: "output write error", err: NewOutputWriteError("mkdir", nil), want: true},
		{name: "wrapped config error", err: fmt.Errorf("load: %w", NewConfigError("bad yaml", nil)), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFatal(tt.err))
		})
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "", Describe(nil))
	assert.Equal(t, "boom", Describe(errors.New("boom")))
	assert.Equal(t, "corrupt workbook: zip: not a valid zip file",
		Describe(NewLoadError("a.xlsx", "corrupt workbook", errors.New("zip: not a valid zip file"))))
	assert.Equal(t, "unsupported file extension \".txt\"",
		Describe(NewLoadError("a.txt", "unsupported file extension \".txt\"", nil)))
}
