package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	// Verify all expected error codes exist
	codes := []string{
		ErrConfig,
		ErrState,
		ErrRender,
	}

	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
	}

	// Verify codes are unique
	seen := make(map[string]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in .loadstate.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "state error",
			code:       ErrState,
			message:    "Coordinator already closed",
			suggestion: "Create a new coordinator for a new consumer",
		},
		{
			name:       "render error",
			code:       ErrRender,
			message:    "Unknown skeleton renderer 'hero'",
			suggestion: "Register the renderer before looking it up",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)
			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	err := New(ErrConfig, "Something failed", "Try this fix")
	out := err.Error()

	assert.True(t, strings.HasPrefix(out, "✗ Something failed"))
	assert.Contains(t, out, "Try this fix")
}

func TestErrorFormattingWithCause(t *testing.T) {
	cause := errors.New("underlying problem")
	err := WrapWithCode(cause, ErrState, "Commit failed", "Report this")
	out := err.Error()

	assert.Contains(t, out, "✗ Commit failed")
	assert.Contains(t, out, "underlying problem")
	assert.Contains(t, out, "Report this")
}

func TestWrapDefaultsToStateCode(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, "wrapped")

	assert.Equal(t, ErrState, err.Code)
	assert.Equal(t, cause, err.Cause)
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(cause, "wrapped")

	assert.True(t, errors.Is(err, cause))
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "bad config", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrState))
	assert.False(t, IsCode(nil, ErrConfig))
	assert.False(t, IsCode(errors.New("plain"), ErrConfig))
}

func TestIsCodeWrapped(t *testing.T) {
	inner := New(ErrRender, "render failed", "")
	outer := Wrap(inner, "outer")

	// errors.As finds the outermost *Error first
	assert.True(t, IsCode(outer, ErrState))
}
