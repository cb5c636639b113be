package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorFormat(t *testing.T) {
	err := NewValidationError("bad input")
	assert.Equal(t, "VALIDATION: bad input", err.Error())

	cause := errors.New("parse failed")
	wrapped := NewValidationError("bad input").WithCause(cause)
	assert.Equal(t, "VALIDATION: bad input (caused by: parse failed)", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestNewNotFoundError_FormatsResource(t *testing.T) {
	err := NewNotFoundError("user with ID ABC")
	assert.Equal(t, KindNotFound, err.Kind)
	assert.Equal(t, "user with ID ABC not found", err.Message)
}

func TestConstructorsCaptureStack(t *testing.T) {
	err := NewInternalError("oops")
	assert.NotEmpty(t, err.StackTrace)
	assert.Contains(t, err.StackTrace, "errors_test.go")
}

func TestGetAppError(t *testing.T) {
	app := NewBusinessError("rule broken")

	assert.Equal(t, app, GetAppError(app))
	assert.Equal(t, app, GetAppError(fmt.Errorf("outer: %w", app)))
	assert.Nil(t, GetAppError(errors.New("plain")))
	assert.Nil(t, GetAppError(nil))
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("x")))
	assert.True(t, IsNotFound(NewNotFoundError("x")))
	assert.True(t, IsUnauthorized(NewUnauthorizedError("x")))
	assert.True(t, IsKind(NewForbiddenError("x"), KindForbidden))
	assert.False(t, IsValidation(errors.New("plain")))
}

func TestWrapPreservesKind(t *testing.T) {
	inner := NewNotFoundError("user")
	wrapped := Wrap(inner, "loading user")

	require.NotNil(t, wrapped)
	assert.True(t, IsNotFound(wrapped))

	plain := Wrap(errors.New("io failure"), "reading file")
	app := GetAppError(plain)
	require.NotNil(t, app)
	assert.Equal(t, KindInternal, app.Kind)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
}
