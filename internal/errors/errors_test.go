package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	err = Newf("formatted %s", "error")
	assert.NotNil(t, err)
	assert.Equal(t, "formatted error", err.Error())

	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, "formatted error", appErr.Error())
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.NotNil(t, wrappedErr)
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())

	unwrappedErr := Unwrap(wrappedErr)
	assert.Equal(t, origErr, unwrappedErr)

	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	// Wrapping nil returns nil
	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())
	assert.True(t, Is(wrappedErr, origErr))
	assert.True(t, Is(deepWrapped, origErr))
}

func TestFileError(t *testing.T) {
	fileErr := NewFileError("target already exists", "/photos/b.txt", TargetExists, nil)
	assert.Equal(t, "target already exists: /photos/b.txt", fileErr.Error())
	assert.Equal(t, "target already exists", fileErr.Message())
	assert.Equal(t, "/photos/b.txt", fileErr.Path())
	assert.Equal(t, TargetExists, fileErr.Kind())
	assert.True(t, IsTargetExists(fileErr))

	origErr := fmt.Errorf("permission denied")
	fsErr := NewFileError("rename failed", "/photos/a.txt", FilesystemError, origErr)
	assert.Equal(t, "rename failed: /photos/a.txt: permission denied", fsErr.Error())
	assert.Equal(t, origErr, Unwrap(fsErr))
	assert.False(t, IsTargetExists(fsErr))

	var fe *FileError
	assert.True(t, As(fsErr, &fe))
	assert.Equal(t, "/photos/a.txt", fe.Path())
}

func TestPatternError(t *testing.T) {
	cause := errors.New("missing closing )")
	err := NewPatternError("(", cause)

	assert.Equal(t, `invalid pattern "(": missing closing )`, err.Error())
	assert.Equal(t, "(", err.Pattern())
	assert.Equal(t, InvalidPattern, err.Kind())
	assert.True(t, IsInvalidPattern(err))
	assert.True(t, IsInvalidPattern(Wrap(err, "preview")))
	assert.False(t, IsInvalidPattern(cause))
	assert.Equal(t, cause, Unwrap(err))
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("invalid value", "history.backend", InvalidConfig, nil)
	assert.Equal(t, "invalid value: history.backend", configErr.Error())
	assert.Equal(t, "history.backend", configErr.Param())
	assert.Equal(t, InvalidConfig, configErr.Kind())

	origErr := fmt.Errorf("unknown backend bolt")
	configErr = NewConfigError("invalid value", "history.backend", InvalidConfig, origErr)
	assert.Equal(t, "invalid value: history.backend: unknown backend bolt", configErr.Error())
	assert.Equal(t, origErr, Unwrap(configErr))

	assert.Equal(t, "invalid configuration", ErrInvalidConfig.Error())
	assert.True(t, IsInvalidConfig(configErr))
	assert.False(t, IsInvalidConfig(New("some other error")))
}

func TestHistoryError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewHistoryError("save", cause)

	assert.Equal(t, "history unavailable: save: disk full", err.Error())
	assert.Equal(t, "save", err.Operation())
	assert.True(t, IsHistoryUnavailable(err))
	assert.True(t, Is(err, cause))
	assert.Equal(t, HistoryUnavailable, KindOf(err))
}

func TestSentinels(t *testing.T) {
	wrapped := fmt.Errorf("execute: %w", ErrNoPreview)
	assert.True(t, Is(wrapped, ErrNoPreview))
	assert.False(t, Is(wrapped, ErrNothingToDo))
	assert.Equal(t, NoPreview, KindOf(wrapped))

	assert.Equal(t, ExecuteInProgress, KindOf(ErrExecuteInProgress))
	assert.Equal(t, Superseded, KindOf(ErrSuperseded))
	assert.Equal(t, Unknown, KindOf(errors.New("plain")))
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{InvalidPattern, "invalid_pattern"},
		{TargetExists, "target_exists"},
		{FilesystemError, "filesystem_error"},
		{HistoryUnavailable, "history_unavailable"},
		{Unknown, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestErrorChains(t *testing.T) {
	baseErr := errors.New("base error")
	fileErr := NewFileError("rename failed", "/path/to/file", FilesystemError, baseErr)
	configErr := NewConfigError("config error", "history.path", InvalidConfig, fileErr)

	assert.Equal(t, "config error: history.path: rename failed: /path/to/file: base error", configErr.Error())
	assert.True(t, Is(configErr, baseErr))
	assert.True(t, Is(configErr, fileErr))

	var fe *FileError
	assert.True(t, As(configErr, &fe))
	assert.Equal(t, "/path/to/file", fe.Path())
	assert.True(t, IsInvalidConfig(configErr))
}

func TestDatabaseError(t *testing.T) {
	cause := errors.New("database is locked")
	err := NewDatabaseError("failed to save history", cause).
		WithOperation("insert").
		WithContext("pattern", "IMG_")

	assert.Equal(t, "failed to save history: operation=insert: database is locked", err.Error())
	assert.Equal(t, "insert", err.Operation())
	assert.Equal(t, "IMG_", err.Context()["pattern"])
	var dbErr *DatabaseError
	assert.True(t, As(Wrap(err, "history"), &dbErr))
	assert.Equal(t, DatabaseOperationFailed, KindOf(err))
}
