// Package errors provides standardized error handling for renamer.
// It defines the error kinds the rename engine reports, typed errors carrying
// the file, pattern or setting involved, and helpers for creating, wrapping
// and classifying them.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
	// Join returns an error wrapping the non-nil errors
	Join = errors.Join
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Pattern error kinds
	InvalidPattern
	// Rename error kinds
	TargetExists
	FilesystemError
	InvalidTargetName
	// Engine error kinds
	NoPreview
	NothingToDo
	ExecuteInProgress
	Superseded
	// History error kinds
	HistoryUnavailable
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Database error kinds
	DatabaseOperationFailed
)

// String returns a short name for the kind
func (k ErrorKind) String() string {
	switch k {
	case InvalidPattern:
		return "invalid_pattern"
	case TargetExists:
		return "target_exists"
	case FilesystemError:
		return "filesystem_error"
	case InvalidTargetName:
		return "invalid_target_name"
	case NoPreview:
		return "no_preview"
	case NothingToDo:
		return "nothing_to_do"
	case ExecuteInProgress:
		return "execute_in_progress"
	case Superseded:
		return "superseded"
	case HistoryUnavailable:
		return "history_unavailable"
	case InvalidConfig:
		return "invalid_config"
	case ConfigNotFound:
		return "config_not_found"
	case DatabaseOperationFailed:
		return "database_operation_failed"
	default:
		return "unknown"
	}
}

// Engine sentinels. Compare with Is.
var (
	ErrNoPreview         = newKinded("no preview computed", NoPreview)
	ErrNothingToDo       = newKinded("nothing to do", NothingToDo)
	ErrExecuteInProgress = newKinded("rename already in progress", ExecuteInProgress)
	ErrSuperseded        = newKinded("preview superseded by a newer request", Superseded)
	ErrInvalidConfig     = NewConfigError("invalid configuration", "", InvalidConfig, nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

func newKinded(msg string, kind ErrorKind) *ApplicationError {
	return &ApplicationError{msg: msg, kind: kind}
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// Message returns the error's own message without the path or cause
func (e *ApplicationError) Message() string {
	return e.msg
}

// FileError represents errors related to a single file in a rename batch
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// PatternError is returned when a transform pattern cannot be compiled
type PatternError struct {
	ApplicationError
	pattern string
}

// NewPatternError creates a new pattern error of kind InvalidPattern
func NewPatternError(pattern string, err error) *PatternError {
	return &PatternError{
		ApplicationError: ApplicationError{
			msg:  "invalid pattern",
			err:  err,
			kind: InvalidPattern,
		},
		pattern: pattern,
	}
}

// Error returns the pattern error message
func (e *PatternError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s %q: %v", e.msg, e.pattern, e.err)
	}
	return fmt.Sprintf("%s %q", e.msg, e.pattern)
}

// Pattern returns the pattern that failed to compile
func (e *PatternError) Pattern() string {
	return e.pattern
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// HistoryError reports a failure of the history storage backend
type HistoryError struct {
	ApplicationError
	operation string
}

// NewHistoryError creates a new history error of kind HistoryUnavailable
func NewHistoryError(operation string, err error) *HistoryError {
	return &HistoryError{
		ApplicationError: ApplicationError{
			msg:  "history unavailable",
			err:  err,
			kind: HistoryUnavailable,
		},
		operation: operation,
	}
}

// Error returns the history error message
func (e *HistoryError) Error() string {
	if e.operation != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.operation, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.operation)
	}
	return e.ApplicationError.Error()
}

// Operation returns the storage operation that failed (load, save, clear)
func (e *HistoryError) Operation() string {
	return e.operation
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the first kinded error in err's chain
func KindOf(err error) ErrorKind {
	var k interface{ Kind() ErrorKind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return Unknown
}

// IsInvalidPattern checks if the error is a pattern compilation error
func IsInvalidPattern(err error) bool {
	var patternErr *PatternError
	return errors.As(err, &patternErr)
}

// IsTargetExists checks if the error reports a rename destination collision
func IsTargetExists(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == TargetExists
	}
	return false
}

// IsHistoryUnavailable checks if the error comes from the history backend
func IsHistoryUnavailable(err error) bool {
	var histErr *HistoryError
	return errors.As(err, &histErr)
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// DatabaseError represents errors related to database operations
type DatabaseError struct {
	ApplicationError
	operation string
	context   map[string]interface{}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(msg string, err error) *DatabaseError {
	return &DatabaseError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: DatabaseOperationFailed,
		},
		context: make(map[string]interface{}),
	}
}

// WithOperation adds operation information to the database error
func (e *DatabaseError) WithOperation(operation string) *DatabaseError {
	e.operation = operation
	return e
}

// WithContext adds context information to the database error
func (e *DatabaseError) WithContext(key string, value interface{}) *DatabaseError {
	e.context[key] = value
	return e
}

// Error returns the database error message
func (e *DatabaseError) Error() string {
	if e.operation != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: operation=%s: %v", e.msg, e.operation, e.err)
		}
		return fmt.Sprintf("%s: operation=%s", e.msg, e.operation)
	}
	return e.ApplicationError.Error()
}

// Operation returns the database operation associated with the error
func (e *DatabaseError) Operation() string {
	return e.operation
}

// Context returns the context information associated with the error
func (e *DatabaseError) Context() map[string]interface{} {
	return e.context
}
