// Package errors defines the application error model.
//
// Errors are categorized so the CLI can map them onto the process exit-code
// contract: 0 clean run, 1 completed with recoverable parse errors, 2 usage
// or missing-file error, 3 unexpected fatal error. Row-level parse problems
// are not errors in this sense; they are accumulated as plain strings by the
// parser and only surface here as the exit-1 sentinel once the run finished.
package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCategory groups errors by how the process should react to them.
type ErrorCategory string

const (
	CategoryUsage    ErrorCategory = "usage"
	CategoryFile     ErrorCategory = "file"
	CategoryParse    ErrorCategory = "parse"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorCode identifies the specific failure within a category.
type ErrorCode string

const (
	CodeMissingArgument ErrorCode = "missing_argument"
	CodeInvalidArgument ErrorCode = "invalid_argument"

	CodeFileNotFound   ErrorCode = "file_not_found"
	CodeFileUnreadable ErrorCode = "file_unreadable"
	CodeOutputError    ErrorCode = "output_error"

	CodeRowErrors ErrorCode = "row_errors"

	CodeUnexpectedError ErrorCode = "unexpected_error"
)

// Context carries additional key-value information about an error.
type Context map[string]interface{}

// ReconcilerError is the error type used across the application.
type ReconcilerError struct {
	Category   ErrorCategory
	Code       ErrorCode
	Message    string
	Suggestion string
	Context    Context
	Cause      error
	StackTrace errors.StackTrace
}

// Error implements the error interface.
func (e *ReconcilerError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (suggestion: %s)", e.Message, e.Suggestion)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *ReconcilerError) Unwrap() error {
	return e.Cause
}

// GetExitCode maps the error category onto the process exit-code contract.
func (e *ReconcilerError) GetExitCode() int {
	switch e.Category {
	case CategoryParse:
		return 1
	case CategoryUsage, CategoryFile:
		return 2
	case CategoryInternal:
		return 3
	default:
		return 3
	}
}

// WithContext attaches a key-value pair to the error.
func (e *ReconcilerError) WithContext(key string, value interface{}) *ReconcilerError {
	if e.Context == nil {
		e.Context = make(Context)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion attaches a hint for fixing the error.
func (e *ReconcilerError) WithSuggestion(suggestion string) *ReconcilerError {
	e.Suggestion = suggestion
	return e
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// New creates a new ReconcilerError.
func New(category ErrorCategory, code ErrorCode, message string) *ReconcilerError {
	return &ReconcilerError{
		Category:   category,
		Code:       code,
		Message:    message,
		StackTrace: errors.New("").(stackTracer).StackTrace(),
	}
}

// Wrap wraps an existing error with category and code.
func Wrap(err error, category ErrorCategory, code ErrorCode, message string) *ReconcilerError {
	if err == nil {
		return nil
	}
	return &ReconcilerError{
		Category:   category,
		Code:       code,
		Message:    message,
		Cause:      err,
		StackTrace: errors.WithStack(err).(stackTracer).StackTrace(),
	}
}

// UsageError creates an error for invalid or missing CLI arguments.
func UsageError(message string) *ReconcilerError {
	return New(CategoryUsage, CodeInvalidArgument, message)
}

// FileError creates a file-related error.
func FileError(code ErrorCode, path string, err error) *ReconcilerError {
	var message, suggestion string

	switch code {
	case CodeFileNotFound:
		message = fmt.Sprintf("file not found: %s", path)
		suggestion = "check that the path is correct and the file exists"
	case CodeFileUnreadable:
		message = fmt.Sprintf("cannot read file: %s", path)
		suggestion = "check file permissions"
	case CodeOutputError:
		message = fmt.Sprintf("cannot write output: %s", path)
		suggestion = "check that the output directory exists and is writable"
	default:
		message = fmt.Sprintf("file error: %s", path)
		suggestion = "check the file and try again"
	}

	var result *ReconcilerError
	if err != nil {
		result = Wrap(err, CategoryFile, code, message)
	} else {
		result = New(CategoryFile, code, message)
	}
	return result.WithSuggestion(suggestion).WithContext("path", path)
}

// ParseCompleted creates the exit-1 sentinel for a run that finished but
// skipped rows. The run's outputs are still written.
func ParseCompleted(errorCount int) *ReconcilerError {
	return New(CategoryParse, CodeRowErrors,
		fmt.Sprintf("completed with %d recoverable parse error(s)", errorCount)).
		WithContext("error_count", errorCount)
}

// InternalError creates an unexpected-failure error.
func InternalError(operation string, err error) *ReconcilerError {
	message := fmt.Sprintf("unexpected error during %s", operation)
	var result *ReconcilerError
	if err != nil {
		result = Wrap(err, CategoryInternal, CodeUnexpectedError, message)
	} else {
		result = New(CategoryInternal, CodeUnexpectedError, message)
	}
	return result.WithContext("operation", operation)
}

// IsReconcilerError checks whether err is a ReconcilerError.
func IsReconcilerError(err error) bool {
	_, ok := AsReconcilerError(err)
	return ok
}

// AsReconcilerError extracts a ReconcilerError from an error chain.
func AsReconcilerError(err error) (*ReconcilerError, bool) {
	var reconcilerErr *ReconcilerError
	if errors.As(err, &reconcilerErr) {
		return reconcilerErr, true
	}
	return nil, false
}
