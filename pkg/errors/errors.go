package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode represents a unique error code for categorizing errors
type ErrorCode string

const (
	// Connection errors (1xxx)
	ErrCodeConnectionFailed     ErrorCode = "CSW1001"
	ErrCodeConnectionTimeout    ErrorCode = "CSW1002"
	ErrCodeAuthenticationFailed ErrorCode = "CSW1003"

	// Configuration errors (2xxx)
	ErrCodeConfigNotFound ErrorCode = "CSW2001"
	ErrCodeConfigInvalid  ErrorCode = "CSW2002"
	ErrCodeConfigMissing  ErrorCode = "CSW2003"

	// Query errors (3xxx)
	ErrCodeInvalidFilterOperator ErrorCode = "CSW3001"
	ErrCodeQueryFailed           ErrorCode = "CSW3002"
	ErrCodeEmptyResult           ErrorCode = "CSW3003"

	// Analysis errors (4xxx)
	ErrCodeEmptyInput   ErrorCode = "CSW4001"
	ErrCodeInvalidInput ErrorCode = "CSW4002"

	// File system errors (5xxx)
	ErrCodeFileOperation ErrorCode = "CSW5001"

	// Validation errors (6xxx)
	ErrCodeValidationFailed ErrorCode = "CSW6001"

	// System errors (9xxx)
	ErrCodeInternal           ErrorCode = "CSW9001"
	ErrCodeMaxRetriesExceeded ErrorCode = "CSW9002"
	ErrCodeUnsupportedDriver  ErrorCode = "CSW9003"
	ErrCodeUnsupportedFormat  ErrorCode = "CSW9004"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityCritical ErrorSeverity = "CRITICAL" // System failure, requires immediate attention
	SeverityError    ErrorSeverity = "ERROR"    // Operation failed, but system continues
	SeverityWarning  ErrorSeverity = "WARNING"  // Operation succeeded with issues
	SeverityInfo     ErrorSeverity = "INFO"     // Informational, not an error
)

// AppError represents a structured application error with context
type AppError struct {
	Code        ErrorCode
	Message     string
	Severity    ErrorSeverity
	Context     map[string]interface{}
	Cause       error
	Stack       string
	Timestamp   time.Time
	Recoverable bool
	Suggestions []string
}

// Error implements the error interface
func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s: %s", e.Code, e.Severity, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\nCaused by: %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return b.String()
}

// Unwrap returns the cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:        code,
		Message:     message,
		Severity:    SeverityError,
		Context:     make(map[string]interface{}),
		Stack:       captureStack(),
		Timestamp:   time.Now(),
		Recoverable: false,
	}
}

// Wrap wraps an existing error with AppError
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}

	appErr := New(code, message)
	appErr.Cause = err

	// If wrapping another AppError, inherit some properties
	if ae, ok := err.(*AppError); ok {
		for k, v := range ae.Context {
			appErr.Context[k] = v
		}
	}

	return appErr
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSeverity sets the error severity
func (e *AppError) WithSeverity(severity ErrorSeverity) *AppError {
	e.Severity = severity
	return e
}

// WithSuggestions adds recovery suggestions
func (e *AppError) WithSuggestions(suggestions ...string) *AppError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// AsRecoverable marks the error as recoverable
func (e *AppError) AsRecoverable() *AppError {
	e.Recoverable = true
	return e
}

// captureStack captures the current stack trace
func captureStack() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			b.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return b.String()
}

// Common error constructors

// ConnectionError creates a connection-related error
func ConnectionError(message string, cause error) *AppError {
	return Wrap(cause, ErrCodeConnectionFailed, message).
		WithSeverity(SeverityError).
		WithSuggestions(
			"Check your network connection",
			"Verify the database host and port are reachable",
			"Check firewall settings",
		)
}

// QueryError creates a query execution error
func QueryError(message string, query string, cause error) *AppError {
	return Wrap(cause, ErrCodeQueryFailed, message).
		WithContext("query", truncateString(query, 200))
}

// EmptyInputError signals a table with nothing to analyze
func EmptyInputError(message string) *AppError {
	return New(ErrCodeEmptyInput, message).
		WithSuggestions(
			"Verify the table exists and is not empty",
			"Check that applied filters are not excluding every row",
		)
}

// InvalidInputError signals malformed column input to the profiler
func InvalidInputError(column string, reason string) *AppError {
	return New(ErrCodeInvalidInput, fmt.Sprintf("invalid input for column %s: %s", column, reason)).
		WithContext("column", column)
}

// FilterOperatorError rejects an operator outside the safe allow-list
func FilterOperatorError(operator string) *AppError {
	return New(ErrCodeInvalidFilterOperator, fmt.Sprintf("operator not allowed: %s", operator)).
		WithContext("operator", operator).
		WithSuggestions("Use one of: =, !=, >, >=, <, <=, LIKE, IN, NOT IN")
}

// ConfigError creates a configuration-related error
func ConfigError(message string, field string) *AppError {
	return New(ErrCodeConfigInvalid, message).
		WithContext("field", field).
		WithSuggestions(
			fmt.Sprintf("Check the '%s' configuration value", field),
			"Run 'colsweep setup' to reconfigure",
		)
}

// IsRecoverable checks if an error is recoverable
func IsRecoverable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Recoverable
	}
	return false
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// truncateString truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
