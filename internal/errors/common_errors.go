package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeNotFound          ErrorType = "NOT_FOUND"
	ErrTypeUnsupportedFormat ErrorType = "UNSUPPORTED_FORMAT"
	ErrTypeParsing           ErrorType = "PARSING"
	ErrTypeConfig            ErrorType = "CONFIG"
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

// Detail returns the message and cause without the type tag, suitable for
// printing to an end user.
func (e *AppError) Detail() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
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

// NewNotFoundError creates an error for an input path that does not exist
func NewNotFoundError(path string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("File '%s' not found!", path), nil).
		WithContext("path", path)
}

// NewUnsupportedFormatError creates an error for an extension outside the
// csv/xlsx/xls whitelist
func NewUnsupportedFormatError(path, ext string) *AppError {
	return NewAppError(ErrTypeUnsupportedFormat, "Unsupported file format. Use CSV or Excel files.", nil).
		WithContext("path", path).
		WithContext("extension", ext)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewRowParsingError creates a parsing error tied to a single line of input
func NewRowParsingError(line int, message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, fmt.Sprintf("line %d: %s", line, message), cause).
		WithContext("line", line)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or ""
// when there is none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsNotFound reports whether err is a NOT_FOUND AppError
func IsNotFound(err error) bool {
	return TypeOf(err) == ErrTypeNotFound
}

// IsUnsupportedFormat reports whether err is an UNSUPPORTED_FORMAT AppError
func IsUnsupportedFormat(err error) bool {
	return TypeOf(err) == ErrTypeUnsupportedFormat
}

// IsParseFailure reports whether err is a PARSING AppError
func IsParseFailure(err error) bool {
	return TypeOf(err) == ErrTypeParsing
}

// Line returns the input line recorded on a row-level parse error.
func Line(err error) (int, bool) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return 0, false
	}
	line, ok := appErr.Context["line"].(int)
	return line, ok
}

// Detail returns the user-facing text for err.
func Detail(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Detail()
	}
	return err.Error()
}
