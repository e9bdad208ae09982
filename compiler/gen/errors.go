package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidColumn indicates a column configuration error.
	ErrInvalidColumn = errors.New("colflow: invalid column")
	// ErrConverterMismatch indicates a custom converter that does not fit its column.
	ErrConverterMismatch = errors.New("colflow: converter mismatch")
	// ErrUnresolvedAccessor indicates that no container accessor exists for a type.
	ErrUnresolvedAccessor = errors.New("colflow: unresolved container accessor")
	// ErrInternal indicates an internal consistency failure.
	ErrInternal = errors.New("colflow: internal error")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("colflow: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("colflow: code generation failed")
	// ErrNoAccess is returned by emitters for columns without an access
	// strategy (generic-shaped fields).
	ErrNoAccess = errors.New("colflow: column has no access strategy")
)

// ColumnError represents a column configuration error.
type ColumnError struct {
	Table   string // Table name (if known)
	Field   string // Go field name
	Type    string // Declared type
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ColumnError) Error() string {
	var b strings.Builder
	b.WriteString("colflow: column error")
	if e.Table != "" {
		b.WriteString(" on table ")
		b.WriteString(e.Table)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Type != "" {
		b.WriteString(" (")
		b.WriteString(e.Type)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ColumnError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ColumnError.
func (e *ColumnError) Is(target error) bool {
	return target == ErrInvalidColumn
}

// NewColumnError creates a new ColumnError.
func NewColumnError(fieldName, typ, message string, cause error) *ColumnError {
	return &ColumnError{
		Field:   fieldName,
		Type:    typ,
		Message: message,
		Cause:   cause,
	}
}

// ConverterError is returned when a custom converter cannot serve its column.
type ConverterError struct {
	Field     string
	Converter string
	Declared  string // declared type of the field
	Expected  string // model type of the converter
	Message   string
}

// Error implements the error interface.
func (e *ConverterError) Error() string {
	var b strings.Builder
	b.WriteString("colflow: converter error")
	if e.Field != "" {
		b.WriteString(" on field ")
		b.WriteString(e.Field)
	}
	if e.Converter != "" {
		b.WriteString(" converter ")
		b.WriteString(e.Converter)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Declared != "" || e.Expected != "" {
		fmt.Fprintf(&b, " (declared %s, expected %s)", e.Declared, e.Expected)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel errors for ConverterError.
// A converter error is also a column error.
func (e *ConverterError) Is(target error) bool {
	return target == ErrConverterMismatch || target == ErrInvalidColumn
}

// NewConverterError creates a new ConverterError.
func NewConverterError(fieldName, converter, declared, expected, message string) *ConverterError {
	return &ConverterError{
		Field:     fieldName,
		Converter: converter,
		Declared:  declared,
		Expected:  expected,
		Message:   message,
	}
}

// AccessorError is returned when no typed container accessor can read a column.
type AccessorError struct {
	Field string
	Type  string
}

// Error implements the error interface.
func (e *AccessorError) Error() string {
	return fmt.Sprintf("colflow: no container accessor for field %s of type %s", e.Field, e.Type)
}

// Is reports whether the target matches the sentinel errors for AccessorError.
func (e *AccessorError) Is(target error) bool {
	return target == ErrUnresolvedAccessor || target == ErrInvalidColumn
}

// NewAccessorError creates a new AccessorError.
func NewAccessorError(fieldName, typ string) *AccessorError {
	return &AccessorError{Field: fieldName, Type: typ}
}

// InternalError reports a broken invariant of the compiler itself.
type InternalError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("colflow: internal error on field %s: %s", e.Field, e.Message)
	}
	return "colflow: internal error: " + e.Message
}

// Is reports whether the target matches the sentinel error for InternalError.
func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

// NewInternalError creates a new InternalError.
func NewInternalError(fieldName, message string) *InternalError {
	return &InternalError{Field: fieldName, Message: message}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("colflow: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("colflow: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Table   string
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("colflow: generation error")
	if e.Table != "" {
		b.WriteString(" for table ")
		b.WriteString(e.Table)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(table, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Table:   table,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsColumnError reports whether the error is a ColumnError.
func IsColumnError(err error) bool {
	var colErr *ColumnError
	return errors.As(err, &colErr)
}

// IsConverterError reports whether the error is a ConverterError.
func IsConverterError(err error) bool {
	var convErr *ConverterError
	return errors.As(err, &convErr)
}

// IsAccessorError reports whether the error is an AccessorError.
func IsAccessorError(err error) bool {
	var accErr *AccessorError
	return errors.As(err, &accErr)
}

// IsInternalError reports whether the error is an InternalError.
func IsInternalError(err error) bool {
	var intErr *InternalError
	return errors.As(err, &intErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
