/*
Package shared - values and errors shared by the order subdomains

Domain errors:
 1. Sentinel errors support errors.Is() classification
 2. DomainError captures the call stack on creation and formats it lazily
 3. No transport concepts (HTTP status, user message codes) live here
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrNotFound resource not found
	ErrNotFound = errors.New("not found")

	// ErrConflict resource conflict
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput input failed validation
	ErrInvalidInput = errors.New("invalid input")
)

// DomainError a structured error carrying business context and the stack
// of the place it was created.
type DomainError struct {
	// Err underlying sentinel, used by errors.Is()
	Err error

	// Entity the entity involved ("order", "product")
	Entity string

	// Message human readable description
	Message string

	// Field optional, the field that failed validation
	Field string

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured stack on demand
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack captures the current call stack.
// skip is usually 3: Callers, CaptureStack, NewXxxError
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders stack frames, skipping runtime frames, at most 10.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) >= 10 {
			break
		}
	}
	return result
}

// NewNotFoundError creates a "not found" domain error
func NewNotFoundError(entity, message string) error {
	if message == "" {
		message = entity + " not found"
	}
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a "conflict" domain error
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a validation domain error
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// Stacker an error that can report its stack
type Stacker interface {
	Stack() []string
}
