// Package errors provides custom error types for docserve.
// These errors enable programmatic error checking with errors.Is and
// errors.As across the serving root, the renderer and the CLI.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As re-export the standard library helpers so callers need a single
// errors import.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors.
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidPath indicates a request path that escapes the serving root
	ErrInvalidPath = errors.New("invalid path")

	// ErrNotRegular indicates a path that exists but is not a regular file
	ErrNotRegular = errors.New("not a regular file")

	// ErrInvalidEncoding indicates document content that is not valid UTF-8
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// PathError represents a request path rejected by the serving root.
type PathError struct {
	Path   string
	Reason string
}

// Error implements the error interface
func (e *PathError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid path %q: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("invalid path %q", e.Path)
}

// Is implements errors.Is support
func (e *PathError) Is(target error) bool {
	return target == ErrInvalidPath || target == ErrInvalidInput
}

// NewPathError creates a new PathError
func NewPathError(path, reason string) *PathError {
	return &PathError{Path: path, Reason: reason}
}

// Stage identifies the step of document rendering that failed.
type Stage string

// Rendering stages.
const (
	StageOpen    Stage = "open"
	StageRead    Stage = "read"
	StageDecode  Stage = "decode"
	StageConvert Stage = "convert"
	StageLayout  Stage = "layout"
)

// RenderError represents a failure while turning a document into a page.
type RenderError struct {
	Path  string
	Stage Stage
	Err   error
}

// Error implements the error interface
func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %s failed: %v", e.Path, e.Stage, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewRenderError creates a new RenderError
func NewRenderError(path string, stage Stage, err error) *RenderError {
	return &RenderError{Path: path, Stage: stage, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "open", "read", "walk", "listen"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidPath checks if an error is a rejected request path
func IsInvalidPath(err error) bool {
	return errors.Is(err, ErrInvalidPath)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapConfig wraps an error as a ConfigError
func WrapConfig(component string, err error) error {
	if err == nil {
		return nil
	}
	return NewConfigError(component, err.Error(), err)
}
