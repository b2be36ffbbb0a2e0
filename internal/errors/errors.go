// Package errors carries the picker's typed errors. Each one records where it
// came from (operation, optional path) and wraps the underlying cause.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType groups failures by the layer that produced them.
type ErrorType int

const (
	ErrorTypeConfig ErrorType = iota
	ErrorTypeFileSystem
	ErrorTypeUI
	ErrorTypeMacro
	ErrorTypeSettings
)

var typeNames = [...]string{
	ErrorTypeConfig:     "config",
	ErrorTypeFileSystem: "filesystem",
	ErrorTypeUI:         "ui",
	ErrorTypeMacro:      "macro",
	ErrorTypeSettings:   "settings",
}

func (et ErrorType) String() string {
	if et < 0 || int(et) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[et]
}

// AppError is a failure in one picker operation.
type AppError struct {
	Type      ErrorType
	Operation string
	Path      string // empty when the failure is not about one path
	Message   string
	Err       error
}

func (e *AppError) Error() string {
	where := e.Operation
	if e.Path != "" {
		where += " [" + e.Path + "]"
	}
	return fmt.Sprintf("%s error in %s: %s", e.Type, where, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// KindOf returns the type of the first AppError in err's chain.
func KindOf(err error) (ErrorType, bool) {
	var ae *AppError
	if !errors.As(err, &ae) {
		return 0, false
	}
	return ae.Type, true
}

func newError(t ErrorType, op, path, msg string, err error) *AppError {
	return &AppError{Type: t, Operation: op, Path: path, Message: msg, Err: err}
}

// NewConfigError reports a bad or unreadable config value.
func NewConfigError(op, msg string, err error) *AppError {
	return newError(ErrorTypeConfig, op, "", msg, err)
}

// NewFileSystemError reports a failed lookup or scan under path.
func NewFileSystemError(op, path, msg string, err error) *AppError {
	return newError(ErrorTypeFileSystem, op, path, msg, err)
}

// NewUIError reports a dialog or widget failure.
func NewUIError(op, msg string, err error) *AppError {
	return newError(ErrorTypeUI, op, "", msg, err)
}

func NewMacroError(op, path, msg string, err error) *AppError {
	return newError(ErrorTypeMacro, op, path, msg, err)
}

func NewSettingsError(op, path, msg string, err error) *AppError {
	return newError(ErrorTypeSettings, op, path, msg, err)
}
