package errors

import (
	stderrors "errors"
	"fmt"
)

type Kind string

const (
	EmptyRequest    Kind = "empty_request"
	Process         Kind = "process"
	ToolReported    Kind = "tool_reported"
	UnrecognizedTag Kind = "unrecognized_tag"
	UnmanagedTag    Kind = "unmanaged_tag"
	InvalidValue    Kind = "invalid_value"
	InvalidConfig   Kind = "invalid_config"
	NotFound        Kind = "not_found"
	IOFailure       Kind = "io_failure"
	Internal        Kind = "internal"
)

type AppError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// New builds an AppError from a formatted message.
func New(kind Kind, op, format string, args ...any) error {
	return &AppError{
		Kind: kind,
		Op:   op,
		Err:  fmt.Errorf(format, args...),
	}
}

// KindOf returns the kind of the outermost AppError in the chain, or
// Internal when err carries none.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Is reports whether any AppError in the chain has the given kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		var appErr *AppError
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Kind == kind {
			return true
		}
		err = appErr.Err
	}
	return false
}

func UserMessage(err error) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return err.Error()
	}
	switch appErr.Kind {
	case EmptyRequest:
		return fmt.Sprintf("Nothing to do: %v", appErr.Err)
	case Process:
		return fmt.Sprintf("exiftool could not be run: %v", appErr.Err)
	case ToolReported:
		return fmt.Sprintf("exiftool reported an error for %s: %v", appErr.Path, appErr.Err)
	case UnrecognizedTag, UnmanagedTag, InvalidValue:
		return fmt.Sprintf("Unexpected metadata: %v", appErr.Err)
	case InvalidConfig:
		return fmt.Sprintf("Invalid configuration: %v", appErr.Err)
	case NotFound:
		return fmt.Sprintf("Path not found: %s", appErr.Path)
	case IOFailure:
		return fmt.Sprintf("I/O error: %s", appErr.Path)
	default:
		return fmt.Sprintf("Unexpected error: %v", appErr.Err)
	}
}
