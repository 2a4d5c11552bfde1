package errors

import (
	"errors"
	"fmt"
)

var (
	ErrUnreadableInput   = errors.New("unreadable input")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInternal          = errors.New("internal error")
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitConfig      = 2
	ExitUnreadable  = 3
	ExitUnavailable = 4
)

type AppError struct {
	Err      error
	Message  string
	ExitCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, exitCode int, message string) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  message,
		ExitCode: exitCode,
	}
}

func Newf(sentinel error, exitCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  fmt.Sprintf(format, args...),
		ExitCode: exitCode,
	}
}

// ExitCode maps err to the code the process should exit with.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrInvalidInput):
		return ExitConfig
	case errors.Is(err, ErrUnreadableInput):
		return ExitUnreadable
	case errors.Is(err, ErrSourceUnavailable):
		return ExitUnavailable
	default:
		return ExitFailure
	}
}
