package errors

import (
	"errors"
	"fmt"
	"runtime/debug"

	werr "github.com/pkg/errors"
)

/*
-------------------------------
	Wrapper
-------------------------------
*/

// WrapStack adds a StackTrace and wraps the error with a message if one is passed.
// If the error already carries a StackTrace the new one is ignored.
func WrapStack(err error, msgs ...interface{}) error {
	if err != nil {
		msg := ""
		if !HasStack(err) {
			err = werr.WithStack(err)
		}
		for _, m := range msgs {
			msg = fmt.Sprintf("%+v; ", m)
		}
		err = werr.WithMessage(err, msg)
	}
	return err
}

// WrapMessage wraps the error with a message if one is passed,
// without a StackTrace
func WrapMessage(err error, msgs ...interface{}) error {
	if err != nil {
		msg := ""
		for _, m := range msgs {
			msg = fmt.Sprintf("%+v; ", m)
		}
		err = werr.WithMessage(err, msg)
	}
	return err
}

/*
-------------------------------
	Wrapper tools
-------------------------------
*/

// Cause returns the first error, whether the error was wrapped or not
func Cause(err error) error {
	return werr.Cause(err)
}

// Is reports whether the cause of err matches target,
// unwrapping pkg/errors wrappers first
func Is(err, target error) bool {
	return errors.Is(Cause(err), target)
}

// HasStack returns true if a StackTrace exists
func HasStack(err error) bool {
	type stackTracer interface {
		StackTrace() werr.StackTrace
	}
	_, ok := err.(stackTracer)
	return ok
}

// UnWrapStack returns the StackTrace if one exists
func UnWrapStack(err error) string {
	type stackTracer interface {
		StackTrace() werr.StackTrace
	}
	e, ok := err.(stackTracer)
	if ok {
		st := e.StackTrace()
		if len(st) > 0 {
			return fmt.Sprintf("%+v", st)
		}
	}

	return ""
}

// GetStack always returns a stack,
// falling back to runtime/debug when none was wrapped
func GetStack(err error) string {
	if stack := UnWrapStack(err); stack != "" {
		return stack
	}

	return string(debug.Stack())
}

// New returns an error with the supplied message.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf formats according to a format specifier and returns the string
// as a value that satisfies error. Errorf also records the stack trace at the point it was called.
func Errorf(format string, args ...interface{}) error {
	return werr.Errorf(format, args...)
}
