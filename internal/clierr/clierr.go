// Package clierr holds errors that carry a message meant for the person at the
// console alongside the usual technical message.
package clierr

import (
	"errors"
	"fmt"
)

// consoleError is an error caused by input that could not be acted on. Either
// the input could not be understood or it asks for something that cannot be
// done with the loaded grammar.
//
// consoleError includes a human-readable message to show to the user as well
// as a typical more technical "error message" style message.
type consoleError struct {
	msg     string
	console string
	wrap    error
}

func (e *consoleError) Error() string {
	return e.msg
}

// ConsoleMessage shows the message that should be displayed at the console to
// describe the error.
func (e *consoleError) ConsoleMessage() string {
	return e.console
}

// Unwrap gives the error that the consoleError wraps, if it wraps one.
func (e *consoleError) Unwrap() error {
	return e.wrap
}

// New returns a new error that has both the message to show the user and the
// technical description of the error.
func New(console, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got ConsoleError(%q)", console)
	}
	return &consoleError{
		msg:     technical,
		console: console,
	}
}

// Newf returns a new error that has a message to show to the user and an
// automatically generated Error() description.
func Newf(consoleFormat string, a ...interface{}) error {
	return New(fmt.Sprintf(consoleFormat, a...), "")
}

// Wrap returns a new error that has both the message to show the user and the
// technical description of the error, and that wraps the given error.
func Wrap(e error, console, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("%s: %v", console, e)
	}
	return &consoleError{
		msg:     technical,
		console: console,
		wrap:    e,
	}
}

// Wrapf returns a new error that has a message to show the user and an
// automatically generated Error() description, and that wraps the given error.
func Wrapf(e error, consoleFormat string, a ...interface{}) error {
	return Wrap(e, fmt.Sprintf(consoleFormat, a...), "")
}

// ConsoleMessage gets the message to display to the console for the given
// error. If err or any error it wraps was created by this package, its console
// message is returned. Otherwise, err.Error() is returned.
func ConsoleMessage(err error) string {
	var conErr *consoleError
	if errors.As(err, &conErr) {
		return conErr.ConsoleMessage()
	}
	return err.Error()
}
