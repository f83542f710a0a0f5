// Package serr holds the errors of the parse service. Every error it makes is
// classified under one or more kinds, and errors.Is matches each kind as well
// as the chain of the error that caused it.
//
// Grammar problems form their own part of the taxonomy. A grammar that a
// client uploads and that cannot be loaded or put in Chomsky Normal Form is
// both ErrGrammar and ErrBadArgument. A stored grammar that the CYK parser
// refuses is only ErrGrammar, as the client did nothing wrong.
package serr

import (
	"errors"

	"github.com/dekarrin/chomsky/internal/grammar"
	"github.com/dekarrin/chomsky/server/dao"
)

// Kinds of service error.
var (
	ErrGrammar        = errors.New("grammar is not usable")
	ErrBadArgument    = errors.New("invalid argument")
	ErrBadBody        = errors.New("malformed request body")
	ErrBadCredentials = errors.New("username or password is incorrect")
	ErrNotFound       = errors.New("no such resource")
	ErrAlreadyExists  = errors.New("resource already exists")
	ErrDB             = errors.New("storage failure")
)

// Error is a failed service operation.
type Error struct {
	// Op is what was being done, such as "normalize grammar". It may be
	// empty.
	Op string

	// Err caused the failure. It may be nil, in which case the first kind
	// stands in for it.
	Err error

	kinds []error
}

// New returns an Error for op that is classified as each of kinds.
func New(op string, err error, kinds ...error) *Error {
	return &Error{Op: op, Err: err, kinds: kinds}
}

// Grammar classifies err, returned by the grammar loader, the normalizer, or
// the CYK parser constructor.
func Grammar(op string, err error) *Error {
	if errors.Is(err, grammar.ErrInvalidCNFGrammar) {
		return New(op, err, ErrGrammar)
	}
	return New(op, err, ErrGrammar, ErrBadArgument)
}

// DB classifies err, returned by a dao repository. A missing entity becomes
// ErrNotFound and a violated constraint becomes conflict; when conflict is nil
// or err is anything else, it becomes ErrDB.
func DB(op string, err error, conflict error) *Error {
	switch {
	case errors.Is(err, dao.ErrNotFound):
		return New(op, err, ErrNotFound)
	case conflict != nil && errors.Is(err, dao.ErrConstraintViolation):
		return New(op, err, conflict)
	default:
		return New(op, err, ErrDB)
	}
}

func (e *Error) Error() string {
	cause := e.Err
	if cause == nil && len(e.kinds) > 0 {
		cause = e.kinds[0]
	}

	switch {
	case cause == nil:
		return e.Op
	case e.Op == "":
		return cause.Error()
	default:
		return e.Op + ": " + cause.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	for _, k := range e.kinds {
		if k == target {
			return true
		}
	}
	return false
}

// Detail gives the message of the error that caused err, without any
// operation names or kinds. It is the message of err itself if nothing in its
// chain is an *Error.
func Detail(err error) string {
	var se *Error
	if errors.As(err, &se) && se.Err != nil {
		return se.Err.Error()
	}
	return err.Error()
}
