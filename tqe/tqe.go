// Package tqe provides a mechanism to create or wrap errors with a Kind that
// lets callers tell schema faults from bad requests without string matching.
package tqe

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
)

// A Kind represents a class of error.  Front ends (the CLI, a report sink)
// convert these into their own representation.
type Kind int

const (
	Other Kind = iota
	Invalid
	NotFound
	Schema
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "other error"
	case Invalid:
		return "invalid request"
	case NotFound:
		return "item does not exist"
	case Schema:
		return "schema violation"
	}
	return "unknown error kind"
}

type Error struct {
	Kind Kind
	Err  error
}

func pad(b *bytes.Buffer, s string) {
	if b.Len() == 0 {
		return
	}
	b.WriteString(s)
}

func (e *Error) Error() string {
	b := &bytes.Buffer{}
	if e.Kind != Other {
		b.WriteString(e.Kind.String())
	}
	if e.Err != nil {
		pad(b, ": ")
		b.WriteString(e.Err.Error())
	}
	if b.Len() == 0 {
		return "no error"
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns just the Err.Error() string, if present, or the Kind
// string description.
func (e *Error) Message() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Kind != Other {
		return e.Kind.String()
	}
	return "no error"
}

// E generates an error from any mix of:
//   - a Kind
//   - an existing error
//   - a string and optional formatting verbs, like fmt.Errorf (including
//     support for the `%w` verb).
//
// The string and format verbs must be last in the arguments, if present.
func E(args ...interface{}) error {
	if len(args) == 0 {
		panic("no args to tqe.E")
	}
	e := &Error{}
	for i, arg := range args {
		switch arg := arg.(type) {
		case Kind:
			e.Kind = arg
		case error:
			e.Err = arg
		case string:
			e.Err = fmt.Errorf(arg, args[i+1:]...)
			return e
		default:
			_, file, line, _ := runtime.Caller(1)
			return fmt.Errorf("unknown type %T value %v in tqe.E call at %v:%v", arg, arg, file, line)
		}
	}
	return e
}

// ErrInvalid is shorthand for E(Invalid, args...).
func ErrInvalid(args ...interface{}) error {
	return E(append([]interface{}{Invalid}, args...)...)
}

// ErrSchema is shorthand for E(Schema, args...).
func ErrSchema(args ...interface{}) error {
	return E(append([]interface{}{Schema}, args...)...)
}

// KindOf returns the Kind of the first *Error found in err's chain, or
// Other if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Other
}

func IsInvalid(err error) bool {
	return KindOf(err) == Invalid
}

func IsNotFound(err error) bool {
	return KindOf(err) == NotFound
}

func IsSchema(err error) bool {
	return KindOf(err) == Schema
}
