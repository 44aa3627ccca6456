package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// opError tags an error with the handler operation that produced it and,
// optionally, a sentinel kind callers can match with errors.Is.
type opError struct {
	op   string
	kind error
	err  error
}

func (e *opError) Error() string {
	switch {
	case e.kind != nil && e.err != nil:
		return fmt.Sprintf("%s: %v: %v", e.op, e.kind, e.err)
	case e.kind != nil:
		return fmt.Sprintf("%s: %v", e.op, e.kind)
	case e.err != nil:
		return fmt.Sprintf("%s: %v", e.op, e.err)
	}
	return e.op
}

func (e *opError) Unwrap() []error {
	var out []error
	if e.kind != nil {
		out = append(out, e.kind)
	}
	if e.err != nil {
		out = append(out, e.err)
	}
	return out
}

// NewKind returns an error of the given kind raised by op.
func NewKind(op string, kind error) error {
	return &opError{op: op, kind: kind}
}

// WrapKind wraps err as the given kind raised by op.
func WrapKind(op string, kind, err error) error {
	return &opError{op: op, kind: kind, err: err}
}

// Wrap annotates err with op, keeping its own kind.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &opError{op: op, err: err}
}
