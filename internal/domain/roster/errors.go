package roster

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrValidation is the kind shared by every validation failure so callers can
// match with errors.Is regardless of how many records failed.
var ErrValidation = errors.New("roster validation failed")

// ValidationError identifies a record whose skill cannot be used.
type ValidationError struct {
	Index  int    // position in the submitted batch
	ID     string // row id, when the row came from the store
	First  string
	Last   string
	Value  string // offending skill as supplied
	Reason string
}

func (e *ValidationError) Error() string {
	name := strings.TrimSpace(e.First + " " + e.Last)
	if name == "" {
		name = "#" + strconv.Itoa(e.Index)
	}
	return fmt.Sprintf("record %d (%s): %s: %q", e.Index, name, e.Reason, e.Value)
}

// Is makes errors.Is(err, ErrValidation) true.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ValidationErrors is a batch of record failures.
type ValidationErrors []*ValidationError

func (es ValidationErrors) Error() string {
	if len(es) == 1 {
		return es[0].Error()
	}
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d invalid records: %s", len(es), strings.Join(msgs, "; "))
}

// Unwrap exposes each record error to errors.Is and errors.As.
func (es ValidationErrors) Unwrap() []error {
	out := make([]error, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}

// Invalid flattens err into the list of offending records. It returns nil
// when err carries no validation failure.
func Invalid(err error) []*ValidationError {
	var batch ValidationErrors
	if errors.As(err, &batch) {
		return batch
	}
	var single *ValidationError
	if errors.As(err, &single) {
		return []*ValidationError{single}
	}
	return nil
}
