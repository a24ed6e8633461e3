package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad marks a failed store read. The last known-good collection is kept.
	ErrLoad = errors.New("load failure")
	// ErrSave marks a failed store write. The in-memory mutation is not reverted.
	ErrSave = errors.New("save failure")

	ErrEmptyTitle = errors.New("task title is empty")
)

// OpError reports which engine operation failed, its kind (ErrLoad or
// ErrSave) and the underlying cause. errors.Is matches both.
type OpError struct {
	Op   string
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *OpError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func loadFailure(op string, err error) error {
	return &OpError{Op: op, Kind: ErrLoad, Err: err}
}

func saveFailure(op string, err error) error {
	return &OpError{Op: op, Kind: ErrSave, Err: err}
}
