package resource

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cortejtech/agency-admin/internal/store"
)

var (
	// ErrNotFound is wrapped in a RemoteError when an update or delete targets a vanished id.
	ErrNotFound = store.ErrNotFound
	// ErrBusy is returned when a submit is attempted while another one is in flight.
	ErrBusy = errors.New("another operation is in progress")
	// ErrUnknownRecord is returned when an id is not among the listed items.
	ErrUnknownRecord = errors.New("record is not listed")
	// ErrNothingToConfirm is returned by ConfirmDelete without a preceding RequestDelete.
	ErrNothingToConfirm = errors.New("no delete awaiting confirmation")
)

// ValidationError lists required fields that were left empty.
// It is raised before any store call.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// RemoteError is a failed store call.
type RemoteError struct {
	Op    Op
	Table string
	ID    uint64
	Err   error
}

func (e *RemoteError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s %s #%d: %v", e.Op, e.Table, e.ID, e.Err)
	}

	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a mutation that hit a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
