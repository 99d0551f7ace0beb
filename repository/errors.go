package repository

import (
	"errors"

	"github.com/DInduwara/Flood-management-system/internal/db"
)

// ErrNotFound is returned when a lookup or update targets a missing id.
var ErrNotFound = errors.New("record not found")

// PersistenceError wraps a storage-layer failure: connection loss, timeout,
// or a write the store rejected.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Constraint reports whether the store rejected the write on a table constraint.
func (e *PersistenceError) Constraint() bool {
	return db.IsConstraintViolation(e.Err)
}

func persistErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
