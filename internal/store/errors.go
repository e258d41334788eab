package store

import (
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// MissingFieldError reports a required input that was empty. The operation
// performs no mutation when returning it.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q is empty", e.Field)
}

// DuplicateError reports a unique-constraint violation on an entity key
// (order-form number or worker name). Distinguished from other persistence
// errors so callers can render a specific "already exists" message.
type DuplicateError struct {
	Entity string
	Key    string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Entity, e.Key)
}

// NotFoundError reports that a lookup, update or delete target does not
// exist under the given scoping key. Nothing was mutated.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

// IsMissingField reports whether err is a MissingFieldError.
// Uses errors.As to handle wrapped errors.
func IsMissingField(err error) bool {
	var mf *MissingFieldError
	return errors.As(err, &mf)
}

// IsDuplicate reports whether err is a DuplicateError.
func IsDuplicate(err error) bool {
	var dup *DuplicateError
	return errors.As(err, &dup)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// isUniqueViolation detects a SQLite UNIQUE (or primary key) constraint
// failure, so it can be mapped to DuplicateError instead of surfacing as a
// generic persistence failure.
func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
