package database

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrDuplicateKey reports a unique or primary key collision, such as a
	// second client with the same email.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrForeignKey reports a case pointing at a client that does not exist.
	ErrForeignKey = errors.New("foreign key violation")
)

// ConstraintError is returned for writes rejected by a storage constraint.
// Match it with errors.Is against ErrDuplicateKey or ErrForeignKey.
type ConstraintError struct {
	Kind  error
	Table string
	Err   error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Table, e.Kind, e.Err)
}

func (e *ConstraintError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// IsConstraint reports whether err is any constraint violation.
func IsConstraint(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce)
}

// classify converts driver constraint failures into ConstraintError and
// passes everything else through.
func classify(table string, err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		return err
	}
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return &ConstraintError{Kind: ErrDuplicateKey, Table: table, Err: err}
	case sqlite3.ErrConstraintForeignKey:
		return &ConstraintError{Kind: ErrForeignKey, Table: table, Err: err}
	}
	return err
}
