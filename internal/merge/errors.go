package merge

import (
	"errors"
	"fmt"
)

// ErrNoTables is returned when Reconcile is called without input.
var ErrNoTables = errors.New("merge: no input tables")

// SchemaError reports a table that lacks a required column.
type SchemaError struct {
	File   string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("merge: %s: missing required column %q", e.File, e.Column)
}

// RowCountError reports a table whose row count cannot be reconciled with
// the first table under the active policy.
type RowCountError struct {
	File     string
	Rows     int
	First    string
	Expected int
}

func (e *RowCountError) Error() string {
	return fmt.Sprintf("merge: %s has %d rows, %s has %d", e.File, e.Rows, e.First, e.Expected)
}
