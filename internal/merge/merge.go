package merge

import (
	"go.uber.org/zap"

	"github.com/dusk-indust/datasetmerge/internal/sheet"
)

// Default column names.
const (
	DefaultKeyColumn      = "to_annotate"
	DefaultSolutionColumn = "solution"
)

// RowCountPolicy decides what happens when input tables differ in length.
type RowCountPolicy string

const (
	// RowCountFirst drives the scan by the first table's row count. Extra
	// rows in later tables are ignored; a later table with fewer rows is an
	// error because its rows cannot be aligned.
	RowCountFirst RowCountPolicy = "first"

	// RowCountStrict requires every table to have the same row count.
	RowCountStrict RowCountPolicy = "strict"
)

// Options configures a Reconciler.
type Options struct {
	KeyColumn      string // annotation key column, default "to_annotate"
	SolutionColumn string // merged column, default "solution"
	RowCount       RowCountPolicy
	Logger         *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.KeyColumn == "" {
		o.KeyColumn = DefaultKeyColumn
	}
	if o.SolutionColumn == "" {
		o.SolutionColumn = DefaultSolutionColumn
	}
	if o.RowCount == "" {
		o.RowCount = RowCountFirst
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Record is one merged row. Field order is the output order.
type Record struct {
	ID        int           `yaml:"id" json:"id"`
	Paragraph sheet.Value   `yaml:"paragraph" json:"paragraph"`
	Words     []sheet.Value `yaml:"words" json:"words"`
}

// Group is one distinct annotation key value seen at a mismatched row and
// the files that contributed it, in table order.
type Group struct {
	Value sheet.Value
	Files []string
}

// Mismatch records a row whose annotation key differs across tables.
// Groups are ordered by first appearance.
type Mismatch struct {
	Row    int // 0-based row index
	Groups []Group
}

// Result is the output of a reconcile pass.
type Result struct {
	Files      []string // source file names in table order
	Records    []Record
	Mismatches []Mismatch
}
