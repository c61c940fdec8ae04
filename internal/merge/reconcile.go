package merge

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/dusk-indust/datasetmerge/internal/sheet"
)

// Reconciler aligns tables by row position and merges their solution
// columns.
type Reconciler struct {
	opts Options
}

// NewReconciler creates a Reconciler. Zero-valued options take defaults.
func NewReconciler(opts Options) *Reconciler {
	return &Reconciler{opts: opts.withDefaults()}
}

// Reconcile scans every row of the first table. For each row it compares
// the annotation key across all tables, records a Mismatch when they
// disagree, and builds a Record whose paragraph is the first table's key
// and whose words are the non-empty solution values in table order.
// A mismatch never blocks the record.
func (r *Reconciler) Reconcile(tables []*sheet.Table) (*Result, error) {
	if len(tables) == 0 {
		return nil, ErrNoTables
	}
	if err := r.check(tables); err != nil {
		return nil, err
	}

	key, sol := r.opts.KeyColumn, r.opts.SolutionColumn
	res := &Result{Files: make([]string, len(tables))}
	for i, t := range tables {
		res.Files[i] = t.Name
	}

	n := tables[0].Len()
	res.Records = make([]Record, 0, n)
	keys := make([]sheet.Value, len(tables))
	for row := 0; row < n; row++ {
		for i, t := range tables {
			keys[i] = t.Cell(row, key)
		}
		if m, ok := mismatchAt(row, keys, res.Files); ok {
			r.opts.Logger.Debug("Annotation key mismatch",
				zap.Int("row", row),
				zap.Int("distinct", len(m.Groups)))
			res.Mismatches = append(res.Mismatches, m)
		}

		words := []sheet.Value{}
		for _, t := range tables {
			v := t.Cell(row, sol)
			if v.IsEmpty() {
				continue
			}
			words = append(words, Coerce(v))
		}

		res.Records = append(res.Records, Record{
			ID:        row + 1,
			Paragraph: keys[0],
			Words:     words,
		})
	}
	return res, nil
}

// check validates columns and row counts before any row is merged.
func (r *Reconciler) check(tables []*sheet.Table) error {
	first := tables[0]
	for _, t := range tables {
		for _, col := range []string{r.opts.KeyColumn, r.opts.SolutionColumn} {
			if !t.HasColumn(col) {
				return &SchemaError{File: t.Name, Column: col}
			}
		}
	}

	for _, t := range tables[1:] {
		switch {
		case t.Len() == first.Len():
		case t.Len() < first.Len() || r.opts.RowCount == RowCountStrict:
			return &RowCountError{File: t.Name, Rows: t.Len(), First: first.Name, Expected: first.Len()}
		default:
			r.opts.Logger.Warn("Ignoring rows beyond the first table",
				zap.String("file", t.Name),
				zap.Int("rows", t.Len()),
				zap.Int("used", first.Len()))
		}
	}
	return nil
}

// mismatchAt groups file names by key value when the values at a row are
// not all equal.
func mismatchAt(row int, keys []sheet.Value, files []string) (Mismatch, bool) {
	same := true
	for _, k := range keys[1:] {
		if k != keys[0] {
			same = false
			break
		}
	}
	if same {
		return Mismatch{}, false
	}

	m := Mismatch{Row: row}
	index := make(map[sheet.Value]int)
	for i, k := range keys {
		g, ok := index[k]
		if !ok {
			g = len(m.Groups)
			index[k] = g
			m.Groups = append(m.Groups, Group{Value: k})
		}
		m.Groups[g].Files = append(m.Groups[g].Files, files[i])
	}
	return m, true
}

// Coerce turns a text value made only of ASCII decimal digits into an
// integer. Anything else, including digit strings too large for int64, is
// returned unchanged.
func Coerce(v sheet.Value) sheet.Value {
	s, ok := v.Str()
	if !ok || !isDigits(s) {
		return v
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return v
	}
	return sheet.IntValue(i)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
