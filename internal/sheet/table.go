package sheet

import "fmt"

// Row maps column names to cell values.
type Row map[string]Value

// Table is one spreadsheet loaded into memory. The first row of the sheet
// is the header; Rows holds the data rows below it.
type Table struct {
	Name    string   // base file name, e.g. "annotator-a.ods"
	Path    string   // path the table was read from
	Sheet   string   // sheet the rows came from
	Columns []string // header order
	Rows    []Row
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Cell returns the value at row r in column col. Cells beyond a short row
// are empty.
func (t *Table) Cell(r int, col string) Value {
	return t.Rows[r][col]
}

// newTable builds a Table from a grid whose first row is the header.
// Blank header cells are named "Unnamed: <index>" and repeated names get a
// ".<n>" suffix, so every column stays addressable.
func newTable(name, path, sheetName string, grid [][]Value) *Table {
	t := &Table{Name: name, Path: path, Sheet: sheetName}
	if len(grid) == 0 {
		return t
	}

	seen := make(map[string]int)
	for i, h := range grid[0] {
		col := h.String()
		if h.IsEmpty() || col == "" {
			col = fmt.Sprintf("Unnamed: %d", i)
		}
		if n := seen[col]; n > 0 {
			seen[col] = n + 1
			col = fmt.Sprintf("%s.%d", col, n)
		} else {
			seen[col] = 1
		}
		t.Columns = append(t.Columns, col)
	}

	for _, cells := range grid[1:] {
		row := make(Row, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(cells) {
				row[col] = cells[i]
			} else {
				row[col] = Value{}
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// trimTrailingEmptyRows drops blank rows at the end of a grid.
func trimTrailingEmptyRows(grid [][]Value) [][]Value {
	end := len(grid)
	for end > 0 && rowIsEmpty(grid[end-1]) {
		end--
	}
	return grid[:end]
}

func rowIsEmpty(cells []Value) bool {
	for _, c := range cells {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
