package sheet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// readXLSX decodes the named sheet (or the first one) of an Office Open XML
// workbook. Raw cell values are used so that number formats do not leak
// into the data.
func readXLSX(data []byte, want string) (string, [][]Value, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("open xlsx workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, fmt.Errorf("workbook has no sheets")
	}
	name := sheets[0]
	if want != "" {
		idx, err := f.GetSheetIndex(want)
		if err != nil || idx < 0 {
			return "", nil, fmt.Errorf("sheet %q not found (available: %s)", want, strings.Join(sheets, ", "))
		}
		name = want
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", nil, fmt.Errorf("sheet %q: %w", name, err)
	}

	grid := make([][]Value, len(rows))
	for r, raw := range rows {
		cells := make([]Value, len(raw))
		for c, s := range raw {
			v, err := xlsxValue(f, name, r, c, s)
			if err != nil {
				return "", nil, fmt.Errorf("sheet %q: %w", name, err)
			}
			cells[c] = v
		}
		grid[r] = cells
	}
	return name, grid, nil
}

// xlsxValue types one raw cell using the cell type recorded in the sheet.
// Numeric cells usually carry no explicit type, so untyped cells that parse
// as numbers are numbers.
func xlsxValue(f *excelize.File, sheetName string, r, c int, raw string) (Value, error) {
	if raw == "" {
		return Value{}, nil
	}
	axis, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return Value{}, err
	}
	typ, err := f.GetCellType(sheetName, axis)
	if err != nil {
		return Value{}, fmt.Errorf("cell %s: %w", axis, err)
	}

	switch typ {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if n, err := cast.ToFloat64E(raw); err == nil {
			return NumberValue(n), nil
		}
	case excelize.CellTypeBool:
		if b, err := cast.ToBoolE(raw); err == nil {
			return BoolValue(b), nil
		}
	}
	return StringValue(raw), nil
}
