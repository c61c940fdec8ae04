package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readCSV decodes a comma-separated file. Cells are text; blank cells are
// empty.
func readCSV(data []byte) ([][]Value, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	grid := make([][]Value, len(records))
	for i, rec := range records {
		cells := make([]Value, len(rec))
		for j, s := range rec {
			if s != "" {
				cells[j] = StringValue(s)
			}
		}
		grid[i] = cells
	}
	return grid, nil
}
