package export

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/dusk-indust/datasetmerge/internal/merge"
	"github.com/dusk-indust/datasetmerge/internal/sheet"
)

func datasetJSON(doc DatasetDocument) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// mismatchJSON mirrors mismatchYAML. JSON object keys are strings, so row
// indexes and key values are rendered as text; an empty key becomes "".
// Values that render the same (text "7" and number 7) get their kind
// appended so no group is overwritten.
func mismatchJSON(mismatches []merge.Mismatch) ([]byte, error) {
	root := orderedmap.New()
	for _, m := range mismatches {
		groups := orderedmap.New()
		used := make(map[string]bool, len(m.Groups))
		for _, g := range m.Groups {
			key := jsonKey(g.Value, used)
			used[key] = true
			groups.Set(key, g.Files)
		}
		root.Set(strconv.Itoa(m.Row), groups)
	}

	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// jsonKey renders v as an object key not yet in used.
func jsonKey(v sheet.Value, used map[string]bool) string {
	key := v.String()
	if !used[key] {
		return key
	}
	key = fmt.Sprintf("%s (%s)", v.String(), v.Kind())
	for n := 2; used[key]; n++ {
		key = fmt.Sprintf("%s (%s %d)", v.String(), v.Kind(), n)
	}
	return key
}
