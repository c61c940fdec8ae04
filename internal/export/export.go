package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/dusk-indust/datasetmerge/internal/merge"
)

// Format is the serialization of an output document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the format from the output file extension. Anything that
// is not .json is YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// DatasetDocument is the top-level dataset output structure.
type DatasetDocument struct {
	Datasets []merge.Record `yaml:"datasets" json:"datasets"`
}

// WriteDataset writes records under the datasets key.
func WriteDataset(fs afero.Fs, path string, records []merge.Record) error {
	if records == nil {
		records = []merge.Record{}
	}
	doc := DatasetDocument{Datasets: records}

	var (
		data []byte
		err  error
	)
	switch FormatFor(path) {
	case FormatJSON:
		data, err = datasetJSON(doc)
	default:
		data, err = datasetYAML(doc)
	}
	if err != nil {
		return fmt.Errorf("export: encode dataset: %w", err)
	}
	return writeFile(fs, path, data)
}

// WriteMismatches writes the mismatch report: row index mapped to each
// distinct annotation key and the files that produced it. Callers skip the
// file when there are no mismatches.
func WriteMismatches(fs afero.Fs, path string, mismatches []merge.Mismatch) error {
	var (
		data []byte
		err  error
	)
	switch FormatFor(path) {
	case FormatJSON:
		data, err = mismatchJSON(mismatches)
	default:
		data, err = mismatchYAML(mismatches)
	}
	if err != nil {
		return fmt.Errorf("export: encode mismatches: %w", err)
	}
	return writeFile(fs, path, data)
}

func writeFile(fs afero.Fs, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: create %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
