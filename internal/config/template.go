package config

import (
	_ "embed"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Template is the commented starter config written by `datasetmerge init`.
//
//go:embed datasetmerge.yml
var Template []byte

// WriteTemplate writes Template to dir/datasetmerge.yml. An existing file is
// left alone unless force is set. It returns the path of the config file and
// whether it was written.
func WriteTemplate(fs afero.Fs, dir string, force bool) (string, bool, error) {
	path := filepath.Join(dir, FileNames[0])
	if !force {
		for _, name := range FileNames {
			existing := filepath.Join(dir, name)
			if ok, err := afero.Exists(fs, existing); err != nil {
				return existing, false, fmt.Errorf("config: stat %s: %w", existing, err)
			} else if ok {
				return existing, false, nil
			}
		}
	}

	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return path, false, fmt.Errorf("config: create %s: %w", dir, err)
	}
	if err := afero.WriteFile(fs, path, Template, 0o644); err != nil {
		return path, false, fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, true, nil
}
