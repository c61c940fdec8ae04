package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/datasetmerge/internal/merge"
	"github.com/dusk-indust/datasetmerge/internal/sheet"
)

// Built-in defaults, matching the layout of the quiz data repository.
const (
	DefaultInputDir       = "src/assets/data"
	DefaultDatasetOutput  = "dataset.yaml"
	DefaultMismatchOutput = "mismatch.yaml"
	DefaultKeyColumn      = merge.DefaultKeyColumn
	DefaultSolutionColumn = merge.DefaultSolutionColumn
)

// DefaultExtensions lists the input extensions scanned when none are set.
var DefaultExtensions = sheet.DefaultExtensions

// FileNames are the config files Load looks for, in order.
var FileNames = []string{"datasetmerge.yml", "datasetmerge.yaml"}

// ProjectConfig holds project-level settings loaded from datasetmerge.yml.
type ProjectConfig struct {
	InputDir       string   `yaml:"inputDir,omitempty"`
	Extensions     []string `yaml:"extensions,omitempty"`
	Sheet          string   `yaml:"sheet,omitempty"`
	KeyColumn      string   `yaml:"keyColumn,omitempty"`
	SolutionColumn string   `yaml:"solutionColumn,omitempty"`
	DatasetOutput  string   `yaml:"datasetOutput,omitempty"`
	MismatchOutput string   `yaml:"mismatchOutput,omitempty"`
	StrictRows     bool     `yaml:"strictRows,omitempty"`
	Verbose        bool     `yaml:"verbose,omitempty"`
}

// Load attempts to read datasetmerge.yml or datasetmerge.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(fs afero.Fs, dir string) (*ProjectConfig, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			continue
		}
		return parse(path, data)
	}
	return &ProjectConfig{}, nil
}

// LoadFile reads an explicitly named config file. Unlike Load, a missing
// file is an error.
func LoadFile(fs afero.Fs, path string) (*ProjectConfig, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*ProjectConfig, error) {
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// WithDefaults returns a copy of c with every unset field filled from the
// built-in defaults.
func (c ProjectConfig) WithDefaults() ProjectConfig {
	if c.InputDir == "" {
		c.InputDir = DefaultInputDir
	}
	if len(c.Extensions) == 0 {
		c.Extensions = append([]string(nil), DefaultExtensions...)
	}
	if c.KeyColumn == "" {
		c.KeyColumn = DefaultKeyColumn
	}
	if c.SolutionColumn == "" {
		c.SolutionColumn = DefaultSolutionColumn
	}
	if c.DatasetOutput == "" {
		c.DatasetOutput = DefaultDatasetOutput
	}
	if c.MismatchOutput == "" {
		c.MismatchOutput = DefaultMismatchOutput
	}
	return c
}
