package sheet

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Supported file extensions.
const (
	ExtODS  = ".ods"
	ExtXLSX = ".xlsx"
	ExtCSV  = ".csv"
)

// DefaultExtensions is the set of extensions LoadDir scans when the Loader
// does not name any.
var DefaultExtensions = []string{ExtODS}

// Loader reads spreadsheet files into Tables.
type Loader struct {
	// FS is the filesystem files are read from. Nil means the OS filesystem.
	FS afero.Fs

	// Extensions lists the file extensions LoadDir picks up, with the
	// leading dot. Empty means DefaultExtensions.
	Extensions []string

	// Sheet names the sheet to read from each workbook. Empty means the
	// first sheet. CSV files have a single unnamed sheet and ignore it.
	Sheet string

	Logger *zap.Logger
}

func (l *Loader) fs() afero.Fs {
	if l.FS == nil {
		return afero.NewOsFs()
	}
	return l.FS
}

func (l *Loader) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

func (l *Loader) extensions() []string {
	if len(l.Extensions) == 0 {
		return DefaultExtensions
	}
	return l.Extensions
}

// Files returns the paths in dir with a supported extension, sorted by file
// name. The order decides table precedence downstream.
func (l *Loader) Files(dir string) ([]string, error) {
	entries, err := afero.ReadDir(l.fs(), dir)
	if err != nil {
		return nil, &FileAccessError{Path: dir, Err: err}
	}

	want := make(map[string]bool)
	for _, ext := range l.extensions() {
		want[normalizeExt(ext)] = true
	}

	var names []string
	for _, e := range entries {
		// Hidden files include macOS "._name.ods" resource forks, which are
		// not spreadsheets.
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if want[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths, nil
}

// LoadDir loads every supported spreadsheet in dir, in file name order.
func (l *Loader) LoadDir(dir string) ([]*Table, error) {
	paths, err := l.Files(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s (extensions: %s)", ErrNoInputFiles, dir, strings.Join(l.extensions(), ", "))
	}

	tables := make([]*Table, 0, len(paths))
	for _, p := range paths {
		t, err := l.LoadFile(p)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// LoadFile reads a single spreadsheet. The reader is chosen by extension.
func (l *Loader) LoadFile(path string) (*Table, error) {
	data, err := afero.ReadFile(l.fs(), path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}

	var (
		sheetName string
		grid      [][]Value
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtODS:
		sheetName, grid, err = readODS(data, l.Sheet)
	case ExtXLSX:
		sheetName, grid, err = readXLSX(data, l.Sheet)
	case ExtCSV:
		grid, err = readCSV(data)
	default:
		err = fmt.Errorf("unsupported extension %q", ext)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	t := newTable(filepath.Base(path), path, sheetName, trimTrailingEmptyRows(grid))
	l.logger().Debug("Loaded spreadsheet",
		zap.String("file", t.Name),
		zap.String("sheet", t.Sheet),
		zap.Int("rows", t.Len()),
		zap.Strings("columns", t.Columns))
	return t, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
