package sheet

import (
	"errors"
	"fmt"
)

// ErrNoInputFiles is returned by LoadDir when no file in the directory has a
// supported extension.
var ErrNoInputFiles = errors.New("sheet: no input files found")

// FileAccessError reports a spreadsheet that could not be listed, opened or
// read.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("sheet: access %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// ParseError reports a spreadsheet whose content could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sheet: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
