package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dusk-indust/datasetmerge/internal/merge"
)

// Summary describes the outcome of one merge run.
type Summary struct {
	DatasetPath  string
	Records      int
	MismatchPath string // empty when nothing was written
	Mismatches   int
}

// Print writes the one-line-per-output summary.
func Print(w io.Writer, s Summary) error {
	if s.DatasetPath != "" {
		if _, err := fmt.Fprintf(w, "Generated %s with %d datasets\n", s.DatasetPath, s.Records); err != nil {
			return err
		}
	}
	if s.Mismatches == 0 {
		_, err := fmt.Fprintln(w, "No mismatches found!")
		return err
	}
	if s.MismatchPath == "" {
		_, err := fmt.Fprintf(w, "Found %d mismatches\n", s.Mismatches)
		return err
	}
	_, err := fmt.Fprintf(w, "Found %d mismatches, saved to %s\n", s.Mismatches, s.MismatchPath)
	return err
}

// PrintMismatches writes a readable listing of each mismatched row with the
// id of the record it produced.
func PrintMismatches(w io.Writer, mismatches []merge.Mismatch) error {
	for _, m := range mismatches {
		if _, err := fmt.Fprintf(w, "Row %d (id %d):\n", m.Row, m.Row+1); err != nil {
			return err
		}
		for _, g := range m.Groups {
			if _, err := fmt.Fprintf(w, "  %-40s <- %s\n", quote(g.Value.String()), strings.Join(g.Files, ", ")); err != nil {
				return err
			}
		}
	}
	return nil
}

// quote shortens long keys and escapes them onto one line.
func quote(s string) string {
	const maxLen = 38
	if r := []rune(s); len(r) > maxLen {
		s = string(r[:maxLen-3]) + "..."
	}
	return fmt.Sprintf("%q", s)
}
