// Package sheettest builds small spreadsheet files in memory for tests.
package sheettest

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Sheet is a named grid. The first row is the header. Cells may be nil
// (blank), string, int, int64, float64 or bool.
type Sheet struct {
	Name string
	Rows [][]any
}

// Annotated returns a single-sheet grid with the to_annotate and solution
// columns filled from pairs of values.
func Annotated(pairs ...[2]any) Sheet {
	rows := [][]any{{"to_annotate", "solution"}}
	for _, p := range pairs {
		rows = append(rows, []any{p[0], p[1]})
	}
	return Sheet{Name: "Sheet1", Rows: rows}
}

const (
	odsMimetype = "application/vnd.oasis.opendocument.spreadsheet"
	odsPrologue = `<?xml version="1.0" encoding="UTF-8"?>` +
		`<office:document-content` +
		` xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"` +
		` xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0"` +
		` xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0"` +
		` office:version="1.2"><office:body><office:spreadsheet>`
	odsEpilogue = `</office:spreadsheet></office:body></office:document-content>`
)

// ODS encodes sheets as an OpenDocument spreadsheet.
func ODS(t testing.TB, sheets ...Sheet) []byte {
	t.Helper()

	var body strings.Builder
	for _, s := range sheets {
		fmt.Fprintf(&body, `<table:table table:name="%s">`, escape(s.Name))
		for _, row := range s.Rows {
			body.WriteString("<table:table-row>")
			for _, cell := range row {
				body.WriteString(odsCell(t, cell))
			}
			body.WriteString("</table:table-row>")
		}
		body.WriteString("</table:table>")
	}
	return ODSContent(t, body.String())
}

// ODSContent wraps raw table markup in a content.xml document and zips it.
// Tests use it to exercise markup ODS() does not produce.
func ODSContent(t testing.TB, tables string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	require.NoError(t, err)
	_, err = w.Write([]byte(odsMimetype))
	require.NoError(t, err)

	w, err = zw.Create("content.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(odsPrologue + tables + odsEpilogue))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func odsCell(t testing.TB, cell any) string {
	switch v := cell.(type) {
	case nil:
		return "<table:table-cell/>"
	case string:
		return `<table:table-cell office:value-type="string"><text:p>` + escape(v) + `</text:p></table:table-cell>`
	case int:
		return odsFloat(float64(v))
	case int64:
		return odsFloat(float64(v))
	case float64:
		return odsFloat(v)
	case bool:
		return fmt.Sprintf(`<table:table-cell office:value-type="boolean" office:boolean-value="%t"><text:p>%t</text:p></table:table-cell>`, v, v)
	default:
		t.Fatalf("sheettest: unsupported cell type %T", cell)
		return ""
	}
}

func odsFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	return `<table:table-cell office:value-type="float" office:value="` + s + `"><text:p>` + s + `</text:p></table:table-cell>`
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// XLSX encodes sheets as an Office Open XML workbook.
func XLSX(t testing.TB, sheets ...Sheet) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if s.Name != "Sheet1" {
				require.NoError(t, f.SetSheetName("Sheet1", s.Name))
			}
		} else {
			_, err := f.NewSheet(s.Name)
			require.NoError(t, err)
		}
		for r, row := range s.Rows {
			for c, cell := range row {
				if cell == nil {
					continue
				}
				axis, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(s.Name, axis, cell))
			}
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// CSV encodes the grid of a single sheet as comma-separated text.
func CSV(t testing.TB, s Sheet) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range s.Rows {
		rec := make([]string, len(row))
		for i, cell := range row {
			if cell != nil {
				rec[i] = fmt.Sprint(cell)
			}
		}
		require.NoError(t, w.Write(rec))
	}
	w.Flush()
	require.NoError(t, w.Error())
	return buf.Bytes()
}
