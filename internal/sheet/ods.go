package sheet

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// OpenDocument namespaces used in content.xml.
const (
	nsOffice = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
	nsTable  = "urn:oasis:names:tc:opendocument:xmlns:table:1.0"
	nsText   = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
)

// Sheet size limits of the OpenDocument spreadsheet format. Repeated blank
// rows and columns are only expanded when real content follows them, so
// these only trip on malformed files.
const (
	maxODSRows    = 1 << 20
	maxODSColumns = 1 << 14
)

// readODS decodes the named sheet (or the first one) of an OpenDocument
// spreadsheet into a grid of values.
func readODS(data []byte, want string) (string, [][]Value, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("open ods archive: %w", err)
	}

	var content *zip.File
	for _, f := range zr.File {
		if f.Name == "content.xml" {
			content = f
			break
		}
	}
	if content == nil {
		return "", nil, errors.New("ods archive has no content.xml")
	}

	rc, err := content.Open()
	if err != nil {
		return "", nil, fmt.Errorf("open content.xml: %w", err)
	}
	defer rc.Close()

	return decodeODSContent(rc, want)
}

func decodeODSContent(r io.Reader, want string) (string, [][]Value, error) {
	d := xml.NewDecoder(r)
	var names []string
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", nil, fmt.Errorf("decode content.xml: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || !isElem(se.Name, nsTable, "table") {
			continue
		}
		name := attr(se, nsTable, "name")
		if want != "" && name != want {
			names = append(names, name)
			if err := d.Skip(); err != nil {
				return "", nil, fmt.Errorf("decode content.xml: %w", err)
			}
			continue
		}

		grid, err := decodeODSTable(d)
		if err != nil {
			return "", nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		return name, grid, nil
	}

	if want != "" {
		return "", nil, fmt.Errorf("sheet %q not found (available: %s)", want, strings.Join(names, ", "))
	}
	return "", nil, errors.New("workbook has no sheets")
}

// decodeODSTable reads rows until the end of the current table:table
// element. Rows inside header-row and row-group wrappers are included.
func decodeODSTable(d *xml.Decoder) ([][]Value, error) {
	var (
		grid  [][]Value
		blank int
		depth int
	)
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !isElem(t.Name, nsTable, "table-row") {
				depth++
				continue
			}
			cells, repeat, err := decodeODSRow(d, t)
			if err != nil {
				return nil, err
			}
			if rowIsEmpty(cells) {
				blank += repeat
				continue
			}
			if len(grid)+blank+repeat > maxODSRows {
				return nil, fmt.Errorf("more than %d rows", maxODSRows)
			}
			for ; blank > 0; blank-- {
				grid = append(grid, nil)
			}
			for i := 0; i < repeat; i++ {
				grid = append(grid, cells)
			}
		case xml.EndElement:
			if depth == 0 {
				return grid, nil
			}
			depth--
		}
	}
}

// decodeODSRow reads the cells of one table:table-row and reports how many
// times the row repeats.
func decodeODSRow(d *xml.Decoder, start xml.StartElement) ([]Value, int, error) {
	repeat := repeatAttr(start, "number-rows-repeated")
	var (
		cells []Value
		blank int
	)
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, 0, unexpectedEOF(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !isElem(t.Name, nsTable, "table-cell") && !isElem(t.Name, nsTable, "covered-table-cell") {
				if err := d.Skip(); err != nil {
					return nil, 0, err
				}
				continue
			}
			v, err := decodeODSCell(d, t)
			if err != nil {
				return nil, 0, err
			}
			n := repeatAttr(t, "number-columns-repeated")
			if v.IsEmpty() {
				blank += n
				continue
			}
			if len(cells)+blank+n > maxODSColumns {
				return nil, 0, fmt.Errorf("more than %d columns", maxODSColumns)
			}
			for ; blank > 0; blank-- {
				cells = append(cells, Value{})
			}
			for i := 0; i < n; i++ {
				cells = append(cells, v)
			}
		case xml.EndElement:
			return cells, repeat, nil
		}
	}
}

// decodeODSCell turns one cell element into a Value. Typed cells take their
// value from the office:* attributes; untyped cells from their text.
func decodeODSCell(d *xml.Decoder, start xml.StartElement) (Value, error) {
	text, err := cellText(d)
	if err != nil {
		return Value{}, err
	}

	switch vt := attr(start, nsOffice, "value-type"); vt {
	case "float", "percentage", "currency":
		raw := attr(start, nsOffice, "value")
		f, err := cast.ToFloat64E(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%s cell value %q: %w", vt, raw, err)
		}
		return NumberValue(f), nil
	case "boolean":
		raw := attr(start, nsOffice, "boolean-value")
		b, err := cast.ToBoolE(raw)
		if err != nil {
			return Value{}, fmt.Errorf("boolean cell value %q: %w", raw, err)
		}
		return BoolValue(b), nil
	case "date":
		return StringValue(attr(start, nsOffice, "date-value")), nil
	case "time":
		return StringValue(attr(start, nsOffice, "time-value")), nil
	case "string":
		if s := attr(start, nsOffice, "string-value"); s != "" {
			return StringValue(s), nil
		}
	}

	if text == "" {
		return Value{}, nil
	}
	return StringValue(text), nil
}

// cellText collects the text of a cell up to its end element. Paragraphs
// are joined with newlines; text:s, text:tab and text:line-break expand to
// their characters. Cell annotations are ignored.
func cellText(d *xml.Decoder) (string, error) {
	var (
		b     strings.Builder
		paras int
		depth int
	)
	for {
		tok, err := d.Token()
		if err != nil {
			return "", unexpectedEOF(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case isElem(t.Name, nsOffice, "annotation"):
				if err := d.Skip(); err != nil {
					return "", err
				}
				continue
			case isElem(t.Name, nsText, "p"):
				if paras > 0 {
					b.WriteByte('\n')
				}
				paras++
			case isElem(t.Name, nsText, "s"):
				n, err := strconv.Atoi(attr(t, nsText, "c"))
				if err != nil || n < 1 {
					n = 1
				}
				b.WriteString(strings.Repeat(" ", n))
			case isElem(t.Name, nsText, "tab"):
				b.WriteByte('\t')
			case isElem(t.Name, nsText, "line-break"):
				b.WriteByte('\n')
			}
			depth++
		case xml.EndElement:
			if depth == 0 {
				return b.String(), nil
			}
			depth--
		case xml.CharData:
			if depth > 0 {
				b.Write(t)
			}
		}
	}
}

func isElem(n xml.Name, space, local string) bool {
	return n.Space == space && n.Local == local
}

func attr(se xml.StartElement, space, local string) string {
	for _, a := range se.Attr {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func repeatAttr(se xml.StartElement, local string) int {
	n, err := strconv.Atoi(attr(se, nsTable, local))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
