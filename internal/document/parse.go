package document

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/benefits-advisor/internal/types"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// sectionDelimiter separates sections: a newline followed by the header prefix
const sectionDelimiter = "\n" + HeaderPrefix

// Decode turns uploaded bytes into text with normalized line endings
func Decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", &DecodeError{Message: "upload is not valid UTF-8 text"}
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text, nil
}

// Parse recovers the typed sections of an uploaded profile document.
//
// Parsing is best-effort: the returned document holds every recognized section
// that parsed cleanly, and the error, when non-nil, joins one
// *MalformedSectionError per section that did not. Unknown sections are dropped.
// A *DecodeError is returned with a nil document when data is not UTF-8.
func Parse(data []byte) (*types.Document, error) {
	text, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return ParseString(text)
}

// ParseString is Parse for already decoded text
func ParseString(text string) (*types.Document, error) {
	doc := &types.Document{}
	var errs []error
	seen := make(map[types.SectionName]bool)

	for i, chunk := range strings.Split(text, sectionDelimiter) {
		chunk = strings.TrimSpace(chunk)
		if i == 0 {
			// the first header has no preceding newline
			if !strings.HasPrefix(chunk, HeaderPrefix) {
				continue
			}
			chunk = strings.TrimPrefix(chunk, HeaderPrefix)
		}

		title, body, _ := strings.Cut(chunk, "\n")
		name, ok := types.SectionByTitle(strings.TrimSpace(title))
		if !ok || seen[name] {
			continue
		}
		seen[name] = true

		sec, err := parseTable(name, body)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		doc.Set(sec)
	}

	return doc, errors.Join(errs...)
}

// parseTable parses a header-plus-rows CSV body into a typed section
func parseTable(name types.SectionName, body string) (types.Section, error) {
	r := csv.NewReader(strings.NewReader(body))
	// field counts are checked below so the row index can be reported
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return types.Section{}, &MalformedSectionError{Section: name, Row: 0, Cause: errMissingHeader}
	}
	if err != nil {
		return types.Section{}, &MalformedSectionError{Section: name, Row: 0, Cause: err}
	}

	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		if col == "" {
			return types.Section{}, &MalformedSectionError{Section: name, Row: 0, Cause: errEmptyColumn}
		}
		if seen[col] {
			return types.Section{}, &MalformedSectionError{
				Section: name,
				Row:     0,
				Cause:   fmt.Errorf("%w: %s", errDuplicateColumn, col),
			}
		}
		seen[col] = true
		columns[i] = col
	}

	var cells [][]string
	for row := 1; ; row++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return types.Section{}, &MalformedSectionError{Section: name, Row: row, Cause: err}
		}
		if len(record) != len(columns) {
			return types.Section{}, &MalformedSectionError{
				Section: name,
				Row:     row,
				Cause:   fmt.Errorf("expected %d fields, got %d", len(columns), len(record)),
			}
		}
		cells = append(cells, record)
	}

	kinds := make([]types.Kind, len(columns))
	for j := range columns {
		kinds[j] = inferKind(cells, j)
	}

	rows := make([]types.Row, len(cells))
	for i, record := range cells {
		row := make(types.Row, len(columns))
		for j, cell := range record {
			row[j] = convert(cell, kinds[j])
		}
		rows[i] = row
	}

	return types.Section{Name: name, Columns: columns, Rows: rows}, nil
}
