// Package leadfile converts an uploaded tabular file (CSV or spreadsheet)
// into validated lead records. The full column contract is checked before
// anything is returned, so callers never persist a partially valid file, and
// every cell is carried as text to avoid type-inference surprises (numeric
// phone numbers, blank notes).
package leadfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Required column headers. Matching is exact after whitespace/BOM trimming,
// mirroring the upstream file template handed to operators.
const (
	ColumnFirstName = "FirstName"
	ColumnPhone     = "Phone"
	ColumnNotes     = "Notes"
)

// RequiredColumns lists the headers every lead file must contain.
var RequiredColumns = []string{ColumnFirstName, ColumnPhone, ColumnNotes}

var (
	// ErrUnsupportedFormat is returned when the declared filename does not
	// carry one of the allowed tabular extensions.
	ErrUnsupportedFormat = errors.New("only CSV, XLSX, and XLS files are allowed")

	// ErrUnparseable is returned (wrapped, with the underlying cause) when
	// the file bytes cannot be decoded as the declared format.
	ErrUnparseable = errors.New("unable to parse file")
)

// SchemaError reports a decoded file whose header set is missing one or more
// required columns. It names both sides so the client can see exactly what
// the file provided versus what the contract requires.
type SchemaError struct {
	Missing []string // required columns absent from the file
	Headers []string // headers the file actually declared
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("file must contain columns: %s (missing: %s; found: %s)",
		strings.Join(RequiredColumns, ", "),
		strings.Join(e.Missing, ", "),
		strings.Join(e.Headers, ", "))
}

// Record is one validated lead row. The three contract-bound fields are
// coerced to text; every other column travels in Extra as opaque
// pass-through metadata that the distribution engine never inspects.
type Record struct {
	FirstName string
	Phone     string
	Notes     string
	Extra     map[string]string
}

// supported extensions, lowercase, including the dot.
var allowedExtensions = map[string]struct{}{
	".csv":  {},
	".xlsx": {},
	".xls":  {},
}

// Parse decodes raw uploaded bytes into a materialized, order-preserving
// slice of lead records.
//
// Failure modes:
//   - ErrUnsupportedFormat: extension not in the allow-list.
//   - ErrUnparseable (wrapped): bytes cannot be decoded as the format.
//   - *SchemaError: decoded headers miss a required column.
//
// A file with valid headers and zero data rows parses successfully to an
// empty slice.
func Parse(filename string, data []byte) ([]Record, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, ErrUnsupportedFormat
	}

	var (
		headers []string
		rows    [][]string
		err     error
	)
	if ext == ".csv" {
		headers, rows, err = decodeCSV(data)
	} else {
		headers, rows, err = decodeWorkbook(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	cols, schemaErr := columnIndex(headers)
	if schemaErr != nil {
		return nil, schemaErr
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, buildRecord(headers, cols, row))
	}
	return records, nil
}

// decodeCSV reads a header row plus data rows from CSV bytes. Encoding is
// normalized to UTF-8 first. The reader is deliberately lenient: lazy quotes
// and ragged rows (padded or truncated to the header width) are tolerated
// because real-world exports are messy.
func decodeCSV(data []byte) ([]string, [][]string, error) {
	decoded, _, err := decodeToUTF8(data)
	if err != nil {
		return nil, nil, err
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	headers, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("empty file: no header row found")
		}
		return nil, nil, fmt.Errorf("reading header row: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading data row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, fitRow(row, len(headers)))
	}
	return headers, rows, nil
}

// decodeWorkbook reads the first sheet of a spreadsheet file. Cell values
// arrive from excelize already formatted as text, which matches the
// everything-is-a-string contract of this package.
func decodeWorkbook(data []byte) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook has no sheets")
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(all) == 0 {
		return nil, nil, errors.New("empty sheet: no header row found")
	}

	headers := all[0]
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}
	rows := make([][]string, 0, len(all)-1)
	for _, row := range all[1:] {
		rows = append(rows, fitRow(row, len(headers)))
	}
	return headers, rows, nil
}

// fitRow pads or truncates a data row to exactly width cells.
func fitRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	fitted := make([]string, width)
	copy(fitted, row)
	return fitted
}

// columnIndex maps each header to its position and verifies that the
// required column set is a subset of the headers. Extra columns are ignored
// here and surfaced later as Record.Extra.
func columnIndex(headers []string) (map[string]int, *SchemaError) {
	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, seen := cols[h]; !seen {
			cols[h] = i
		}
	}

	var missing []string
	for _, req := range RequiredColumns {
		if _, ok := cols[req]; !ok {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &SchemaError{Missing: missing, Headers: headers}
	}
	return cols, nil
}

// buildRecord splits one fitted row into the three contract fields plus the
// opaque extras.
func buildRecord(headers []string, cols map[string]int, row []string) Record {
	rec := Record{
		FirstName: row[cols[ColumnFirstName]],
		Phone:     row[cols[ColumnPhone]],
		Notes:     row[cols[ColumnNotes]],
	}
	for i, h := range headers {
		switch h {
		case ColumnFirstName, ColumnPhone, ColumnNotes:
			continue
		}
		if h == "" {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]string)
		}
		rec.Extra[h] = row[i]
	}
	return rec
}
