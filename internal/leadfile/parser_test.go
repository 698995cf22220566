package leadfile

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParse_RejectsUnsupportedExtension(t *testing.T) {
	for _, name := range []string{"leads.txt", "leads.json", "leads", "leads.csv.pdf"} {
		_, err := Parse(name, []byte("FirstName,Phone,Notes\n"))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Parse(%q): expected ErrUnsupportedFormat, got %v", name, err)
		}
	}
}

func TestParse_ExtensionIsCaseInsensitive(t *testing.T) {
	recs, err := Parse("LEADS.CSV", []byte("FirstName,Phone,Notes\nAna,123,hello\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
}

func TestParse_CSV_HappyPath_PreservesOrderAndText(t *testing.T) {
	csv := "FirstName,Phone,Notes\n" +
		"Ana,00123456789,first\n" +
		"Bo,99887766,second\n" +
		"Cy,12345,third\n"
	recs, err := Parse("leads.csv", []byte(csv))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	// Row order is preserved and numeric-looking phones stay verbatim text
	// (leading zeros intact).
	if recs[0].FirstName != "Ana" || recs[0].Phone != "00123456789" || recs[0].Notes != "first" {
		t.Fatalf("row 0 mismatch: %+v", recs[0])
	}
	if recs[2].FirstName != "Cy" || recs[2].Notes != "third" {
		t.Fatalf("row 2 mismatch: %+v", recs[2])
	}
}

func TestParse_CSV_ExtraColumnsArePassThrough(t *testing.T) {
	csv := "City,FirstName,Phone,Notes,Source\n" +
		"Athens,Ana,123,hi,web\n"
	recs, err := Parse("leads.csv", []byte(csv))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r := recs[0]
	if r.FirstName != "Ana" || r.Phone != "123" || r.Notes != "hi" {
		t.Fatalf("contract fields mismatch: %+v", r)
	}
	if r.Extra["City"] != "Athens" || r.Extra["Source"] != "web" {
		t.Fatalf("extra columns not carried: %+v", r.Extra)
	}
	if _, ok := r.Extra["FirstName"]; ok {
		t.Fatalf("contract column duplicated into Extra")
	}
}

func TestParse_CSV_MissingColumns(t *testing.T) {
	csv := "FirstName,Telephone\nAna,123\n"
	_, err := Parse("leads.csv", []byte(csv))

	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if len(se.Missing) != 2 { // Notes and Phone
		t.Fatalf("missing = %v; want [Notes Phone]", se.Missing)
	}
	if se.Missing[0] != "Notes" || se.Missing[1] != "Phone" {
		t.Fatalf("missing = %v; want sorted [Notes Phone]", se.Missing)
	}
	if len(se.Headers) != 2 || se.Headers[0] != "FirstName" {
		t.Fatalf("headers = %v", se.Headers)
	}
}

func TestParse_CSV_HeaderOnlyIsZeroRows(t *testing.T) {
	recs, err := Parse("leads.csv", []byte("FirstName,Phone,Notes\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected 0 records, got %d", len(recs))
	}
}

func TestParse_CSV_EmptyFileIsUnparseable(t *testing.T) {
	_, err := Parse("leads.csv", nil)
	if !errors.Is(err, ErrUnparseable) {
		t.Fatalf("expected ErrUnparseable, got %v", err)
	}
}

func TestParse_CSV_RaggedRowsArePadded(t *testing.T) {
	csv := "FirstName,Phone,Notes\nAna,123\nBo,456,ok,overflow\n"
	recs, err := Parse("leads.csv", []byte(csv))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if recs[0].Notes != "" {
		t.Fatalf("short row not padded: %+v", recs[0])
	}
	if recs[1].Notes != "ok" {
		t.Fatalf("long row not truncated to header width: %+v", recs[1])
	}
}

func TestParse_CSV_UTF8BOMStripped(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("FirstName,Phone,Notes\nAna,1,n\n")...)
	recs, err := Parse("leads.csv", data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if recs[0].FirstName != "Ana" {
		t.Fatalf("BOM leaked into first header: %+v", recs[0])
	}
}

func TestParse_CSV_UTF16LE(t *testing.T) {
	text := "FirstName,Phone,Notes\nAna,1,n\n"
	data := []byte{0xFF, 0xFE}
	for _, r := range text {
		data = append(data, byte(r), 0x00) // ASCII subset of UTF-16LE
	}
	recs, err := Parse("leads.csv", data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 1 || recs[0].FirstName != "Ana" {
		t.Fatalf("utf-16le decode mismatch: %+v", recs)
	}
}

func TestParse_XLSX_RoundTrip(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"FirstName", "Phone", "Notes", "Region"},
		{"Ana", "00123", "call back", "north"},
		{"Bo", "456", "", "south"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	recs, err := Parse("leads.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].FirstName != "Ana" || recs[0].Phone != "00123" || recs[0].Extra["Region"] != "north" {
		t.Fatalf("row 0 mismatch: %+v", recs[0])
	}
	if recs[1].Notes != "" {
		t.Fatalf("blank spreadsheet cell should be empty text: %+v", recs[1])
	}
}

func TestParse_XLSX_CorruptBytes(t *testing.T) {
	_, err := Parse("leads.xlsx", []byte("this is not a zip archive"))
	if !errors.Is(err, ErrUnparseable) {
		t.Fatalf("expected ErrUnparseable, got %v", err)
	}
}

func TestSchemaError_MessageNamesBothSides(t *testing.T) {
	se := &SchemaError{Missing: []string{"Phone"}, Headers: []string{"FirstName", "Notes"}}
	msg := se.Error()
	for _, want := range []string{"FirstName, Phone, Notes", "Phone", "FirstName"} {
		if !contains(msg, want) {
			t.Fatalf("error message %q missing %q", msg, want)
		}
	}
}

func contains(s, sub string) bool { return bytes.Contains([]byte(s), []byte(sub)) }
