package extractors

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestDetectFileTypeByExtension(t *testing.T) {
	cases := []struct {
		key  string
		want FileType
	}{
		{"docs/report.pdf", FileTypePDF},
		{"docs/Report.PDF", FileTypePDF},
		{"a/b/c.docx", FileTypeDocx},
		{"grades.xlsx", FileTypeXlsx},
		{"aacrao/ASIA/Japan.txt", FileTypeText},
		{"notes.md", FileTypeText},
	}
	for _, c := range cases {
		got, err := DetectFileType(c.key, nil)
		if err != nil {
			t.Fatalf("DetectFileType(%q): %v", c.key, err)
		}
		if got != c.want {
			t.Errorf("DetectFileType(%q) = %q, want %q", c.key, got, c.want)
		}
	}
}

func TestDetectFileTypeSniffsContent(t *testing.T) {
	got, err := DetectFileType("document", []byte("%PDF-1.7\n"))
	if err != nil {
		t.Fatalf("DetectFileType: %v", err)
	}
	if got != FileTypePDF {
		t.Errorf("got %q, want %q", got, FileTypePDF)
	}
}

func TestDetectFileTypeUnsupported(t *testing.T) {
	_, err := DetectFileType("archive.zip", []byte{0x50, 0x4b, 0x03, 0x04})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtractText(t *testing.T) {
	got, err := Extract([]byte("hello"), FileTypeText)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %q", got)
	}
}

func TestExtractXlsx(t *testing.T) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Countries")
	f.SetSheetRow("Countries", "A1", &[]string{"Country", "System"})
	f.SetSheetRow("Countries", "A2", &[]string{"Japan", "6-3-3"})
	f.SetSheetRow("Countries", "A3", &[]string{"France", "5-4-3"})
	f.NewSheet("Grading")
	f.SetSheetRow("Grading", "A1", &[]string{"Scale", "Pass"})
	f.SetSheetRow("Grading", "A2", &[]string{"0-20", "10"})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	got, err := Extract(buf.Bytes(), FileTypeXlsx)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for _, want := range []string{
		"Sheet: Countries",
		"Country: Japan | System: 6-3-3",
		"Country: France | System: 5-4-3",
		"Sheet: Grading",
		"Scale: 0-20 | Pass: 10",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestExtractXlsxShortRow(t *testing.T) {
	f := excelize.NewFile()
	f.SetSheetRow("Sheet1", "A1", &[]string{"A", "B", "C"})
	f.SetSheetRow("Sheet1", "A2", &[]string{"1"})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	got, err := Extract(buf.Bytes(), FileTypeXlsx)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(got, "A: 1 | B:  | C: ") {
		t.Errorf("missing cells not padded:\n%s", got)
	}
}
