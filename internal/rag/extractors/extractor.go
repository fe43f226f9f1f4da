package extractors

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FileType identifies a supported document format.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDocx FileType = "docx"
	FileTypeXlsx FileType = "xlsx"
	FileTypeText FileType = "text"
)

// ErrUnsupportedFormat is returned when a document cannot be mapped to a
// supported FileType. Callers skip such documents rather than failing the run.
var ErrUnsupportedFormat = errors.New("extractors: unsupported document format")

// DetectFileType resolves the format of an object from its key, falling back
// to content sniffing when the extension is missing or unknown.
func DetectFileType(key string, data []byte) (FileType, error) {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".pdf":
		return FileTypePDF, nil
	case ".docx":
		return FileTypeDocx, nil
	case ".xlsx":
		return FileTypeXlsx, nil
	case ".txt", ".md", ".markdown":
		return FileTypeText, nil
	}

	mt := mimetype.Detect(data)
	switch {
	case mt.Is("application/pdf"):
		return FileTypePDF, nil
	case mt.Is("application/vnd.openxmlformats-officedocument.wordprocessingml.document"):
		return FileTypeDocx, nil
	case mt.Is("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"):
		return FileTypeXlsx, nil
	case mt.Is("text/plain"):
		return FileTypeText, nil
	}
	return "", ErrUnsupportedFormat
}

// Extract converts raw document bytes to plain text.
func Extract(data []byte, ft FileType) (string, error) {
	switch ft {
	case FileTypePDF:
		return extractPDF(data)
	case FileTypeDocx:
		return extractDocx(data)
	case FileTypeXlsx:
		return extractXlsx(data)
	case FileTypeText:
		return string(data), nil
	}
	return "", ErrUnsupportedFormat
}
