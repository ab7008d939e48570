package readers

import "errors"

// SheetData is the format-neutral result of reading an upload: an ordered
// header row plus data rows whose cells are index-aligned to the headers.
// Downstream components only ever see strings; format-specific cell types
// never leak past this boundary.
type SheetData struct {
	Headers []string
	Rows    [][]string
}

// Reader converts an uploaded file into SheetData. Inputs arrive fully
// buffered; both parsers need random access.
type Reader interface {
	Read(data []byte) (*SheetData, error)
}

var (
	// ErrUnsupportedFormat is returned for file extensions no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptyFile is returned when a file parses cleanly but contains no
	// data rows.
	ErrEmptyFile = errors.New("file contains no data rows")

	// ErrMalformedContent is returned when a file with a supported extension
	// cannot be parsed.
	ErrMalformedContent = errors.New("file content could not be parsed")
)
