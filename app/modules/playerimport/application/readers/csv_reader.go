package readers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// CSVReader reads comma-delimited uploads. Quoted fields may contain the
// delimiter; the first record is the header row.
type CSVReader struct{}

// NewCSVReader creates a new CSV reader.
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

// Read parses CSV data into SheetData. Data rows are padded or truncated to
// the header column count so every cell index is valid downstream.
func (r *CSVReader) Read(data []byte) (*SheetData, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedContent, err)
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	headers := dedupeHeaders(records[0])
	if len(records) < 2 {
		return nil, ErrEmptyFile
	}

	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, fitToWidth(record, len(headers)))
	}

	return &SheetData{Headers: headers, Rows: rows}, nil
}

// fitToWidth pads or truncates a record to exactly width cells.
func fitToWidth(record []string, width int) []string {
	if len(record) == width {
		return record
	}
	fitted := make([]string, width)
	copy(fitted, record)
	return fitted
}
