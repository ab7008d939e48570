package readers

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXReader reads workbook uploads. Only the first worksheet is consulted:
// row 1 is the header row, everything beneath is data.
type XLSXReader struct{}

// NewXLSXReader creates a new XLSX reader.
func NewXLSXReader() *XLSXReader {
	return &XLSXReader{}
}

// Read parses workbook data into SheetData.
func (r *XLSXReader) Read(data []byte) (*SheetData, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedContent, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformedContent)
	}

	sheetName := sheets[0]
	records, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrMalformedContent, sheetName, err)
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	headers := dedupeHeaders(records[0])
	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, fitToWidth(record, len(headers)))
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	return &SheetData{Headers: headers, Rows: rows}, nil
}
