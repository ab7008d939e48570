package importservice

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/rosterhq/roster-import/app/modules/playerimport/application/readers"
	importdomain "github.com/rosterhq/roster-import/app/modules/playerimport/domain"
	"github.com/xuri/excelize/v2"
)

// Template is a downloadable starter file for uploads.
type Template struct {
	FileName    string
	ContentType string
	Data        []byte
}

// templateExampleRow is the single sample row shipped in templates.
var templateExampleRow = []string{"Jordan", "Smith", "2010-05-15", "F", "2028", "23", "101"}

// GenerateTemplate produces a template in the requested format, "csv" or
// "xlsx". An empty format defaults to CSV.
func (s *ImportService) GenerateTemplate(format string) (*Template, error) {
	headers := make([]string, 0, len(importdomain.AllFields))
	for _, field := range importdomain.AllFields {
		headers = append(headers, field.DisplayName())
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "csv":
		data, err := csvTemplate(headers)
		if err != nil {
			return nil, err
		}
		return &Template{
			FileName:    "player_import_template.csv",
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case "xlsx":
		data, err := xlsxTemplate(headers)
		if err != nil {
			return nil, err
		}
		return &Template{
			FileName:    "player_import_template.xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", readers.ErrUnsupportedFormat, format)
	}
}

func csvTemplate(headers []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write template headers: %w", err)
	}
	if err := w.Write(templateExampleRow); err != nil {
		return nil, fmt.Errorf("failed to write template example row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush template: %w", err)
	}
	return buf.Bytes(), nil
}

func xlsxTemplate(headers []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, value := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build template cell reference: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return nil, fmt.Errorf("failed to write template header: %w", err)
		}
	}
	for col, value := range templateExampleRow {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return nil, fmt.Errorf("failed to build template cell reference: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return nil, fmt.Errorf("failed to write template example row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize template workbook: %w", err)
	}
	return buf.Bytes(), nil
}
