package readers

import (
	"fmt"
	"strings"
)

// ForFile returns a reader for the given file name based on its extension.
func ForFile(fileName string) (Reader, error) {
	name := strings.ToLower(fileName)

	if strings.HasSuffix(name, ".csv") {
		return NewCSVReader(), nil
	}

	if strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xls") {
		return NewXLSXReader(), nil
	}

	return nil, fmt.Errorf("%w: %s (must be .csv or .xlsx)", ErrUnsupportedFormat, fileName)
}
