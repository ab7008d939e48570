package readers

import (
	"fmt"
	"strings"
)

// dedupeHeaders trims header cells, names empty ones by position, and
// suffixes repeats so every header is unique.
func dedupeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int, len(raw))

	for i, cell := range raw {
		name := strings.TrimSpace(cell)
		if name == "" {
			name = fmt.Sprintf("Column%d", i+1)
		}

		key := strings.ToLower(name)
		if count := seen[key]; count > 0 {
			name = fmt.Sprintf("%s_%d", name, count+1)
		}
		seen[key]++

		headers[i] = name
	}
	return headers
}
