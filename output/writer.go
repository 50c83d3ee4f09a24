package output

import (
	"fmt"
	"sort"
	"strings"

	"sheetsite/catalog"
)

type Writer interface {
	Write(path string, items []catalog.Item) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

// Columns returns the known catalog fields followed by every extra field
// found in items, sorted.
func Columns(items []catalog.Item) []string {
	columns := append([]string(nil), catalog.KnownFields...)
	seen := make(map[string]bool)
	extras := make([]string, 0)
	for _, item := range items {
		for _, key := range item.ExtraFields() {
			if !seen[key] {
				seen[key] = true
				extras = append(extras, key)
			}
		}
	}
	sort.Strings(extras)
	return append(columns, extras...)
}

func rowValues(item catalog.Item, columns []string) []string {
	values := make([]string, len(columns))
	for i, column := range columns {
		values[i] = item[column]
	}
	return values
}
