package catalog

import (
	"strings"
)

type Record struct {
	RowNumber int
	Values    map[string]string
}

func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		if value, ok := r.Values[normalizeHeader(key)]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func normalizeHeader(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

func joinFields(fields []string) string {
	return strings.Join(fields, ", ")
}
