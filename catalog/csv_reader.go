package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

type table struct {
	headers []string
	records []Record
}

func (t table) hasColumn(key string) bool {
	for _, header := range t.headers {
		if header == key {
			return true
		}
	}
	return false
}

// readTable splits text into a normalized header row and data records.
// Columns with an empty header are dropped; blank rows are skipped.
func readTable(text string) (table, error) {
	text = strings.TrimPrefix(text, "\ufeff")

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return table{}, &ParseError{Err: errors.New("missing header row")}
	}
	if err != nil {
		return table{}, &ParseError{Err: fmt.Errorf("read header: %w", err)}
	}

	normalizedHeaders, err := normalizeHeaders(headers)
	if err != nil {
		return table{}, err
	}

	records := make([]Record, 0, 64)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return table{}, &ParseError{Err: err}
		}
		if isBlankRow(row) {
			continue
		}
		line, _ := reader.FieldPos(0)

		values := make(map[string]string, len(normalizedHeaders))
		for i, key := range normalizedHeaders {
			if key == "" {
				continue
			}
			if i < len(row) {
				values[key] = row[i]
			} else {
				values[key] = ""
			}
		}

		records = append(records, Record{RowNumber: line, Values: values})
	}

	return table{headers: normalizedHeaders, records: records}, nil
}

func normalizeHeaders(headers []string) ([]string, error) {
	normalized := make([]string, len(headers))
	seen := make(map[string]int, len(headers))
	for i, header := range headers {
		key := normalizeHeader(header)
		if key == "" {
			continue
		}
		if first, exists := seen[key]; exists {
			return nil, &ParseError{
				Row: 1,
				Err: fmt.Errorf("columns %d and %d both normalize to header %q", first+1, i+1, key),
			}
		}
		seen[key] = i
		normalized[i] = key
	}
	return normalized, nil
}

func isBlankRow(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
