package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"sheetsite/catalog"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, items []catalog.Item) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	columns := Columns(items)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, item := range items {
		if err := writer.Write(rowValues(item, columns)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
