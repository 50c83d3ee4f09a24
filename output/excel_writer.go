package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"sheetsite/catalog"
)

type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, items []catalog.Item) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	columns := Columns(items)

	for col, header := range columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, item := range items {
		row := i + 2
		for col, value := range rowValues(item, columns) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellStr(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}
