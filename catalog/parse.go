package catalog

import (
	"fmt"
	"strings"
)

type Mode int

const (
	// ModeItems returns every data row as an Item.
	ModeItems Mode = iota
	// ModeSingleCategory returns the first data row as a CategoryInfo.
	ModeSingleCategory
)

func (m Mode) String() string {
	switch m {
	case ModeItems:
		return "items"
	case ModeSingleCategory:
		return "single-category"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Result holds Items and Warnings for ModeItems, Category for
// ModeSingleCategory.
type Result struct {
	Items    []Item
	Warnings []Warning
	Category CategoryInfo
}

// Parse normalizes CSV export text. Identical text always yields an
// identical Result.
func Parse(text string, mode Mode) (Result, error) {
	t, err := readTable(text)
	if err != nil {
		return Result{}, err
	}

	switch mode {
	case ModeItems:
		items, warnings := itemsFromRecords(t.records)
		return Result{Items: items, Warnings: warnings}, nil
	case ModeSingleCategory:
		if len(t.records) == 0 {
			return Result{}, &NotFoundError{}
		}
		return Result{Category: categoryFromRecord(t.records[0])}, nil
	default:
		return Result{}, fmt.Errorf("unsupported parse mode %s", mode)
	}
}

func ParseItems(text string) ([]Item, []Warning, error) {
	result, err := Parse(text, ModeItems)
	if err != nil {
		return nil, nil, err
	}
	return result.Items, result.Warnings, nil
}

func ParseCategory(text string) (CategoryInfo, error) {
	result, err := Parse(text, ModeSingleCategory)
	if err != nil {
		return CategoryInfo{}, err
	}
	return result.Category, nil
}

// FindCategory selects the row whose servicetype column matches serviceType,
// ignoring case and surrounding space. Sheets without a servicetype column
// hold a single category and resolve to their first row.
func FindCategory(text string, serviceType string) (CategoryInfo, error) {
	t, err := readTable(text)
	if err != nil {
		return CategoryInfo{}, err
	}

	if !t.hasColumn(FieldServiceType) {
		if len(t.records) == 0 {
			return CategoryInfo{}, &NotFoundError{ServiceType: serviceType}
		}
		return categoryFromRecord(t.records[0]), nil
	}

	want := strings.TrimSpace(serviceType)
	for _, record := range t.records {
		if strings.EqualFold(record.Get(FieldServiceType), want) {
			return categoryFromRecord(record), nil
		}
	}
	return CategoryInfo{}, &NotFoundError{ServiceType: serviceType}
}

func itemsFromRecords(records []Record) ([]Item, []Warning) {
	items := make([]Item, 0, len(records))
	warnings := make([]Warning, 0)
	for _, record := range records {
		item := make(Item, len(record.Values))
		for key, value := range record.Values {
			if trimmedFields[key] {
				value = strings.TrimSpace(value)
			}
			item[key] = value
		}

		if missing := item.missingRequired(); len(missing) > 0 {
			warnings = append(warnings, Warning{Row: record.RowNumber, Missing: missing})
		}
		items = append(items, item)
	}
	return items, warnings
}
