package cmd

import (
	"path/filepath"
	"testing"
	"time"

	"sheetsite/catalog"
	"sheetsite/loader"
	"sheetsite/storage"
)

func TestDetectExportFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"./items.csv":      "csv",
		"./items.XLSX":     "excel",
		"./items.xlsm":     "excel",
		"./catalog.db":     "sqlite",
		"./catalog.sqlite": "sqlite",
		"./items.out":      "csv",
		"./items":          "csv",
	}
	for path, want := range tests {
		if got := detectExportFormat(path); got != want {
			t.Fatalf("%s: expected %q, got %q", path, want, got)
		}
	}
}

func TestExportSnapshotWritesPage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.db")
	data := loader.PageData{
		Items: []catalog.Item{
			{"name": "Panel", "description": "Steel", "imageurl": "https://img/p.jpg"},
			{"name": "Base", "description": "Concrete", "imageurl": "https://img/b.jpg"},
		},
		CategoryInfo: catalog.CategoryInfo{Title: "Temporary Fencing", ShowPrices: true},
	}

	count, err := exportSnapshot(path, "services/fencing", data, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("export snapshot: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 items written, got %d", count)
	}

	store, err := storage.OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer store.Close()

	items, err := store.ListItems("services/fencing")
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 2 || items[1].Name() != "Base" {
		t.Fatalf("unexpected stored items: %v", items)
	}
}
