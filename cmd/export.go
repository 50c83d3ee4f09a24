package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sheetsite/config"
	"sheetsite/loader"
	"sheetsite/output"
	"sheetsite/storage"
)

var (
	exportFormat string
	exportPage   string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the items of one page to CSV, Excel or SQLite",
	Long: `Load one configured page from its sheets and write the items to a file.

Formats:
- csv: one row per item, known fields first, extra sheet columns after
- excel: same layout in an .xlsx workbook
- sqlite: snapshot of category info and items, replacing any previous snapshot of the page;
  a failed load keeps the previous snapshot and only records the error

Output format can be selected explicitly via --format or inferred from --output extension.`,
	Example: `
  # Export items to CSV
  sheetsite export --page services/fencing --output ./fencing.csv

  # Export items to Excel
  sheetsite export --page products/parts --output ./parts.xlsx

  # Add a snapshot of a page to a SQLite file
  sheetsite export --page products/used --output ./catalog.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		page, err := findConfiguredPage(cfg, exportPage)
		if err != nil {
			return err
		}

		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		data := newPageLoader(cfg).Load(cmd.Context(), page.PageConfig(os.LookupEnv))

		if strings.EqualFold(strings.TrimSpace(format), "sqlite") {
			count, err := exportSnapshot(exportOutput, page.Key(), data, time.Now())
			if err != nil {
				return err
			}
			if data.Error != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Load failed; previous snapshot kept. Page: %s, File: %s\n", page.Key(), exportOutput)
				return fmt.Errorf("page %s: %s", page.Key(), data.Error)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot saved. Page: %s, Items: %d, File: %s\n", page.Key(), count, exportOutput)
			return nil
		}

		if data.Error != "" {
			return fmt.Errorf("page %s: %s", page.Key(), data.Error)
		}
		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}
		if err := writer.Write(exportOutput, data.Items); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Export completed. Page: %s, Items: %d, Format: %s, File: %s\n", page.Key(), len(data.Items), format, exportOutput)
		return nil
	},
}

func exportSnapshot(path, pageKey string, data loader.PageData, capturedAt time.Time) (int, error) {
	store, err := storage.OpenSQLite(path)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	return store.SaveSnapshot(pageKey, data, capturedAt)
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	case "db", "sqlite", "sqlite3":
		return "sqlite"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportPage, "page", "p", "", "Page to export, format section/service_type")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel|sqlite (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")

	_ = exportCmd.MarkFlagRequired("page")
	_ = exportCmd.MarkFlagRequired("output")
}
