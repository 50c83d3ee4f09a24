package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sheetsite/loader"
	"sheetsite/storage"
)

var snapshotsDBPath string

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List the pages stored in a SQLite snapshot file",
	Long: `List every page stored by "export --format sqlite" with its item count,
capture time and the error of the last failed load, if any.

Use "show --page section/service_type --snapshot file" to print one stored page.`,
	Example: `
  # List stored pages
  sheetsite snapshots --db ./catalog.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(snapshotsDBPath); err != nil {
			return fmt.Errorf("snapshot file %s: %w", snapshotsDBPath, err)
		}
		store, err := storage.OpenSQLite(snapshotsDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		pages, err := store.ListPages()
		if err != nil {
			return err
		}
		writeSnapshotList(cmd.OutOrStdout(), pages)
		return nil
	},
}

// readSnapshot rebuilds the payload of one stored page.
func readSnapshot(path, pageKey string) (loader.PageData, error) {
	if _, err := os.Stat(path); err != nil {
		return loader.PageData{}, fmt.Errorf("snapshot file %s: %w", path, err)
	}
	store, err := storage.OpenSQLite(path)
	if err != nil {
		return loader.PageData{}, err
	}
	defer store.Close()

	info, found, err := store.GetCategory(pageKey)
	if err != nil {
		return loader.PageData{}, err
	}
	if !found {
		return loader.PageData{}, fmt.Errorf("no snapshot of page %s in %s", pageKey, path)
	}
	items, err := store.ListItems(pageKey)
	if err != nil {
		return loader.PageData{}, err
	}
	return loader.PageData{Items: items, CategoryInfo: info}, nil
}

func writeSnapshotList(w io.Writer, pages []storage.PageSummary) {
	if len(pages) == 0 {
		fmt.Fprintln(w, "No pages stored.")
		return
	}
	for _, page := range pages {
		fmt.Fprintf(w, "%-28s items=%-4d captured=%s  %s\n", page.Key, page.ItemCount, page.CapturedAt.Local().Format(time.DateTime), page.Title)
		if page.LoadError != "" {
			fmt.Fprintf(w, "    last load failed: %s\n", page.LoadError)
		}
	}
}

func init() {
	rootCmd.AddCommand(snapshotsCmd)

	snapshotsCmd.Flags().StringVar(&snapshotsDBPath, "db", "", "SQLite snapshot file written by export --format sqlite")

	_ = snapshotsCmd.MarkFlagRequired("db")
}
