package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sheetsite/catalog"
	"sheetsite/config"
	"sheetsite/loader"
)

var (
	showPage     string
	showJSON     bool
	showSnapshot string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Load one page from its sheets and print it",
	Long: `Load one configured page exactly as the web server would and print the result.

The command exits with an error when the page's data sheet could not be loaded;
the degraded payload is still printed.

With --snapshot the page is read from a SQLite file written by "export --format sqlite"
instead of the live sheets.`,
	Example: `
  # Print a readable summary
  sheetsite show --page services/fencing

  # Print the JSON payload served at /api/pages/services/fencing
  sheetsite show --page services/fencing --json

  # Print the last stored snapshot of a page
  sheetsite show --page products/used --snapshot ./catalog.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		page, err := findConfiguredPage(cfg, showPage)
		if err != nil {
			return err
		}

		var data loader.PageData
		if strings.TrimSpace(showSnapshot) != "" {
			data, err = readSnapshot(showSnapshot, page.Key())
			if err != nil {
				return err
			}
		} else {
			data = newPageLoader(cfg).Load(cmd.Context(), page.PageConfig(os.LookupEnv))
		}

		out := cmd.OutOrStdout()
		if showJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(data); err != nil {
				return fmt.Errorf("encode page data: %w", err)
			}
		} else {
			writePageSummary(out, page.Key(), data)
		}

		if data.Error != "" {
			return fmt.Errorf("page %s: %s", page.Key(), data.Error)
		}
		return nil
	},
}

func writePageSummary(w io.Writer, key string, data loader.PageData) {
	info := data.CategoryInfo
	fmt.Fprintf(w, "Page: %s\n", key)
	fmt.Fprintf(w, "Title: %s\n", info.Title)
	if info.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", info.Description)
	}
	if info.ContactCTA != "" {
		fmt.Fprintf(w, "Contact: %s\n", info.ContactCTA)
	}
	fmt.Fprintf(w, "Show prices: %t\n", info.ShowPrices)
	fmt.Fprintf(w, "Items: %d\n", len(data.Items))
	for i, item := range data.Items {
		line := fmt.Sprintf("  %d. %s", i+1, item.Name())
		if price := item.Get(catalog.FieldPrice); info.ShowPrices && price != "" {
			line += " (" + price + ")"
		}
		fmt.Fprintln(w, line)
	}
	for _, warning := range data.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning.String())
	}
	if data.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", data.Error)
	}
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showPage, "page", "p", "", "Page to load, format section/service_type")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the JSON payload instead of a summary")
	showCmd.Flags().StringVar(&showSnapshot, "snapshot", "", "Read the page from a SQLite snapshot file instead of the sheets")

	_ = showCmd.MarkFlagRequired("page")
}
