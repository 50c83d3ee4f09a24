package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sheetsite/config"
	"sheetsite/loader"
	"sheetsite/web"
)

var checkConcurrency int

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load every configured page and report problems",
	Long: `Load all configured pages in parallel and print item counts, row warnings,
and load errors per page.

The command fails when at least one page could not load its data sheet.`,
	Example: `
  # Check all pages with the default concurrency
  sheetsite check

  # Check one page at a time
  sheetsite check --concurrency 1
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		results, err := checkPages(cmd.Context(), newPageLoader(cfg), cfg.Pages, os.LookupEnv, checkConcurrency)
		if err != nil {
			return err
		}
		if failed := writeCheckReport(cmd.OutOrStdout(), results); failed > 0 {
			return fmt.Errorf("%d of %d pages failed to load", failed, len(results))
		}
		return nil
	},
}

type pageCheck struct {
	Key  string
	Data loader.PageData
}

// checkPages loads pages with at most limit loads in flight. Results keep the
// order of pages.
func checkPages(ctx context.Context, pageLoader web.PageLoader, pages []config.Page, lookup config.LookupFunc, limit int) ([]pageCheck, error) {
	if limit < 1 {
		limit = 1
	}

	results := make([]pageCheck, len(pages))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(limit)
	for i, page := range pages {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = pageCheck{
				Key:  page.Key(),
				Data: pageLoader.Load(groupCtx, page.PageConfig(lookup)),
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("check pages: %w", err)
	}
	return results, nil
}

// writeCheckReport prints one line per page plus its warnings and returns
// the number of failed pages.
func writeCheckReport(w io.Writer, results []pageCheck) int {
	failed := 0
	for _, result := range results {
		status := "ok"
		if result.Data.Error != "" {
			status = "FAILED"
			failed++
		}
		fmt.Fprintf(w, "%-28s %-6s items=%d warnings=%d\n", result.Key, status, len(result.Data.Items), len(result.Data.Warnings))
		for _, warning := range result.Data.Warnings {
			fmt.Fprintf(w, "    warning: %s\n", warning.String())
		}
		if result.Data.Error != "" {
			fmt.Fprintf(w, "    error: %s\n", result.Data.Error)
		}
	}
	fmt.Fprintf(w, "Checked %d pages, %d failed.\n", len(results), failed)
	return failed
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().IntVarP(&checkConcurrency, "concurrency", "c", 4, "Maximum number of pages loaded at the same time")
}
