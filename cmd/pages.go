package cmd

import (
	"fmt"
	"os"
	"strings"

	"sheetsite/config"
	"sheetsite/loader"
	"sheetsite/sheets"
)

func newPageLoader(cfg *config.Config) *loader.Loader {
	fetcher := sheets.NewFetcher(sheets.FetcherConfig{
		Timeout:   cfg.Sheets.Timeout,
		UserAgent: cfg.Sheets.UserAgent,
	})
	return loader.New(fetcher, cfg.LoaderOptions(os.LookupEnv), logger)
}

func findConfiguredPage(cfg *config.Config, key string) (config.Page, error) {
	if strings.TrimSpace(key) == "" {
		return config.Page{}, fmt.Errorf("--page is required (format: section/service_type)")
	}
	page, ok := cfg.FindPage(key)
	if !ok {
		return config.Page{}, fmt.Errorf("page %q is not configured (known: %s)", key, strings.Join(pageKeys(cfg.Pages), ", "))
	}
	return page, nil
}

func pageKeys(pages []config.Page) []string {
	keys := make([]string, 0, len(pages))
	for _, page := range pages {
		keys = append(keys, page.Key())
	}
	return keys
}
