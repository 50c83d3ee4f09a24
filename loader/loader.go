// Package loader assembles the data behind one catalog page: the category
// description from the shared info sheet and the item rows from the page's
// data sheet.
package loader

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"sheetsite/catalog"
	"sheetsite/sheets"
)

// Sheet identifies one spreadsheet tab.
type Sheet struct {
	ID  string
	GID string
}

type PageConfig struct {
	ServiceType string
	DataSheet   Sheet
	DefaultInfo catalog.DefaultInfo
}

type PageData struct {
	Items        []catalog.Item       `json:"items"`
	CategoryInfo catalog.CategoryInfo `json:"categoryInfo"`
	Warnings     []catalog.Warning    `json:"warnings,omitempty"`
	Error        string               `json:"error,omitempty"`
}

type Options struct {
	// BaseURL overrides sheets.DefaultBaseURL.
	BaseURL string
	// InfoSheet holds one category row per service type.
	InfoSheet Sheet
}

type Loader struct {
	fetcher   sheets.Fetcher
	baseURL   string
	infoSheet Sheet
	logger    *zap.Logger
}

func New(fetcher sheets.Fetcher, options Options, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		fetcher:   fetcher,
		baseURL:   options.BaseURL,
		infoSheet: options.InfoSheet,
		logger:    logger,
	}
}

// Load never fails. A missing category row falls back to cfg.DefaultInfo;
// a failed data sheet yields no items, the fallback info and an Error text.
// The two fetches run one after the other.
func (l *Loader) Load(ctx context.Context, cfg PageConfig) PageData {
	log := l.logger.With(zap.String("service_type", cfg.ServiceType))

	info, err := l.loadCategoryInfo(ctx, cfg.ServiceType)
	if err != nil {
		log.Warn("category info unavailable, using default", zap.Error(err))
		info = cfg.DefaultInfo.Resolve()
	}

	items, warnings, err := l.loadItems(ctx, cfg.DataSheet)
	if err != nil {
		log.Warn("loading page data failed", zap.Error(err))
		return PageData{
			Items:        []catalog.Item{},
			CategoryInfo: cfg.DefaultInfo.Resolve(),
			Error:        err.Error(),
		}
	}
	for _, warning := range warnings {
		log.Warn("incomplete catalog row",
			zap.Int("row", warning.Row),
			zap.Strings("missing", warning.Missing))
	}

	data := PageData{Items: items, CategoryInfo: info}
	if len(warnings) > 0 {
		data.Warnings = warnings
	}
	return data
}

func (l *Loader) loadCategoryInfo(ctx context.Context, serviceType string) (catalog.CategoryInfo, error) {
	text, err := l.fetchSheet(ctx, l.infoSheet)
	if err != nil {
		return catalog.CategoryInfo{}, fmt.Errorf("fetch category info: %w", err)
	}
	info, err := catalog.FindCategory(text, serviceType)
	if err != nil {
		return catalog.CategoryInfo{}, fmt.Errorf("read category info: %w", err)
	}
	return info, nil
}

func (l *Loader) loadItems(ctx context.Context, sheet Sheet) ([]catalog.Item, []catalog.Warning, error) {
	text, err := l.fetchSheet(ctx, sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch data sheet: %w", err)
	}
	items, warnings, err := catalog.ParseItems(text)
	if err != nil {
		return nil, nil, fmt.Errorf("read data sheet: %w", err)
	}
	return items, warnings, nil
}

func (l *Loader) fetchSheet(ctx context.Context, sheet Sheet) (string, error) {
	if l.fetcher == nil {
		return "", errors.New("no sheet fetcher configured")
	}
	url, err := sheets.ExportURL(l.baseURL, sheet.ID, sheet.GID)
	if err != nil {
		return "", err
	}
	return l.fetcher.Fetch(ctx, url)
}
