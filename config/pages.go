package config

import (
	"os"
	"strings"

	"sheetsite/catalog"
	"sheetsite/loader"
)

// LookupFunc resolves an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Key identifies a page as "section/service_type".
func (p Page) Key() string {
	return PageKey(p.Section, p.ServiceType)
}

func PageKey(section, serviceType string) string {
	return strings.ToLower(strings.TrimSpace(section)) + "/" + strings.ToLower(strings.TrimSpace(serviceType))
}

// FindPage returns the page configured under key.
func (c Config) FindPage(key string) (Page, bool) {
	parts := strings.SplitN(key, "/", 2)
	if len(parts) != 2 {
		return Page{}, false
	}
	want := PageKey(parts[0], parts[1])
	for _, page := range c.Pages {
		if page.Key() == want {
			return page, true
		}
	}
	return Page{}, false
}

// Resolve turns the reference into concrete identifiers. A nil lookup uses
// the process environment.
func (r SheetRef) Resolve(lookup LookupFunc) loader.Sheet {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return loader.Sheet{
		ID:  resolveValue(r.SheetID, r.SheetIDEnv, lookup),
		GID: resolveValue(r.GID, r.GIDEnv, lookup),
	}
}

func (p Page) PageConfig(lookup LookupFunc) loader.PageConfig {
	return loader.PageConfig{
		ServiceType: strings.TrimSpace(p.ServiceType),
		DataSheet:   p.Data.Resolve(lookup),
		DefaultInfo: catalog.DefaultInfo{
			Title:       p.DefaultInfo.Title,
			Description: p.DefaultInfo.Description,
			ContactCTA:  p.DefaultInfo.ContactCTA,
			ShowPrices:  p.DefaultInfo.ShowPrices,
		},
	}
}

func (c Config) LoaderOptions(lookup LookupFunc) loader.Options {
	return loader.Options{
		BaseURL:   c.Sheets.BaseURL,
		InfoSheet: c.Sheets.Info.Resolve(lookup),
	}
}

func resolveValue(direct, envName string, lookup LookupFunc) string {
	if value := strings.TrimSpace(direct); value != "" {
		return value
	}
	envName = strings.TrimSpace(envName)
	if envName == "" {
		return ""
	}
	value, _ := lookup(envName)
	return strings.TrimSpace(value)
}
