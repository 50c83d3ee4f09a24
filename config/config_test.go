package config

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"

	"sheetsite/loader"
)

func TestValidateYAMLContent_ExampleIsValid(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(ExampleYAML()))
	if err != nil {
		t.Fatalf("expected example config to validate: %v", err)
	}
	if len(cfg.Pages) != 7 {
		t.Fatalf("expected 7 pages, got %d", len(cfg.Pages))
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("unexpected port: %d", cfg.Server.Port)
	}
}

func TestExampleYAML_MatchesBuiltinDefaults(t *testing.T) {
	t.Parallel()

	fromExample, err := ValidateYAMLContent([]byte(ExampleYAML()))
	if err != nil {
		t.Fatalf("validate example: %v", err)
	}

	v := viper.New()
	setDefaults(v)
	fromDefaults, err := loadAndValidateFromViper(v)
	if err != nil {
		t.Fatalf("validate defaults: %v", err)
	}

	if diff := cmp.Diff(fromDefaults, fromExample); diff != "" {
		t.Fatalf("example config drifted from built-in defaults (-defaults +example):\n%s", diff)
	}
	if len(fromExample.Pages) != len(builtinPages) {
		t.Fatalf("expected %d pages, got %d", len(builtinPages), len(fromExample.Pages))
	}
}

func TestValidateYAMLContent_DefaultsApplyToEmptyFile(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte("log:\n  level: debug\n"))
	if err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
	if len(cfg.Pages) != len(builtinPages) {
		t.Fatalf("expected builtin pages, got %d", len(cfg.Pages))
	}
	if _, ok := cfg.FindPage("products/used"); !ok {
		t.Fatalf("expected builtin products/used page")
	}
}

func TestValidateYAMLContent_ParsesTimeoutAndBoolShowPrices(t *testing.T) {
	t.Parallel()

	content := []byte(`sheets:
  timeout: "15s"
pages:
  - section: "services"
    service_type: "fencing"
    data:
      sheet_id: "abc"
      gid: "12"
    default_info:
      title: "Temporary Fencing"
      show_prices: true
`)

	cfg, err := ValidateYAMLContent(content)
	if err != nil {
		t.Fatalf("expected config to validate: %v", err)
	}
	if cfg.Sheets.Timeout != 15*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.Sheets.Timeout)
	}
	if len(cfg.Pages) != 1 {
		t.Fatalf("expected explicit pages to replace defaults, got %d", len(cfg.Pages))
	}
	if got, ok := cfg.Pages[0].DefaultInfo.ShowPrices.(bool); !ok || !got {
		t.Fatalf("expected bool show_prices, got %#v", cfg.Pages[0].DefaultInfo.ShowPrices)
	}
}

func TestValidateYAMLContent_RejectsUnsupportedSection(t *testing.T) {
	t.Parallel()

	content := []byte(`pages:
  - section: "rentals"
    service_type: "fencing"
    data:
      sheet_id: "abc"
    default_info:
      title: "Fencing"
`)

	_, err := ValidateYAMLContent(content)
	if err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Fatalf("expected unsupported section error, got %v", err)
	}
}

func TestValidateYAMLContent_RejectsDuplicatePages(t *testing.T) {
	t.Parallel()

	content := []byte(`pages:
  - section: "services"
    service_type: "fencing"
    data:
      sheet_id: "a"
    default_info:
      title: "One"
  - section: "Services"
    service_type: " FENCING "
    data:
      sheet_id: "b"
    default_info:
      title: "Two"
`)

	_, err := ValidateYAMLContent(content)
	if err == nil || !strings.Contains(err.Error(), "duplicate page") {
		t.Fatalf("expected duplicate page error, got %v", err)
	}
}

func TestValidateYAMLContent_RejectsInvalidShowPrices(t *testing.T) {
	t.Parallel()

	content := []byte(`pages:
  - section: "products"
    service_type: "parts"
    data:
      sheet_id: "a"
    default_info:
      title: "Parts"
      show_prices: "sometimes"
`)

	_, err := ValidateYAMLContent(content)
	if err == nil || !strings.Contains(err.Error(), "show_prices") {
		t.Fatalf("expected show_prices error, got %v", err)
	}
}

func TestValidateYAMLContent_RejectsUpperCaseShowPricesString(t *testing.T) {
	t.Parallel()

	content := []byte(`pages:
  - section: "products"
    service_type: "parts"
    data:
      sheet_id: "a"
    default_info:
      title: "Parts"
      show_prices: "TRUE"
`)

	_, err := ValidateYAMLContent(content)
	if err == nil || !strings.Contains(err.Error(), "show_prices") {
		t.Fatalf("expected show_prices error for quoted TRUE, got %v", err)
	}
}

func TestValidateYAMLContent_RequiresDataSheet(t *testing.T) {
	t.Parallel()

	content := []byte(`pages:
  - section: "products"
    service_type: "parts"
    default_info:
      title: "Parts"
`)

	_, err := ValidateYAMLContent(content)
	if err == nil || !strings.Contains(err.Error(), "data.sheet_id") {
		t.Fatalf("expected data sheet error, got %v", err)
	}
}

func TestValidateYAMLContent_RejectsBadLogLevel(t *testing.T) {
	t.Parallel()

	if _, err := ValidateYAMLContent([]byte("log:\n  level: loud\n")); err == nil {
		t.Fatalf("expected validation error for log level")
	}
}

func TestSheetRef_ResolvePrefersDirectValues(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"FENCE_ID":  " env-id ",
		"FENCE_GID": "9",
	}
	lookup := func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}

	tests := []struct {
		name string
		ref  SheetRef
		want loader.Sheet
	}{
		{name: "env only", ref: SheetRef{SheetIDEnv: "FENCE_ID", GIDEnv: "FENCE_GID"}, want: loader.Sheet{ID: "env-id", GID: "9"}},
		{name: "direct wins", ref: SheetRef{SheetID: "direct", SheetIDEnv: "FENCE_ID"}, want: loader.Sheet{ID: "direct"}},
		{name: "missing env", ref: SheetRef{SheetIDEnv: "NOPE"}, want: loader.Sheet{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tc.want, tc.ref.Resolve(lookup)); diff != "" {
				t.Fatalf("unexpected sheet (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPage_PageConfig(t *testing.T) {
	t.Parallel()

	page := Page{
		Section:     "services",
		ServiceType: " fencing ",
		Data:        SheetRef{SheetID: "abc", GID: "1"},
		DefaultInfo: DefaultInfo{Title: "Temporary Fencing", ShowPrices: "true"},
	}

	got := page.PageConfig(func(string) (string, bool) { return "", false })
	if got.ServiceType != "fencing" {
		t.Fatalf("unexpected service type: %q", got.ServiceType)
	}
	if got.DataSheet != (loader.Sheet{ID: "abc", GID: "1"}) {
		t.Fatalf("unexpected data sheet: %+v", got.DataSheet)
	}
	if !got.DefaultInfo.Resolve().ShowPrices {
		t.Fatalf("expected default showPrices to coerce to true")
	}
}

func TestConfig_FindPage(t *testing.T) {
	t.Parallel()

	cfg := Config{Pages: []Page{{Section: "products", ServiceType: "parts"}}}
	if _, ok := cfg.FindPage("Products/Parts"); !ok {
		t.Fatalf("expected case-insensitive match")
	}
	if _, ok := cfg.FindPage("parts"); ok {
		t.Fatalf("expected malformed key to miss")
	}
}
