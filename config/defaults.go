package config

import (
	"fmt"
	"strings"
)

const (
	defaultBaseURL        = "https://docs.google.com/spreadsheets/d"
	defaultTimeout        = "0s"
	defaultUserAgent      = "sheetsite/1.0"
	defaultInfoSheetIDEnv = "SERVICES_INFO_SHEET_ID"
	defaultInfoGIDEnv     = "SERVICES_INFO_SHEET_GID"
	defaultPort           = 8080
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
)

type defaultPage struct {
	section     string
	serviceType string
	envPrefix   string
	title       string
	description string
	contactCTA  string
	showPrices  string
}

var builtinPages = []defaultPage{
	{SectionServices, "fencing", "TEMPORARY_FENCING", "Temporary Fencing", "Secure your site with our durable temporary fencing solutions.", "Request a quote today", "true"},
	{SectionServices, "generators", "GENERATORS_POWER", "Generators and Power Solutions", "Reliable power solutions for any job site or emergency situation.", "Request a quote today", "true"},
	{SectionServices, "project-site", "PROJECT_SITE_SERVICES", "Project Site Services", "Comprehensive services for managing and supporting your project sites", "Contact us to discuss your project site needs", "false"},
	{SectionProducts, "construction", "CONSTRUCTION_PRODUCTS", "Construction Products", "High-quality construction equipment for professionals", "Contact us for more information", "true"},
	{SectionProducts, "parts", "PARTS", "Parts and Miscellaneous", "Quality parts and accessories for all your equipment needs", "Contact us for parts availability", "true"},
	{SectionProducts, "trucks", "TRUCK_EQUIPMENT", "Truck Equipment", "High-quality truck equipment for transportation and logistics", "Contact us for more information", "true"},
	{SectionProducts, "used", "USED_EQUIPMENT", "Used Equipment", "Quality pre-owned construction equipment at competitive prices.", "Contact us to check availability", "true"},
}

func defaultPages() []map[string]any {
	pages := make([]map[string]any, 0, len(builtinPages))
	for _, page := range builtinPages {
		pages = append(pages, map[string]any{
			"section":      page.section,
			"service_type": page.serviceType,
			"data": map[string]any{
				"sheet_id_env": page.envPrefix + "_SHEET_ID",
				"gid_env":      page.envPrefix + "_SHEET_GID",
			},
			"default_info": map[string]any{
				"title":       page.title,
				"description": page.description,
				"contact_cta": page.contactCTA,
				"show_prices": page.showPrices,
			},
		})
	}
	return pages
}

// ExampleYAML returns the default configuration template. The page table
// is rendered from the built-in pages.
func ExampleYAML() string {
	var b strings.Builder
	fmt.Fprintf(&b, `# sheetsite configuration
sheets:
  base_url: %q
  timeout: %q
  user_agent: %q
  info:
    sheet_id_env: %q
    gid_env: %q

server:
  port: %d

log:
  level: %q
  format: %q

pages:
`, defaultBaseURL, defaultTimeout, defaultUserAgent, defaultInfoSheetIDEnv, defaultInfoGIDEnv, defaultPort, defaultLogLevel, defaultLogFormat)

	for _, page := range builtinPages {
		fmt.Fprintf(&b, `  - section: %q
    service_type: %q
    data:
      sheet_id_env: %q
      gid_env: %q
    default_info:
      title: %q
      description: %q
      contact_cta: %q
      show_prices: %q
`, page.section, page.serviceType, page.envPrefix+"_SHEET_ID", page.envPrefix+"_SHEET_GID",
			page.title, page.description, page.contactCTA, page.showPrices)
	}
	return b.String()
}
