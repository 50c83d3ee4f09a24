package sheets

import (
	"net/url"
	"strings"
)

const DefaultBaseURL = "https://docs.google.com/spreadsheets/d"

// ExportURL builds the CSV export URL for one spreadsheet tab. An empty gid
// exports the first tab.
func ExportURL(baseURL, sheetID, gid string) (string, error) {
	sheetID = strings.TrimSpace(sheetID)
	if sheetID == "" {
		return "", &ConfigurationError{Field: "sheet id", Reason: "is required"}
	}

	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	query := url.Values{}
	query.Set("format", "csv")
	if gid = strings.TrimSpace(gid); gid != "" {
		query.Set("gid", gid)
	}

	return baseURL + "/" + url.PathEscape(sheetID) + "/export?" + query.Encode(), nil
}
