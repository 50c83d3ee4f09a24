package catalog

import (
	"sort"
	"strings"
)

// Field keys as they appear after header normalization.
const (
	FieldName         = "name"
	FieldDescription  = "description"
	FieldImageURL     = "imageurl"
	FieldImageAlt     = "imagealt"
	FieldPrice        = "price"
	FieldDetails      = "details"
	FieldBrand        = "brand"
	FieldModel        = "model"
	FieldFeatures     = "features"
	FieldAvailability = "availability"
	FieldContactInfo  = "contactinfo"
	FieldCategory     = "category"
	FieldPDF          = "pdf"

	FieldTitle       = "title"
	FieldContactCTA  = "contactcta"
	FieldShowPrices  = "showprices"
	FieldServiceType = "servicetype"
)

// KnownFields lists the catalog columns in display order.
var KnownFields = []string{
	FieldName,
	FieldDescription,
	FieldImageURL,
	FieldImageAlt,
	FieldPrice,
	FieldDetails,
	FieldBrand,
	FieldModel,
	FieldFeatures,
	FieldAvailability,
	FieldContactInfo,
	FieldCategory,
	FieldPDF,
}

var requiredFields = []string{FieldName, FieldDescription, FieldImageURL}

// trimmedFields are whitespace-trimmed during normalization; every other
// value is kept exactly as exported.
var trimmedFields = map[string]bool{
	FieldCategory: true,
	FieldImageURL: true,
	FieldPDF:      true,
}

// Item is one catalog row keyed by normalized header. Unknown columns are
// preserved as-is.
type Item map[string]string

func (i Item) Get(key string) string {
	return strings.TrimSpace(i[normalizeHeader(key)])
}

func (i Item) Name() string        { return i.Get(FieldName) }
func (i Item) Description() string { return i.Get(FieldDescription) }
func (i Item) ImageURL() string    { return i.Get(FieldImageURL) }

// ExtraFields returns the keys that are not part of KnownFields, sorted.
func (i Item) ExtraFields() []string {
	known := make(map[string]bool, len(KnownFields))
	for _, key := range KnownFields {
		known[key] = true
	}
	extra := make([]string, 0)
	for key := range i {
		if !known[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return extra
}

func (i Item) missingRequired() []string {
	missing := make([]string, 0, len(requiredFields))
	for _, key := range requiredFields {
		if i.Get(key) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// CategoryInfo describes one catalog section.
type CategoryInfo struct {
	ServiceType string `json:"serviceType,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ContactCTA  string `json:"contactCta"`
	ShowPrices  bool   `json:"showPrices"`
}

// DefaultInfo is the fallback used when no category row can be loaded.
// ShowPrices holds either a bool or the strings "true"/"false".
type DefaultInfo struct {
	Title       string
	Description string
	ContactCTA  string
	ShowPrices  any
}

func (d DefaultInfo) Resolve() CategoryInfo {
	return CategoryInfo{
		Title:       d.Title,
		Description: d.Description,
		ContactCTA:  d.ContactCTA,
		ShowPrices:  CoerceShowPrices(d.ShowPrices),
	}
}

// CoerceShowPrices passes booleans through and treats only the exact string
// "true" as true.
func CoerceShowPrices(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case *bool:
		return v != nil && *v
	case string:
		return v == "true"
	default:
		return false
	}
}

func categoryFromRecord(record Record) CategoryInfo {
	return CategoryInfo{
		ServiceType: record.Get(FieldServiceType),
		Title:       record.Get(FieldTitle),
		Description: record.Get(FieldDescription),
		ContactCTA:  record.Get(FieldContactCTA),
		ShowPrices:  CoerceShowPrices(record.Values[FieldShowPrices]),
	}
}
