package catalog

import "fmt"

// ParseError reports CSV text that cannot be turned into records.
// Row is the 1-based line in the source text, 0 when unknown.
type ParseError struct {
	Row int
	Err error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("parse csv line %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("parse csv: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a missing category row.
type NotFoundError struct {
	ServiceType string
}

func (e *NotFoundError) Error() string {
	if e.ServiceType == "" {
		return "category info not found: sheet has no data rows"
	}
	return fmt.Sprintf("category info not found for service type %q", e.ServiceType)
}

// Warning flags a row that was kept despite missing required fields.
type Warning struct {
	Row     int      `json:"row"`
	Missing []string `json:"missing"`
}

func (w Warning) String() string {
	return fmt.Sprintf("row %d is missing required fields: %s", w.Row, joinFields(w.Missing))
}
