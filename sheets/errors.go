package sheets

import "fmt"

// ConfigurationError reports missing or invalid input detected before any I/O.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("sheet configuration: %s %s", e.Field, e.Reason)
}

// TransportError reports a network-level failure: DNS, refused connection,
// broken body stream, cancelled context.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch sheet %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FetchError reports a non-2xx HTTP response.
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch sheet %s: unexpected status %s", e.URL, e.Status)
}
