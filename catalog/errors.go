package catalog

import "fmt"

// APIError is returned when the validation service responds with a non-2xx
// status. The message names the request that failed so callers can tell which
// of several catalog calls went wrong.
type APIError struct {
	StatusCode int
	Method     string
	URL        string
	Body       string
}

func (e APIError) Error() string {
	msg := fmt.Sprintf("validation service returned error %d for %s %s", e.StatusCode, e.Method, e.URL)
	if e.Body != "" {
		msg += " (" + e.Body + ")"
	}
	return msg
}

// IdentificationError means no valid combination of identifiers was supplied
// to locate a catalog record.
type IdentificationError struct {
	Kind string // e.g. "model", "test instance"
	Need string // description of an acceptable identifier combination
}

func (e IdentificationError) Error() string {
	return fmt.Sprintf("%s needs to be provided for finding a %s", e.Need, e.Kind)
}

// NotFoundError means the service had no record matching the supplied
// identifiers.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("no %s found for %q", e.Kind, e.ID)
}
