// Package dates converts between the API's ISO 8601 timestamps and
// the plain YYYY-MM-DD strings the date editor works with.
package dates

import (
	"fmt"
	"time"
)

const inputLayout = "2006-01-02"

// FormatDateForInput reduces an ISO timestamp to its date part.
// Returns ok=false for unparseable input.
func FormatDateForInput(value string) (string, bool) {
	if value == "" {
		return "", false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", inputLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(inputLayout), true
		}
	}
	return "", false
}

// ConvertDateInputToISO expands a YYYY-MM-DD input to a midnight-UTC
// ISO timestamp, the format the API expects on date fields.
func ConvertDateInputToISO(value string) (string, error) {
	t, err := time.Parse(inputLayout, value)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z"), nil
}
