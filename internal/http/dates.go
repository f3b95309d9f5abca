package http

import (
	"errors"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var errInvalidDate = errors.New("Le format de date attendu est AAAA-MM-JJ.")

// parseDate accepts calendar dates with or without a time component. An empty
// string yields the zero time so optional fields stay optional.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, errInvalidDate
}
