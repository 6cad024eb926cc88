package reminder

import (
	"strings"
	"time"

	"github.com/relokit/vault/internal/models"
)

// Deadline is the resolved consequential date for a classified document.
type Deadline struct {
	Date        time.Time `json:"deadlineDate"`
	SourceField string    `json:"sourceField"`
}

// deadlinePreference maps a document type to the ordered list of extracted
// field names that may carry its deadline. The first present, parseable
// value wins. Types not listed here have no deadline.
var deadlinePreference = map[models.DocumentType][]string{
	models.DocTypePassport:           {"expiry_date"},
	models.DocTypeResidencePermit:    {"expiry_date"},
	models.DocTypeRentalContract:     {"cancellation_deadline", "end_date"},
	models.DocTypeEmploymentContract: {"cancellation_deadline", "end_date"},
	models.DocTypeInsurance:          {"renewal_date", "expiry_date"},
}

// Date layouts tried in order. Slash and dot forms are day-first; a
// "15/03/2025" is March 15th, never MM/DD.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
}

// Last-resort layouts for values the extraction step emits with a time
// component or spelled-out month.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2 January 2006",
	"January 2, 2006",
}

// ResolveDeadline selects and parses the deadline field for the document
// type. Selection takes the first present non-empty value in preference
// order; parsing applies to that value only, so an unparseable preferred
// field does not fall through to the next one. Missing fields, empty values
// and unparseable dates all yield ok=false; this boundary never returns an
// error.
func ResolveDeadline(docType models.DocumentType, fields map[string]string) (Deadline, bool) {
	prefs, known := deadlinePreference[docType]
	if !known {
		return Deadline{}, false
	}
	for _, name := range prefs {
		raw := strings.TrimSpace(fields[name])
		if raw == "" {
			continue
		}
		date, ok := parseDate(raw)
		if !ok {
			return Deadline{}, false
		}
		return Deadline{Date: date, SourceField: name}, true
	}
	return Deadline{}, false
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, true
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
