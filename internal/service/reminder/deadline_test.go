package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relokit/vault/internal/models"
)

func TestResolveDeadlineFormats(t *testing.T) {
	want := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2025-03-15", "15.03.2025", "15/03/2025"} {
		d, ok := ResolveDeadline(models.DocTypePassport, map[string]string{"expiry_date": raw})
		require.True(t, ok, "raw %q", raw)
		assert.Equal(t, want, d.Date, "raw %q", raw)
		assert.Equal(t, "expiry_date", d.SourceField)
	}
}

func TestResolveDeadlineDayFirst(t *testing.T) {
	// 03/04 is the 3rd of April, not March 4th.
	d, ok := ResolveDeadline(models.DocTypePassport, map[string]string{"expiry_date": "03/04/2025"})
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC), d.Date)
}

func TestResolveDeadlineFieldPriority(t *testing.T) {
	fields := map[string]string{
		"cancellation_deadline": "2025-06-01",
		"end_date":              "2025-12-31",
	}
	d, ok := ResolveDeadline(models.DocTypeRentalContract, fields)
	require.True(t, ok)
	assert.Equal(t, "cancellation_deadline", d.SourceField)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), d.Date)

	// Without the preferred field the next one wins.
	d, ok = ResolveDeadline(models.DocTypeRentalContract, map[string]string{"end_date": "2025-12-31"})
	require.True(t, ok)
	assert.Equal(t, "end_date", d.SourceField)
}

func TestResolveDeadlineInsurancePreference(t *testing.T) {
	fields := map[string]string{
		"renewal_date": "2025-09-01",
		"expiry_date":  "2026-09-01",
	}
	d, ok := ResolveDeadline(models.DocTypeInsurance, fields)
	require.True(t, ok)
	assert.Equal(t, "renewal_date", d.SourceField)
}

func TestResolveDeadlineNoDeadline(t *testing.T) {
	cases := []struct {
		name    string
		docType models.DocumentType
		fields  map[string]string
	}{
		{"unknown type", models.DocTypeOther, map[string]string{"expiry_date": "2025-03-15"}},
		{"field absent", models.DocTypePassport, map[string]string{"issue_date": "2020-01-01"}},
		{"field empty", models.DocTypePassport, map[string]string{"expiry_date": "  "}},
		{"unparseable", models.DocTypePassport, map[string]string{"expiry_date": "sometime soon"}},
		{"nil fields", models.DocTypePassport, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := ResolveDeadline(tc.docType, tc.fields)
			assert.False(t, ok)
		})
	}
}

func TestResolveDeadlineFallbackLayouts(t *testing.T) {
	d, ok := ResolveDeadline(models.DocTypePassport, map[string]string{"expiry_date": "2025-03-15T10:30:00Z"})
	require.True(t, ok)
	assert.Equal(t, 2025, d.Date.Year())
	assert.Equal(t, time.March, d.Date.Month())
	assert.Equal(t, 15, d.Date.Day())
}

func TestResolveDeadlineSelectionBeforeParsing(t *testing.T) {
	// Selection happens before parsing: a present but unparseable preferred
	// field means no deadline, it does not fall through to end_date.
	fields := map[string]string{
		"cancellation_deadline": "not a date",
		"end_date":              "2025-12-31",
	}
	_, ok := ResolveDeadline(models.DocTypeEmploymentContract, fields)
	assert.False(t, ok)

	// An absent preferred field does fall through.
	d, ok := ResolveDeadline(models.DocTypeEmploymentContract, map[string]string{"end_date": "2025-12-31"})
	require.True(t, ok)
	assert.Equal(t, "end_date", d.SourceField)
}
