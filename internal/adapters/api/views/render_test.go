package views

import (
	"bytes"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplates_success(t *testing.T) {
	tmpl, err := LoadTemplates()
	require.NoError(t, err)

	for _, page := range []string{HomePage, ResultsPage, ComparisonPage, ErrorPage} {
		assert.NotNil(t, tmpl.Lookup(page), page)
	}
}

func TestLoadTemplates_failure_sub(t *testing.T) {
	// Empty FS has no pages to parse.
	_, err := loadTemplatesFromFS(fstest.MapFS{}, "templates")
	assert.Error(t, err)
}

func TestLoadTemplates_failure_parse(t *testing.T) {
	badFS := fstest.MapFS{
		"templates/home.html":            {Data: []byte("{{ .")},
		"templates/partials/layout.html": {Data: []byte("")},
	}
	_, err := loadTemplatesFromFS(badFS, "templates")
	assert.Error(t, err)
}

func TestRenderErrorPage(t *testing.T) {
	tmpl, err := LoadTemplates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, ErrorPage, ErrorView{
		Status:    404,
		Title:     "City not found",
		Messages:  []string{"city2 (Atlantis): city not found"},
		RequestID: "req-1",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "City not found")
	assert.Contains(t, out, "city2 (Atlantis): city not found")
	assert.Contains(t, out, "req-1")
}

func TestFormatHelpers(t *testing.T) {
	ts := time.Date(2023, time.November, 15, 17, 13, 0, 0, time.FixedZone("EST", -5*3600))

	assert.Equal(t, "Wednesday, November 15, 2023", FormatDate(ts))
	assert.Equal(t, "5:13 PM EST", FormatTime(ts))
	assert.Equal(t, "2023-11-15", FormatISODate(ts))

	assert.Equal(t, "12 AM", FormatHour(0))
	assert.Equal(t, "4 AM", FormatHour(4))
	assert.Equal(t, "12 PM", FormatHour(12))
	assert.Equal(t, "5 PM", FormatHour(17))

	assert.Equal(t, "72.5", FormatReading(72.5))
	assert.Equal(t, "40", FormatReading(40))
	assert.Equal(t, "0", FormatReading(-0.001))
	assert.Equal(t, "5.1", FormatReading(5.1))

	assert.Equal(t, "Clear Sky", Title("clear sky"))
	assert.Equal(t, "Éclair", Title("éclair"))
	assert.Equal(t, "Ελαφριά Βροχή", Title("ελαφριά βροχή"))
	assert.Equal(t, "Heavy Intensity Rain", Title("HEAVY intensity rain"))
	assert.Equal(t, "", Title(""))
}
