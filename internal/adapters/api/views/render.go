// Package views holds the server-rendered pages and the helpers they use.
package views

import (
	"html/template"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Page names as registered on the router
const (
	HomePage       = "home.html"
	ResultsPage    = "results.html"
	ComparisonPage = "comparison_results.html"
	ErrorPage      = "error.html"
)

// Funcs are the helpers available inside every page
func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatDate":    FormatDate,
		"formatTime":    FormatTime,
		"formatISODate": FormatISODate,
		"formatHour":    FormatHour,
		"formatReading": FormatReading,
		"title":         Title,
	}
}

// loadTemplatesFromFS parses pages and partials from dir inside fsys
func loadTemplatesFromFS(fsys fs.FS, dir string) (*template.Template, error) {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, err
	}
	return template.New("").Funcs(Funcs()).ParseFS(sub, "*.html", "partials/*.html")
}

// LoadTemplates loads the embedded pages. Call during startup; if it returns
// an error, do not start the server.
func LoadTemplates() (*template.Template, error) {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// FormatDate renders t like "Wednesday, November 15, 2023"
func FormatDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// FormatTime renders the clock time of t with its zone abbreviation
func FormatTime(t time.Time) string {
	return t.Format("3:04 PM MST")
}

// FormatISODate renders t as the value expected by <input type="date">
func FormatISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatHour renders an hour of day on a 12-hour clock
func FormatHour(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour < 12:
		return strconv.Itoa(hour) + " AM"
	case hour == 12:
		return "12 PM"
	default:
		return strconv.Itoa(hour-12) + " PM"
	}
}

// FormatReading trims trailing zeros from a measurement
func FormatReading(v float64) string {
	s := strings.TrimRight(strings.TrimRight(strconv.FormatFloat(v, 'f', 2, 64), "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// Title title-cases every word of s. A Caser keeps state, so one is built per call.
func Title(s string) string {
	return cases.Title(language.Und).String(s)
}

// ErrorView is what the error page shows
type ErrorView struct {
	Status    int
	Title     string
	Messages  []string
	RequestID string
}
