package core

import "time"

const dateOnlyLayout = "2006-01-02"

var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// DateOnly normalizes raw to the lexicographically sortable YYYY-MM-DD form,
// or "" when it holds nothing parseable as a date.
func DateOnly(raw interface{}) string {
	s := CleanString(AsString(raw))
	if s == "" {
		return ""
	}
	if dateOnlyRegex.MatchString(s) {
		return s
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateOnlyLayout)
		}
	}
	return ""
}

// Today returns the local calendar date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(dateOnlyLayout)
}

// FormatDayMonth renders a date field as DD/MM for list rows. Unparseable
// values come back verbatim; blank ones as a placeholder dash.
func FormatDayMonth(raw interface{}) string {
	s := CleanString(AsString(raw))
	if s == "" {
		return "—"
	}
	d := DateOnly(s)
	if d == "" {
		return s
	}
	return d[8:10] + "/" + d[5:7]
}
