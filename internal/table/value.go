package table

import (
	"strconv"
	"strings"
	"time"
)

// Value is a single cell of a raw table. Cells arrive as untyped strings;
// numeric and timestamp interpretation happens lazily through the accessor
// methods, except for columns recognized as date columns at load time,
// which carry a pre-parsed timestamp.
type Value struct {
	Raw    string
	Parsed *time.Time
}

// IsNull reports whether the cell is empty or whitespace.
func (v Value) IsNull() bool {
	return strings.TrimSpace(v.Raw) == "" && v.Parsed == nil
}

// String returns the raw cell text, trimmed.
func (v Value) String() string {
	return strings.TrimSpace(v.Raw)
}

// Float coerces the cell to a number. Callers treat an error as
// "excluded from the statistic", never as fatal.
func (v Value) Float() (float64, error) {
	s := strings.TrimSpace(v.Raw)
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

// Time returns the cell as a timestamp. Columns coerced at load time win;
// otherwise the raw text is parsed against the known layouts.
func (v Value) Time() (time.Time, bool) {
	if v.Parsed != nil {
		return *v.Parsed, true
	}
	return ParseTimestamp(v.Raw)
}

// timestampLayouts covers the formats seen in operations exports.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseTimestamp parses a cell against the known timestamp layouts.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
