package inference

import (
	"strings"
	"time"
)

// lenientLayouts are tried in order for mixed-format date-time recognition.
// The bare "2006" year-only layout is deliberately included and tried
// before any numeric-string check elsewhere in the decision tree: a string
// like "2024" is a single-field date under lenient parsing, per spec §4.1.
var lenientLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"2006",
}

// parseLenientDateTime tries every layout in lenientLayouts and returns the
// first successful parse.
func parseLenientDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range lenientLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// allParseAsDateTime reports whether every value parses, returning the
// parsed timestamps in order.
func allParseAsDateTime(values []string) ([]time.Time, bool) {
	out := make([]time.Time, 0, len(values))
	for _, v := range values {
		t, ok := parseLenientDateTime(v)
		if !ok {
			return nil, false
		}
		out = append(out, t)
	}
	return out, true
}
