package segment

import (
	"regexp"
	"strings"
	"time"
)

// DatePattern pairs an anchored timestamp pattern with the layouts used to
// parse the date it captures. The first capture group must hold the date.
type DatePattern struct {
	Name    string
	Regexp  *regexp.Regexp
	Layouts []string
}

// Layouts for the date shapes found in chat exports, in preference order.
const (
	layoutMonthDayLongYear  = "1/2/2006"   // %m/%d/%Y
	layoutMonthDayShortYear = "1/2/06"     // %m/%d/%y
	layoutISO               = "2006-01-02" // %Y-%m-%d
	layoutDottedLongYear    = "2.1.2006"   // %d.%m.%Y
	layoutDottedShortYear   = "2.1.06"     // %d.%m.%y
)

var slashLayouts = []string{layoutMonthDayLongYear, layoutMonthDayShortYear}

// DefaultPatterns is tried in order; stricter forms come first.
var DefaultPatterns = []DatePattern{
	{
		Name:    "slash-comma",
		Regexp:  regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4}),\s*\d{1,2}:\d{2}`),
		Layouts: slashLayouts,
	},
	{
		Name:    "slash",
		Regexp:  regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4})\s*\d{1,2}:\d{2}`),
		Layouts: slashLayouts,
	},
	{
		Name:    "iso",
		Regexp:  regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s*\d{2}:\d{2}`),
		Layouts: []string{layoutISO},
	},
	{
		Name:    "dotted",
		Regexp:  regexp.MustCompile(`^(\d{1,2}\.\d{1,2}\.\d{2,4}),\s*\d{1,2}:\d{2}`),
		Layouts: []string{layoutDottedLongYear, layoutDottedShortYear},
	},
	{
		Name:    "bracketed",
		Regexp:  regexp.MustCompile(`^\[(\d{1,2}/\d{1,2}/\d{2,4}),\s*\d{1,2}:\d{2}`),
		Layouts: slashLayouts,
	},
}

// ParseDate extracts the message date from the leading text of line using
// DefaultPatterns. It reports false when the line does not start a message.
func ParseDate(line string) (time.Time, bool) {
	return parseWith(DefaultPatterns, line)
}

func parseWith(patterns []DatePattern, line string) (time.Time, bool) {
	trimmed := strings.TrimSpace(line)
	for _, p := range patterns {
		m := p.Regexp.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		for _, layout := range p.Layouts {
			// Year zero parses in Go but is not a calendar year
			if t, err := time.Parse(layout, m[1]); err == nil && t.Year() != 0 {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
