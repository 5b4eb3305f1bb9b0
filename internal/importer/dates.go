package importer

import (
	"regexp"
	"strings"
	"time"
)

// spanishMonths maps Spanish three-letter abbreviations to English so the
// standard layout parser can handle them. English abbreviations that differ
// from Spanish are accepted as-is.
//
//nolint:gochecknoglobals // Read-only
var spanishMonths = map[string]string{
	"ene": "Jan", "feb": "Feb", "mar": "Mar", "abr": "Apr",
	"may": "May", "jun": "Jun", "jul": "Jul", "ago": "Aug",
	"sep": "Sep", "oct": "Oct", "nov": "Nov", "dic": "Dec",
}

//nolint:gochecknoglobals // Compiled once, read-only
var (
	monthDateRE = regexp.MustCompile(`(?i)(\d{1,2})\s+([a-záéíóú]{3})\w*\s+(\d{4})`)
	// dayFirstLayouts are tried in order for purely numeric dates. Rosters
	// come from day-first locales.
	dayFirstLayouts = []string{"02/01/2006", "2/1/2006", "02-01-2006", "2006-01-02"}
)

// ParseDate parses a roster date. It accepts "14 ago 2025" style month
// abbreviations in Spanish or English, plus day-first numeric forms and ISO
// dates.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if m := monthDateRE.FindStringSubmatch(raw); m != nil {
		if t, ok := parseMonthDate(m[1], m[2], m[3]); ok {
			return t, true
		}
	}

	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ScanDate finds the first "dd MMM yyyy" date anywhere in the row, used as a
// fallback when the date column itself came up empty.
func ScanDate(cells []string) (time.Time, bool) {
	for _, cell := range cells {
		if m := monthDateRE.FindStringSubmatch(cell); m != nil {
			if t, ok := parseMonthDate(m[1], m[2], m[3]); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func parseMonthDate(day, month, year string) (time.Time, bool) {
	abbr := strings.ToLower(month)
	abbr = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u").Replace(abbr)

	eng, ok := spanishMonths[abbr]
	if !ok {
		// Already an English abbreviation ("jan", "apr", "aug", "dec").
		if len(abbr) != 3 {
			return time.Time{}, false
		}
		eng = strings.ToUpper(abbr[:1]) + abbr[1:]
	}

	t, err := time.Parse("2 Jan 2006", day+" "+eng+" "+year)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
