package source

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// dateFormats is the parse attempt order: day-first, then month-first, then
// locale-default fallbacks. First successful parse wins, so an ambiguous date
// like 03/04/2024 always resolves as dd/mm/yyyy; input sources using the
// month-first convention must say so.
var dateFormats = []string{
	"02/01/2006",
	"01/02/2006",
	"2006-01-02",
	"02-01-2006",
}

const canonicalDate = "02/01/2006"

// NormalizeDate converts a date string to canonical dd/mm/yyyy form.
// Idempotent on already-canonical input.
func NormalizeDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(canonicalDate), nil
}

// ParseDate parses a date string using the format attempt ladder.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("source: unparseable date %q", s)
}
