// Package dateutils translates bank-export date patterns into Go layouts and
// normalizes parsed dates to the statement's canonical form.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// CanonicalLayout is the day-month-year form every statement date is
// normalized to (e.g. "02-01-2024" for 2 January 2024).
const CanonicalLayout = "02-01-2006"

// patternReplacer maps the token patterns used by mapping descriptors
// (dd/MM/yyyy and friends) onto Go reference-time layouts. Longer tokens
// are listed first so "yyyy" wins over "yy".
var patternReplacer = strings.NewReplacer(
	"yyyy", "2006",
	"yy", "06",
	"MM", "01",
	"M", "1",
	"dd", "02",
	"d", "2",
	"HH", "15",
	"mm", "04",
	"ss", "05",
)

// fallbackLayouts are tried when a descriptor carries no usable date pattern.
var fallbackLayouts = []string{
	"02/01/2006",
	"01/02/2006",
	"2006-01-02",
	"02-01-2006",
	"02.01.2006",
	"2-Jan-2006",
}

var spaceRe = regexp.MustCompile(`\s+`)

// LayoutFromPattern converts a token pattern such as "dd/MM/yyyy" into the
// equivalent Go layout. An empty pattern yields an empty layout.
func LayoutFromPattern(pattern string) string {
	return patternReplacer.Replace(strings.TrimSpace(pattern))
}

// ParseWithPattern parses a date cell using the descriptor's token pattern.
// When the pattern is empty the common bank-export layouts are tried instead.
// The returned error signals "unparsable"; callers decide whether to degrade
// to the raw text.
func ParseWithPattern(value, pattern string) (time.Time, error) {
	cleaned := Clean(value)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date value")
	}

	if layout := LayoutFromPattern(pattern); layout != "" {
		t, err := time.Parse(layout, cleaned)
		if err != nil {
			return time.Time{}, fmt.Errorf("date %q does not match pattern %q: %w", value, pattern, err)
		}
		return t, nil
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", value)
}

// ToCanonical formats a date in the canonical day-month-year form.
func ToCanonical(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(CanonicalLayout)
}

// Clean trims a date cell and collapses runs of whitespace.
func Clean(dateStr string) string {
	return spaceRe.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}
