package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"finance-tracker-backend/internal/models"
)

var (
	isoDatePattern   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	slashDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// fallbackDateLayouts are tried in order when the input matches none of the
// fixed shapes.
var fallbackDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Mon Jan 2 2006",
}

func init() {
	models.DateParser = ParseDate
}

// NormalizeDate converts raw into the canonical MM/DD/YYYY form.
//
// ISO dates are reordered field by field without calendar validation. A
// slash date whose first field exceeds 12 is read as day-first and swapped;
// any other slash date is assumed month-first and returned unchanged, so
// "3/7/2024" stays unpadded. Everything else goes through the fallback
// layouts. ok is false for empty or unparseable input.
func NormalizeDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	if m := isoDatePattern.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%s/%s/%s", m[2], m[3], m[1]), true
	}

	if m := slashDatePattern.FindStringSubmatch(s); m != nil {
		first, _ := strconv.Atoi(m[1])
		if first > 12 {
			second, _ := strconv.Atoi(m[2])
			return fmt.Sprintf("%02d/%02d/%s", second, first, m[3]), true
		}
		return s, true
	}

	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(models.DateLayout), true
		}
	}
	return "", false
}

// ParseCanonicalDate turns a NormalizeDate result into a calendar date.
// Unpadded month and day are accepted.
func ParseCanonicalDate(s string) (time.Time, error) {
	t, err := time.Parse("1/2/2006", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// ParseDate normalizes then parses raw.
func ParseDate(raw string) (time.Time, error) {
	canonical, ok := NormalizeDate(raw)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	return ParseCanonicalDate(canonical)
}
