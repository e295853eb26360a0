// Package dateutils provides the calendar arithmetic used to date simulated
// payments and to parse user-supplied dates.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts accepted on input and used on output.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
	DateLayoutMonth    = "2006-01"
)

// CommonFormats is the list of formats ParseDate tries, in order.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutEuropean,
	DateLayoutFull,
	DateLayoutISO + "T15:04:05Z07:00",
	DateLayoutMonth,
	DateLayoutUS,
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

var whitespace = regexp.MustCompile(`\s+`)

// ParseDate parses a date string using the first matching common format.
// Returns the parsed time and the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseDateString is ParseDate without the layout. An empty string yields the
// zero time and no error, which callers treat as "not set".
func ParseDateString(dateStr string) (time.Time, error) {
	if strings.TrimSpace(dateStr) == "" {
		return time.Time{}, nil
	}
	t, _, err := ParseDate(dateStr)
	return t, err
}

// FormatDate formats a date with layout, or ISO when layout is empty.
// The zero time formats as an empty string.
func FormatDate(date time.Time, layout string) string {
	if date.IsZero() {
		return ""
	}
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return FormatDate(date, DateLayoutISO)
}

// CleanDateString trims and collapses whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// DaysInMonth returns the number of days of the month containing date.
func DaysInMonth(date time.Time) int {
	return EndOfMonth(date).Day()
}

// AddMonths moves date by n calendar months, clamping the day to the length
// of the target month (Jan 31 + 1 month is Feb 28 or 29). time.AddDate would
// normalize into the following month instead.
func AddMonths(date time.Time, n int) time.Time {
	first := StartOfMonth(date).AddDate(0, n, 0)
	day := min(date.Day(), DaysInMonth(first))
	return time.Date(first.Year(), first.Month(), day,
		date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

// DateForDueDay returns the date in the month of date falling on dueDay,
// clamped to the month length. A dueDay outside 1..31 keeps the day of date.
func DateForDueDay(date time.Time, dueDay int) time.Time {
	if dueDay < 1 || dueDay > 31 {
		return date
	}
	day := min(dueDay, DaysInMonth(date))
	return time.Date(date.Year(), date.Month(), day, 0, 0, 0, 0, date.Location())
}
