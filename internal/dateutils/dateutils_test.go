package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name        string
		dateStr     string
		expectedOk  bool
		expected    time.Time
		expectedFmt string
	}{
		{"ISO format", "2023-01-15", true, date(2023, time.January, 15), DateLayoutISO},
		{"European format", "15.01.2023", true, date(2023, time.January, 15), DateLayoutEuropean},
		{"US format", "01/15/2023", true, date(2023, time.January, 15), DateLayoutUS},
		{"Full timestamp", "2023-01-15 10:30:45", true, time.Date(2023, time.January, 15, 10, 30, 45, 0, time.UTC), DateLayoutFull},
		{"Year and month", "2026-03", true, date(2026, time.March, 1), DateLayoutMonth},
		{"Extra whitespace", "  2023-01-15 ", true, date(2023, time.January, 15), DateLayoutISO},
		{"Empty string", "", false, time.Time{}, ""},
		{"Invalid format", "not a date", false, time.Time{}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, format, err := ParseDate(tc.dateStr)

			if tc.expectedOk {
				require.NoError(t, err)
				assert.True(t, tc.expected.Equal(got), "got %s", got)
				assert.Equal(t, tc.expectedFmt, format)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseDateString(t *testing.T) {
	got, err := ParseDateString("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = ParseDateString("2026-10-16")
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.October, 16), got)

	_, err = ParseDateString("16th of never")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	d := date(2023, time.January, 15)

	assert.Equal(t, "2023-01-15", FormatDate(d, ""))
	assert.Equal(t, "15.01.2023", FormatDate(d, DateLayoutEuropean))
	assert.Equal(t, "2023-01", FormatDate(d, DateLayoutMonth))
	assert.Equal(t, "", FormatDate(time.Time{}, ""))
	assert.Equal(t, "2023-01-15", ToISODate(d))
}

func TestCleanDateString(t *testing.T) {
	assert.Equal(t, "Jan 2, 2006", CleanDateString("  Jan   2,\t2006 "))
}

func TestMonthBoundaries(t *testing.T) {
	assert.Equal(t, date(2024, time.February, 1), StartOfMonth(date(2024, time.February, 17)))
	assert.Equal(t, date(2024, time.February, 29), EndOfMonth(date(2024, time.February, 17)))
	assert.Equal(t, 28, DaysInMonth(date(2025, time.February, 3)))
	assert.Equal(t, 31, DaysInMonth(date(2025, time.December, 3)))
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{"same day next month", date(2026, time.March, 15), 1, date(2026, time.April, 15)},
		{"clamps to short month", date(2026, time.January, 31), 1, date(2026, time.February, 28)},
		{"clamps to leap day", date(2028, time.January, 31), 1, date(2028, time.February, 29)},
		{"crosses year", date(2026, time.November, 30), 3, date(2027, time.February, 28)},
		{"zero months", date(2026, time.May, 5), 0, date(2026, time.May, 5)},
		{"backwards", date(2026, time.March, 31), -1, date(2026, time.February, 28)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, AddMonths(tc.start, tc.months))
		})
	}
}

func TestDateForDueDay(t *testing.T) {
	tests := []struct {
		name     string
		month    time.Time
		dueDay   int
		expected time.Time
	}{
		{"regular day", date(2026, time.March, 1), 15, date(2026, time.March, 15)},
		{"clamped to february", date(2026, time.February, 1), 31, date(2026, time.February, 28)},
		{"thirty day month", date(2026, time.April, 10), 31, date(2026, time.April, 30)},
		{"unspecified keeps date", date(2026, time.April, 10), 0, date(2026, time.April, 10)},
		{"out of range keeps date", date(2026, time.April, 10), 40, date(2026, time.April, 10)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DateForDueDay(tc.month, tc.dueDay))
		})
	}
}
