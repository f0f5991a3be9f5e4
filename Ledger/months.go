package Ledger

import (
	"errors"
	"regexp"
	"time"
)

var (
	// ErrInvalidMonth is returned for month values that are not "YYYY-MM".
	ErrInvalidMonth = errors.New("month must be in YYYY-MM format")

	// ErrNotFound is returned when the target of an operation does not exist.
	ErrNotFound = errors.New("record not found")
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ParseMonth validates a "YYYY-MM" string and returns the first day of that
// month in UTC.
func ParseMonth(month string) (time.Time, error) {
	if !monthPattern.MatchString(month) {
		return time.Time{}, ErrInvalidMonth
	}
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, ErrInvalidMonth
	}
	return t, nil
}

// NormalizeMonth accepts either "YYYY-MM" or a full "YYYY-MM-DD" date and
// returns the canonical "YYYY-MM" form. Payment rows are always keyed on the
// canonical form regardless of what the caller sent.
func NormalizeMonth(month string) (string, error) {
	if len(month) >= 7 {
		month = month[:7]
	}
	if _, err := ParseMonth(month); err != nil {
		return "", err
	}
	return month, nil
}

// PrevMonth returns the month preceding a valid "YYYY-MM" month, rolling
// January back to December of the previous year.
func PrevMonth(month string) (string, error) {
	t, err := ParseMonth(month)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, -1, 0).Format("2006-01"), nil
}

// MonthInterval returns the half-open [start, end) date range covering a
// month, suitable for range queries on transaction dates.
func MonthInterval(month string) (time.Time, time.Time, error) {
	start, err := ParseMonth(month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0), nil
}
