package demand

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnknownMonth is returned when a month name or number is not a calendar month.
	ErrUnknownMonth = errors.New("unknown month")
	// ErrInvalidDay is returned when a day is outside 1..DaysIn(month).
	ErrInvalidDay = errors.New("invalid day of month")
)

// Months lists the calendar in canonical order.
var Months = [12]time.Month{
	time.January, time.February, time.March, time.April,
	time.May, time.June, time.July, time.August,
	time.September, time.October, time.November, time.December,
}

// DaysIn returns the number of days in month m.
func DaysIn(m time.Month, leap bool) (int, error) {
	switch m {
	case time.February:
		if leap {
			return 29, nil
		}
		return 28, nil
	case time.April, time.June, time.September, time.November:
		return 30, nil
	case time.January, time.March, time.May, time.July,
		time.August, time.October, time.December:
		return 31, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownMonth, int(m))
}

// DaysInYear is 365, or 366 in a leap year.
func DaysInYear(leap bool) int {
	if leap {
		return 366
	}
	return 365
}

// ParseMonth accepts a full English month name or its three letter
// abbreviation, case-insensitively.
func ParseMonth(name string) (time.Month, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, m := range Months {
		full := strings.ToLower(m.String())
		if n == full || (len(n) == 3 && strings.HasPrefix(full, n)) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMonth, name)
}

func checkDay(m time.Month, day int, leap bool) error {
	days, err := DaysIn(m, leap)
	if err != nil {
		return err
	}
	if day < 1 || day > days {
		return fmt.Errorf("%w: %s has %d days, got %d", ErrInvalidDay, m, days, day)
	}
	return nil
}
