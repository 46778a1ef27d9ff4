package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/soundprediction/gfdminer/pkg/graph"
)

// DateFragToDays projects an xsd date-fragment value onto a day count
// so fragments of the same kind become comparable on one axis. Years
// are simplified to 365 days; month lengths are taken from the current
// year when the fragment does not carry one.
func DateFragToDays(value string, dtype graph.IRI) (int, error) {
	switch dtype {
	case graph.XSDGMonth:
		m, err := strconv.Atoi(strings.TrimPrefix(value, "--"))
		if err != nil {
			return 0, fmt.Errorf("bad gMonth value %q: %w", value, err)
		}
		return daysUntilMonth(m), nil

	case graph.XSDGMonthDay:
		parts := strings.SplitN(strings.TrimPrefix(value, "--"), "-", 2)
		if len(parts) != 2 {
			return 0, fmt.Errorf("bad gMonthDay value %q", value)
		}
		m, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("bad gMonthDay value %q: %w", value, err)
		}
		d, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, fmt.Errorf("bad gMonthDay value %q: %w", value, err)
		}
		return daysUntilMonth(m) + d, nil

	case graph.XSDGYear:
		y, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("bad gYear value %q: %w", value, err)
		}
		return y * 365, nil

	case graph.XSDGYearMonth:
		parts := strings.SplitN(value, "-", 2)
		if len(parts) != 2 {
			return 0, fmt.Errorf("bad gYearMonth value %q", value)
		}
		y, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("bad gYearMonth value %q: %w", value, err)
		}
		m, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, fmt.Errorf("bad gYearMonth value %q: %w", value, err)
		}
		return y*365 + daysUntilMonth(m), nil

	default:
		// XSDGDay
		d, err := strconv.Atoi(strings.TrimPrefix(value, "---"))
		if err != nil {
			return 0, fmt.Errorf("bad gDay value %q: %w", value, err)
		}
		return d, nil
	}
}

// daysUntilMonth sums the lengths of the months before m in the current
// year.
func daysUntilMonth(m int) int {
	year := time.Now().Year()
	days := 0
	for i := 1; i < m && i <= 12; i++ {
		days += daysInMonth(year, i)
	}
	return days
}

func daysInMonth(year, month int) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
