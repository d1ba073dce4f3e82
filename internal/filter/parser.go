package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/termcal/internal/event"
)

// ParseWindow parses a date window for a filter.
//
// Supported formats:
//   - "Nov 1-15" or "November 1 - December 15" - any range event.ParseRange accepts
//   - "Nov 20" - a single day
//   - "March" - entire month
//
// Years that are not given default to year. Returns (dateFrom, dateTo, error)
// with both dates at midnight UTC.
func ParseWindow(input string, year int) (*time.Time, *time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, fmt.Errorf("date window cannot be empty")
	}

	if month, ok := parseMonth(input); ok {
		from := event.Date(year, month, 1)
		// Last day of month
		to := event.Date(year, month+1, 0)
		return &from, &to, nil
	}

	r, err := event.ParseRange(input, year)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid date window: %w", err)
	}
	from, to := r.Start, r.Last()
	return &from, &to, nil
}

// parseMonth converts a full or three-letter month name to time.Month
func parseMonth(name string) (time.Month, bool) {
	name = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(name), "."))

	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		if name == full || name == full[:3] {
			return m, true
		}
	}
	return 0, false
}
