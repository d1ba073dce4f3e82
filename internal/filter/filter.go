// Package filter narrows a semester's events for display.
//
// A filter can restrict events to a date window and to names containing, or
// not containing, given substrings:
//   - Date window (from/to dates); an event matches when any of its days fall
//     inside the window
//   - Names (substring matching, case-insensitive)
//   - Excluded names (substring matching, case-insensitive)
//
// Example usage:
//
//	// Breaks during November
//	f := filter.NewFilter()
//	f.DateFrom, f.DateTo, _ = filter.ParseWindow("November", 2023)
//	f.Names = []string{"break", "recess"}
//
//	entries = f.Apply(sem.Sorted())
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/termcal/internal/event"
)

// Filter represents event filtering criteria
type Filter struct {
	// Date window, inclusive
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	// Event name filtering (case-insensitive substring match, any of)
	Names []string `json:"names,omitempty"`

	// Events whose name contains any of these are dropped
	Exclude []string `json:"exclude,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all events until criteria are added.
func NewFilter() *Filter {
	return &Filter{
		Names:   []string{},
		Exclude: []string{},
	}
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		len(f.Names) == 0 &&
		len(f.Exclude) == 0
}

// Matches checks if an event matches all active filter criteria.
// An empty filter matches all events.
//
// Matching logic:
//   - Date window: the event's range must overlap [DateFrom, DateTo]
//   - Names: the event name must contain at least one name (case-insensitive)
//   - Exclude: the event name must contain none of them (case-insensitive)
func (f *Filter) Matches(e event.Entry) bool {
	if f.IsEmpty() {
		return true
	}

	if f.DateFrom != nil && e.Dates.Last().Before(event.Day(*f.DateFrom)) {
		return false
	}
	if f.DateTo != nil && e.Dates.Start.After(event.Day(*f.DateTo)) {
		return false
	}

	name := strings.ToLower(e.Name)
	if len(f.Names) > 0 && !containsAny(name, f.Names) {
		return false
	}
	if containsAny(name, f.Exclude) {
		return false
	}

	return true
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// Apply returns the matching entries, keeping their order.
// If the filter is empty, returns the original list unchanged.
func (f *Filter) Apply(entries []event.Entry) []event.Entry {
	if f.IsEmpty() {
		return entries
	}

	filtered := make([]event.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			filtered = append(filtered, e)
		}
	}

	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Format: "From: Nov 1, 2023 | To: Nov 30, 2023 | Names: break, recess"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DateFrom.Format("Jan 2, 2006")))
	}

	if f.DateTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DateTo.Format("Jan 2, 2006")))
	}

	if len(f.Names) > 0 {
		parts = append(parts, fmt.Sprintf("Names: %s", strings.Join(f.Names, ", ")))
	}

	if len(f.Exclude) > 0 {
		parts = append(parts, fmt.Sprintf("Excluding: %s", strings.Join(f.Exclude, ", ")))
	}

	return strings.Join(parts, " | ")
}
