package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/termcal/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate SortOrder = "date"
	SortByName SortOrder = "name"
)

func parseSortOrder(name string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(name))); order {
	case SortByDate, SortByName:
		return order, nil
	default:
		return "", usagef("invalid sort order: %s (must be 'date' or 'name')", name)
	}
}

// sortEntries sorts semester events based on the specified sort order
func sortEntries(entries []event.Entry, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(entries, func(i, j int) bool {
			return compareByDate(entries[i], entries[j])
		})
	case SortByName:
		sort.SliceStable(entries, func(i, j int) bool {
			ni, nj := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
			if ni != nj {
				return ni < nj
			}
			// If names are equal, sort by date
			return compareByDate(entries[i], entries[j])
		})
	}
}

// compareByDate orders by start date, then by end date, then by name.
// Returns true if event i should come before event j
func compareByDate(i, j event.Entry) bool {
	if !i.Dates.Start.Equal(j.Dates.Start) {
		return i.Dates.Start.Before(j.Dates.Start)
	}
	if li, lj := i.Dates.Last(), j.Dates.Last(); !li.Equal(lj) {
		return li.Before(lj)
	}
	return i.Name < j.Name
}
