package event

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Reserved holiday-set keys marking the term boundaries
const (
	ClassesBegin = "Classes Begin"
	ClassesEnd   = "Classes End"
)

// DefaultDateFormat is used by DateRange.String
const DefaultDateFormat = "01/02/2006"

// ErrMissingTerm is returned when a holiday set lacks a term boundary
var ErrMissingTerm = errors.New("missing term boundary")

// ErrNoEvents is returned when a semester yields nothing to save
var ErrNoEvents = errors.New("no calendar events")

// DateRange is a start date with an optional inclusive end date.
// A zero End marks a single-day event.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Day truncates t to midnight UTC of its calendar date
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date builds a calendar date at midnight UTC
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Single creates a single-day range
func Single(day time.Time) DateRange {
	return DateRange{Start: Day(day)}
}

// NewRange creates a range from start to end, inclusive.
// It returns an error when end is before start.
func NewRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: Day(start), End: Day(end)}
	if r.End.Before(r.Start) {
		return DateRange{}, fmt.Errorf("range end %s is before start %s",
			r.End.Format(time.DateOnly), r.Start.Format(time.DateOnly))
	}
	return r, nil
}

// HasEnd reports whether the range spans more than its start entry
func (r DateRange) HasEnd() bool {
	return !r.End.IsZero()
}

// Last returns the final day covered by the range
func (r DateRange) Last() time.Time {
	if r.HasEnd() {
		return r.End
	}
	return r.Start
}

// Contains reports whether day falls within the range, both ends inclusive.
// Only the calendar date of day is compared.
func (r DateRange) Contains(day time.Time) bool {
	d := Day(day)
	return !d.Before(Day(r.Start)) && !d.After(Day(r.Last()))
}

// Days lists every day of the range in order
func (r DateRange) Days() []time.Time {
	days := make([]time.Time, 0)
	for d := Day(r.Start); !d.After(Day(r.Last())); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Format renders the range using layout: a single date, or "start to end"
func (r DateRange) Format(layout string) string {
	if !r.HasEnd() {
		return r.Start.Format(layout)
	}
	return r.Start.Format(layout) + " to " + r.End.Format(layout)
}

// String renders the range with DefaultDateFormat
func (r DateRange) String() string {
	return r.Format(DefaultDateFormat)
}

// yamlRange is the on-disk shape of a DateRange
type yamlRange struct {
	Start yamlDate  `yaml:"Start"`
	End   *yamlDate `yaml:"End,omitempty"`
}

// yamlDate serializes as a bare YAML date (2023-08-28)
type yamlDate time.Time

// MarshalYAML implements yaml.Marshaler
func (d yamlDate) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!timestamp",
		Value: time.Time(d).Format(time.DateOnly),
	}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *yamlDate) UnmarshalYAML(value *yaml.Node) error {
	for _, layout := range []string{time.DateOnly, time.RFC3339, "2006-01-02 15:04:05"} {
		t, err := time.Parse(layout, value.Value)
		if err == nil {
			*d = yamlDate(Day(t))
			return nil
		}
	}
	return fmt.Errorf("line %d: invalid date %q", value.Line, value.Value)
}

// MarshalYAML implements yaml.Marshaler
func (r DateRange) MarshalYAML() (interface{}, error) {
	out := yamlRange{Start: yamlDate(r.Start)}
	if r.HasEnd() {
		end := yamlDate(r.End)
		out.End = &end
	}
	return out, nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (r *DateRange) UnmarshalYAML(value *yaml.Node) error {
	var in yamlRange
	if err := value.Decode(&in); err != nil {
		return err
	}
	start := time.Time(in.Start)
	if start.IsZero() {
		return fmt.Errorf("line %d: range has no Start", value.Line)
	}
	if in.End == nil {
		*r = Single(start)
		return nil
	}
	parsed, err := NewRange(start, time.Time(*in.End))
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*r = parsed
	return nil
}

// Semester maps event names scraped for one semester to their dates
type Semester map[string]DateRange

// Entry is a named date range
type Entry struct {
	Name  string
	Dates DateRange
}

// Sorted returns the entries ordered by start date, then by name
func (s Semester) Sorted() []Entry {
	return sortedEntries(s)
}

func sortedEntries(m map[string]DateRange) []Entry {
	entries := make([]Entry, 0, len(m))
	for name, dates := range m {
		entries = append(entries, Entry{Name: name, Dates: dates})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Dates.Start.Equal(entries[j].Dates.Start) {
			return entries[i].Dates.Start.Before(entries[j].Dates.Start)
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// HolidaySet maps holiday names to date ranges, plus the reserved
// ClassesBegin and ClassesEnd keys.
type HolidaySet map[string]DateRange

// FromSemester copies a semester into a holiday set, skipping unwanted events
func FromSemester(sem Semester, unwanted []string) HolidaySet {
	skip := make(map[string]bool, len(unwanted))
	for _, name := range unwanted {
		skip[name] = true
	}

	set := make(HolidaySet, len(sem))
	for name, dates := range sem {
		if skip[name] {
			continue
		}
		set[name] = dates
	}
	return set
}

// Term returns the first and last class days and the holidays proper.
// The end of term is the start of the ClassesEnd entry; when it lands on a
// weekend it moves back to Friday. The receiver is not modified.
func (h HolidaySet) Term() (start, end time.Time, holidays HolidaySet, err error) {
	begin, ok := h[ClassesBegin]
	if !ok {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: %q", ErrMissingTerm, ClassesBegin)
	}
	finish, ok := h[ClassesEnd]
	if !ok {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: %q", ErrMissingTerm, ClassesEnd)
	}

	start = Day(begin.Start)
	end = LastWeekday(finish.Start)

	holidays = make(HolidaySet, len(h))
	for name, dates := range h {
		if name == ClassesBegin || name == ClassesEnd {
			continue
		}
		holidays[name] = dates
	}
	return start, end, holidays, nil
}

// LastWeekday moves a Saturday or Sunday back to the preceding Friday
func LastWeekday(day time.Time) time.Time {
	d := Day(day)
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, -2)
	}
	return d
}

// HolidayName returns the name of the holiday covering day, if any.
// Overlapping holidays resolve to the one that sorts first.
func (h HolidaySet) HolidayName(day time.Time) (string, bool) {
	for _, e := range sortedEntries(h) {
		if e.Dates.Contains(day) {
			return e.Name, true
		}
	}
	return "", false
}

// IsHoliday reports whether day falls inside any holiday interval
func (h HolidaySet) IsHoliday(day time.Time) bool {
	for _, dates := range h {
		if dates.Contains(day) {
			return true
		}
	}
	return false
}

// Sorted returns the holidays ordered by start date, then by name
func (h HolidaySet) Sorted() []Entry {
	return sortedEntries(h)
}
