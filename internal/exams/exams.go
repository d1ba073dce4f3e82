// Package exams finds the final exam slot for a class from its meeting
// pattern and start time.
package exams

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/termcal/internal/calendar"
	"gopkg.in/yaml.v3"
)

//go:embed exams.yaml
var defaultTable []byte

// ErrNoSlot is returned when no exam slot matches a class
var ErrNoSlot = errors.New("no exam slot for class")

// examDays is the search order of the table
var examDays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// Exam is the day and time of a final exam
type Exam struct {
	Day  time.Weekday
	Slot string
}

func (e Exam) String() string {
	return e.Day.String() + " at " + e.Slot
}

// option is one "patterns at times" alternative of a table entry
type option struct {
	patterns []string
	minutes  []int
}

// Table maps class meetings to exam slots
type Table struct {
	slots []string
	days  map[time.Weekday][][]option
}

type rawTable struct {
	Slots     []string `yaml:"Slots"`
	Monday    []string `yaml:"Monday"`
	Tuesday   []string `yaml:"Tuesday"`
	Wednesday []string `yaml:"Wednesday"`
	Thursday  []string `yaml:"Thursday"`
	Friday    []string `yaml:"Friday"`
}

// Default returns the embedded exam table
func Default() (*Table, error) {
	return Parse(defaultTable)
}

// Parse parses an exam table in the embedded table's format
func Parse(data []byte) (*Table, error) {
	var raw rawTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing exam table: %w", err)
	}
	if len(raw.Slots) == 0 {
		return nil, fmt.Errorf("exam table has no slots")
	}

	t := &Table{slots: raw.Slots, days: make(map[time.Weekday][][]option)}
	entries := map[time.Weekday][]string{
		time.Monday:    raw.Monday,
		time.Tuesday:   raw.Tuesday,
		time.Wednesday: raw.Wednesday,
		time.Thursday:  raw.Thursday,
		time.Friday:    raw.Friday,
	}
	for _, day := range examDays {
		if len(entries[day]) > len(raw.Slots) {
			return nil, fmt.Errorf("%s has %d entries for %d slots", day, len(entries[day]), len(raw.Slots))
		}
		for i, entry := range entries[day] {
			opts, err := parseEntry(entry)
			if err != nil {
				return nil, fmt.Errorf("%s slot %d: %w", day, i+1, err)
			}
			t.days[day] = append(t.days[day], opts)
		}
	}
	return t, nil
}

// parseEntry parses "MWF, MW at 8 or 8:30 OR WF at 10"
func parseEntry(entry string) ([]option, error) {
	var opts []option
	for _, alt := range strings.Split(entry, " OR ") {
		patterns, times, ok := strings.Cut(alt, " at ")
		if !ok {
			return nil, fmt.Errorf("entry %q: missing \"at\"", alt)
		}

		var opt option
		for _, p := range strings.Split(patterns, ",") {
			canon, err := canonical(p)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", alt, err)
			}
			opt.patterns = append(opt.patterns, canon)
		}
		for _, tm := range strings.Split(times, " or ") {
			m, err := Minutes(tm)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", alt, err)
			}
			opt.minutes = append(opt.minutes, m)
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

func canonical(pattern string) (string, error) {
	p, err := calendar.ParsePattern(pattern)
	if err != nil {
		return "", err
	}
	if len(p) == 0 {
		return "", fmt.Errorf("empty meeting pattern")
	}
	return p.String(), nil
}

// Minutes converts a 24-hour start time such as "10:30" or "19" to minutes
// after midnight
func Minutes(s string) (int, error) {
	s = strings.TrimSpace(s)
	hour, minute, hasMinute := strings.Cut(s, ":")

	h, err := strconv.Atoi(hour)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in time %q", s)
	}
	m := 0
	if hasMinute {
		m, err = strconv.Atoi(minute)
		if err != nil || m < 0 || m > 59 {
			return 0, fmt.Errorf("invalid minute in time %q", s)
		}
	}
	return 60*h + m, nil
}

// Lookup finds the exam for a class meeting on days (e.g. "TR") starting at
// start (e.g. "10:30"). Days are searched Monday first and slots in table
// order; the first match wins.
func (t *Table) Lookup(days, start string) (Exam, error) {
	pattern, err := canonical(days)
	if err != nil {
		return Exam{}, err
	}
	minutes, err := Minutes(start)
	if err != nil {
		return Exam{}, err
	}

	for _, day := range examDays {
		for i, opts := range t.days[day] {
			for _, opt := range opts {
				if contains(opt.patterns, pattern) && containsInt(opt.minutes, minutes) {
					return Exam{Day: day, Slot: t.slots[i]}, nil
				}
			}
		}
	}
	return Exam{}, fmt.Errorf("%s at %s: %w", pattern, start, ErrNoSlot)
}

// Lookup searches the embedded exam table
func Lookup(days, start string) (Exam, error) {
	t, err := Default()
	if err != nil {
		return Exam{}, err
	}
	return t.Lookup(days, start)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsInt(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}
