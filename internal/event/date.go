package event

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnrecognizedDate is wrapped by ParseError when text matches no date grammar
var ErrUnrecognizedDate = errors.New("unrecognized date")

// ParseError reports date text that could not be parsed
type ParseError struct {
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing date %q: %v", e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	// Separators between the two halves of a range: hyphen, en/em dash, or a word
	rangeSeparator = regexp.MustCompile(`(?i)\s*[-–—]\s*|\s+(?:to|through|thru)\s+`)

	// "Monday, Aug. 28th, 2023", "Sept 2", "2" (day only, month inherited)
	namedDatePattern = regexp.MustCompile(`(?i)^(?:(?:mon|tue|wed|thu|fri|sat|sun)[a-z]*\.?,?\s+)?(?:([a-z]+)\.?\s*)?(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?$`)

	// "8/28", "8/28/23", "Mon 8/28/2023"
	numericDatePattern = regexp.MustCompile(`(?i)^(?:(?:mon|tue|wed|thu|fri|sat|sun)[a-z]*\.?,?\s+)?(\d{1,2})/(\d{1,2})(?:/(\d{2}|\d{4}))?$`)

	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	spaces = regexp.MustCompile(`\s+`)
)

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// datePart is one side of a range before years are resolved
type datePart struct {
	month time.Month // 0 when omitted
	day   int
	year  int // 0 when omitted
}

// YearRule decides which year a date written without one falls in
type YearRule int

const (
	// CalendarYear puts yearless dates in the given year. A range whose
	// inferred end comes before its start begins in the previous year, so
	// "Dec 20 - Jan 5" read in 2024 starts in December 2023.
	CalendarYear YearRule = iota
	// AcademicYear reads dates of an academic year that starts in the fall
	// of the given year: yearless August to December dates fall in that
	// year and January to July dates in the next one.
	AcademicYear
)

// yearOf returns the year of a yearless date in month
func (r YearRule) yearOf(month time.Month, year int) int {
	if r == AcademicYear && month < time.August {
		return year + 1
	}
	return year
}

// ParseRange parses free text such as "August 29 - September 2", "Nov. 22-26",
// "Monday, Oct. 16" or "12/20/2023 to 1/5/2024" into a DateRange, with
// yearless dates resolved by CalendarYear.
//
// A start without a year borrows an explicit end year, and an end without
// one borrows the start's year, rolling into the next year when it would
// otherwise come first.
func ParseRange(text string, year int) (DateRange, error) {
	return ParseRangeIn(text, year, CalendarYear)
}

// ParseRangeIn is ParseRange with yearless dates resolved by rule
func ParseRangeIn(text string, year int, rule YearRule) (DateRange, error) {
	clean := normalize(text)
	if clean == "" {
		return DateRange{}, &ParseError{Text: text, Err: ErrUnrecognizedDate}
	}

	if isoDatePattern.MatchString(clean) {
		t, err := time.Parse(time.DateOnly, clean)
		if err != nil {
			return DateRange{}, &ParseError{Text: text, Err: err}
		}
		return Single(t), nil
	}

	halves := rangeSeparator.Split(clean, -1)
	switch len(halves) {
	case 1:
		first, err := parsePart(halves[0])
		if err != nil {
			return DateRange{}, &ParseError{Text: text, Err: err}
		}
		if first.month == 0 {
			return DateRange{}, &ParseError{Text: text, Err: fmt.Errorf("%w: no month", ErrUnrecognizedDate)}
		}
		if first.year == 0 {
			first.year = rule.yearOf(first.month, year)
		}
		start, err := first.date()
		if err != nil {
			return DateRange{}, &ParseError{Text: text, Err: err}
		}
		return Single(start), nil
	case 2:
		r, err := parseTwo(halves[0], halves[1], year, rule)
		if err != nil {
			return DateRange{}, &ParseError{Text: text, Err: err}
		}
		return r, nil
	default:
		return DateRange{}, &ParseError{Text: text, Err: fmt.Errorf("%w: too many range separators", ErrUnrecognizedDate)}
	}
}

// ParseDate parses a single date expression; ranges are rejected
func ParseDate(text string, year int) (time.Time, error) {
	r, err := ParseRange(text, year)
	if err != nil {
		return time.Time{}, err
	}
	if r.HasEnd() {
		return time.Time{}, &ParseError{Text: text, Err: errors.New("expected a single date, got a range")}
	}
	return r.Start, nil
}

func parseTwo(left, right string, year int, rule YearRule) (DateRange, error) {
	first, err := parsePart(left)
	if err != nil {
		return DateRange{}, err
	}
	second, err := parsePart(right)
	if err != nil {
		return DateRange{}, err
	}
	if first.month == 0 {
		return DateRange{}, fmt.Errorf("%w: range start has no month", ErrUnrecognizedDate)
	}
	if second.month == 0 {
		second.month = first.month
	}

	startYearInferred, endYearInferred := first.year == 0, second.year == 0
	switch {
	case startYearInferred && endYearInferred:
		first.year = rule.yearOf(first.month, year)
		second.year = rule.yearOf(second.month, year)
	case startYearInferred:
		first.year = second.year
	case endYearInferred:
		second.year = first.year
	}

	start, err := first.date()
	if err != nil {
		return DateRange{}, err
	}
	end, err := second.date()
	if err != nil {
		return DateRange{}, err
	}

	if end.Before(start) {
		switch {
		case startYearInferred:
			start = start.AddDate(-1, 0, 0)
		case endYearInferred:
			end = end.AddDate(1, 0, 0)
		default:
			return DateRange{}, fmt.Errorf("range ends %s before it starts %s",
				end.Format(time.DateOnly), start.Format(time.DateOnly))
		}
	}

	return NewRange(start, end)
}

func parsePart(s string) (datePart, error) {
	s = strings.TrimSpace(s)

	if m := numericDatePattern.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return datePart{}, fmt.Errorf("%w: month %d out of range", ErrUnrecognizedDate, month)
		}
		p := datePart{month: time.Month(month), day: day}
		if m[3] != "" {
			p.year = expandYear(m[3])
		}
		return p, nil
	}

	m := namedDatePattern.FindStringSubmatch(s)
	if m == nil {
		return datePart{}, fmt.Errorf("%w: %q", ErrUnrecognizedDate, s)
	}

	day, _ := strconv.Atoi(m[2])
	p := datePart{day: day}
	if m[1] != "" {
		month, ok := lookupMonth(m[1])
		if !ok {
			return datePart{}, fmt.Errorf("%w: unknown month %q", ErrUnrecognizedDate, m[1])
		}
		p.month = month
	}
	if m[3] != "" {
		p.year, _ = strconv.Atoi(m[3])
	}
	return p, nil
}

// date builds the calendar date, rejecting days that overflow the month
func (p datePart) date() (time.Time, error) {
	t := Date(p.year, p.month, p.day)
	if p.day < 1 || t.Month() != p.month {
		return time.Time{}, fmt.Errorf("%w: %s has no day %d", ErrUnrecognizedDate, p.month, p.day)
	}
	return t, nil
}

// lookupMonth accepts full month names and abbreviations of three or more letters
func lookupMonth(name string) (time.Month, bool) {
	name = strings.ToLower(name)
	if len(name) < 3 {
		return 0, false
	}
	for i, full := range monthNames {
		if strings.HasPrefix(full, name) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

func expandYear(s string) int {
	y, _ := strconv.Atoi(s)
	if len(s) == 2 {
		y += 2000
	}
	return y
}

func normalize(text string) string {
	text = strings.ReplaceAll(text, "\u00a0", " ")
	return strings.TrimSpace(spaces.ReplaceAllString(text, " "))
}
