package scraper

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/termcal/internal/event"
	"github.com/pfrederiksen/termcal/internal/logger"
)

// ErrTableNotFound is returned when no calendar table matches the semester
var ErrTableNotFound = errors.New("calendar table not found")

// DefaultAdapter names the adapter for the current page layout
const DefaultAdapter = "fall-year"

// Adapter extracts one semester's events from a parsed calendar page.
// Each implementation matches one revision of the registrar's page layout.
type Adapter interface {
	Name() string
	Extract(doc *goquery.Document, semester string, year int) (event.Semester, error)
}

var adapters = map[string]Adapter{
	"fall-year":      FallYearAdapter{},
	"semester-table": SemesterTableAdapter{},
}

// LookupAdapter returns the adapter registered under name
func LookupAdapter(name string) (Adapter, error) {
	if name == "" {
		name = DefaultAdapter
	}
	a, ok := adapters[name]
	if !ok {
		return nil, fmt.Errorf("unknown page adapter %q (available: %s)", name, strings.Join(AdapterNames(), ", "))
	}
	return a, nil
}

// AdapterNames lists the registered adapters
func AdapterNames() []string {
	names := make([]string, 0, len(adapters))
	for name := range adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FallYearAdapter reads the layout where each academic year is one table headed
// "FALL <year>", covering fall and the following spring and summer. Rows are
// tagged with a th "headers" attribute naming their semester (fall2022,
// spring2024, ...). The labels are inconsistent: every fall header id is stuck
// on one year, so only the semester word of the attribute is matched.
type FallYearAdapter struct{}

// Name implements Adapter
func (FallYearAdapter) Name() string {
	return "fall-year"
}

// Extract implements Adapter
func (FallYearAdapter) Extract(doc *goquery.Document, semester string, year int) (event.Semester, error) {
	// Spring and summer are filed under the previous fall's table
	tableYear := year
	if !strings.EqualFold(semester, "fall") {
		tableYear = year - 1
	}
	header := regexp.MustCompile(fmt.Sprintf(`^FALL\s+%d`, tableYear))

	var body *goquery.Selection
	doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		cell := table.Find("thead").First().Find("th").First()
		if cell.Length() == 0 {
			return true
		}
		if header.MatchString(strings.TrimSpace(cell.Text())) {
			body = table.Find("tbody").First()
			return false
		}
		return true
	})

	if body == nil || body.Length() == 0 {
		return nil, fmt.Errorf("%w: FALL %d (for %s %d)", ErrTableNotFound, tableYear, semester, year)
	}

	label := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(strings.ToLower(semester)))

	rows := make([]row, 0)
	body.Find("tr").Each(func(i int, tr *goquery.Selection) {
		tagged := tr.Find("th").FilterFunction(func(_ int, th *goquery.Selection) bool {
			return label.MatchString(th.AttrOr("headers", ""))
		})
		if tagged.Length() == 0 {
			return
		}

		r := row{name: strings.TrimSpace(tr.Find("th").First().Text())}
		if cells := tr.Find("td"); cells.Length() >= 2 {
			r.dates = strings.TrimSpace(cells.Eq(1).Text())
		}
		rows = append(rows, r)
	})

	return buildSemester(rows, semester, year)
}

// SemesterTableAdapter reads the older layout with one table per semester,
// identified by its caption or first header cell ("SPRING 2021"). Every body
// row belongs to the semester; the first cell names the event and the last
// cell holds its dates.
type SemesterTableAdapter struct{}

// Name implements Adapter
func (SemesterTableAdapter) Name() string {
	return "semester-table"
}

// Extract implements Adapter
func (SemesterTableAdapter) Extract(doc *goquery.Document, semester string, year int) (event.Semester, error) {
	header := regexp.MustCompile(fmt.Sprintf(`(?i)^%s\s+%d`, regexp.QuoteMeta(semester), year))

	var table *goquery.Selection
	doc.Find("table").EachWithBreak(func(i int, t *goquery.Selection) bool {
		title := t.Find("caption").First()
		if title.Length() == 0 {
			title = t.Find("tr").First().Find("th, td").First()
		}
		if header.MatchString(strings.TrimSpace(title.Text())) {
			table = t
			return false
		}
		return true
	})

	if table == nil {
		return nil, fmt.Errorf("%w: %s %d", ErrTableNotFound, semester, year)
	}

	rows := make([]row, 0)
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		cells := tr.Find("th, td")
		if cells.Length() < 2 {
			return
		}
		name := strings.TrimSpace(cells.First().Text())
		if header.MatchString(name) {
			return
		}
		rows = append(rows, row{
			name:  name,
			dates: strings.TrimSpace(cells.Last().Text()),
		})
	})

	return buildSemester(rows, semester, year)
}

// row is an event name and its unparsed date text
type row struct {
	name  string
	dates string
}

// yearRule picks how yearless dates of a semester resolve. A fall semester
// runs into January, so its early-year dates belong to the next year.
func yearRule(semester string) event.YearRule {
	if strings.EqualFold(strings.TrimSpace(semester), "fall") {
		return event.AcademicYear
	}
	return event.CalendarYear
}

// buildSemester parses the date text of each row. Unparseable dates abort the
// extraction; rows without a name or date text are skipped.
func buildSemester(rows []row, semester string, year int) (event.Semester, error) {
	sem := make(event.Semester)
	rule := yearRule(semester)

	if len(rows) == 0 {
		logger.Warn("No calendar rows for semester", logger.Fields{
			"semester": semester,
			"year":     year,
		})
		return sem, nil
	}

	for _, r := range rows {
		logger.IncrCounter("scraper.rows")
		if r.name == "" {
			continue
		}
		if r.dates == "" {
			logger.Warn("Skipping event without dates", logger.Fields{
				"event":    r.name,
				"semester": semester,
			})
			continue
		}

		dates, err := event.ParseRangeIn(r.dates, year, rule)
		if err != nil {
			return nil, fmt.Errorf("event %q: %w", r.name, err)
		}
		sem[r.name] = FixTruncatedRange(dates)
	}

	return sem, nil
}
