package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/termcal/internal/calendar"
	"github.com/pfrederiksen/termcal/internal/event"
)

// Term describes the meetings of one course section
type Term struct {
	Start    time.Time
	End      time.Time
	Pattern  calendar.Pattern
	Holidays event.HolidaySet
}

// NewTerm reads the term bounds from a holiday set. When the set has no
// Classes Begin entry, start is used instead; when it has no Classes End
// entry, the term ends weeks weeks after it begins.
func NewTerm(h event.HolidaySet, pattern calendar.Pattern, start time.Time, weeks int) (Term, error) {
	first, last, holidays, err := h.Term()
	if err == nil {
		return Term{Start: first, End: last, Pattern: pattern, Holidays: holidays}, nil
	}
	if !errors.Is(err, event.ErrMissingTerm) {
		return Term{}, err
	}

	if begin, ok := h[event.ClassesBegin]; ok {
		start = begin.Start
	}
	if start.IsZero() {
		return Term{}, fmt.Errorf("no start date given: %w", err)
	}
	start = event.Day(start)

	var end time.Time
	if finish, ok := h[event.ClassesEnd]; ok {
		end = event.LastWeekday(finish.Start)
	} else {
		if weeks <= 0 {
			return Term{}, fmt.Errorf("no end date given: %w", err)
		}
		end = TermEnd(start, weeks)
	}

	holidays = make(event.HolidaySet, len(h))
	for name, dates := range h {
		if name != event.ClassesBegin && name != event.ClassesEnd {
			holidays[name] = dates
		}
	}
	return Term{Start: start, End: end, Pattern: pattern, Holidays: holidays}, nil
}

// Build reads the class days of the term and assigns the lessons to them
func (t Term) Build(lessons []Lesson) (Plan, error) {
	days, err := ClassDays(t.Start, t.End, t.Pattern, t.Holidays)
	if err != nil {
		return Plan{}, err
	}
	return Assign(lessons, days), nil
}

// RenderTeX renders the term calendar with each lesson title on its day
func (t Term) RenderTeX(plan Plan) (string, error) {
	lines := make([]string, 0, len(plan.Slots))
	for _, s := range plan.Assigned() {
		lines = append(lines, calendar.Caltext("caltext", s.Day, s.Lesson.Title))
	}

	return calendar.RenderTeX(calendar.Document{
		Start:    t.Start,
		End:      t.End,
		Holidays: t.Holidays,
		Calendars: []calendar.Calendar{
			{Pattern: t.Pattern, Contents: strings.Join(lines, "\n")},
		},
	})
}

// Sessions converts the assigned slots into calendar sessions
func (p Plan) Sessions() []calendar.Session {
	sessions := make([]calendar.Session, 0, len(p.Slots))
	for _, s := range p.Assigned() {
		sessions = append(sessions, calendar.Session{
			Date:        s.Day,
			Title:       s.Lesson.Title,
			Description: s.Lesson.Body,
		})
	}
	return sessions
}

// ExportICS renders the assigned slots as an iCalendar feed
func ExportICS(plan Plan, opts calendar.SessionOptions) (string, error) {
	if len(plan.Assigned()) == 0 {
		return "", fmt.Errorf("no scheduled lessons to export")
	}
	return calendar.GenerateICS(plan.Sessions(), opts)
}
