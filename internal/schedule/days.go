package schedule

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/termcal/internal/calendar"
	"github.com/pfrederiksen/termcal/internal/event"
	"github.com/teambition/rrule-go"
)

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// TermEnd returns the last day of a term that runs weeks weeks from start
func TermEnd(start time.Time, weeks int) time.Time {
	return event.Day(start).AddDate(0, 0, 7*weeks-1)
}

// ClassDays lists the eligible class days: every day from start to end,
// inclusive, that matches the pattern and is not a holiday.
func ClassDays(start, end time.Time, pattern calendar.Pattern, holidays event.HolidaySet) ([]time.Time, error) {
	start, end = event.Day(start), event.Day(end)
	if end.Before(start) {
		return nil, fmt.Errorf("term ends %s before it starts %s",
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	if len(pattern) == 0 {
		return nil, fmt.Errorf("meeting pattern has no weekdays")
	}

	byDay := make([]rrule.Weekday, 0, len(pattern))
	for _, wd := range pattern {
		byDay = append(byDay, rruleWeekdays[wd])
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: byDay,
		Dtstart:   start,
		Until:     end,
	})
	if err != nil {
		return nil, fmt.Errorf("building meeting rule: %w", err)
	}

	days := make([]time.Time, 0)
	for _, day := range rule.All() {
		if holidays.IsHoliday(day) {
			continue
		}
		days = append(days, event.Day(day))
	}
	return days, nil
}
