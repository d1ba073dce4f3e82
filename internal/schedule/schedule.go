package schedule

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/termcal/internal/logger"
)

// Slot pairs a class day with its lesson. Empty marks a placeholder for a day
// left over after the lessons ran out.
type Slot struct {
	Day    time.Time
	Lesson Lesson
	Empty  bool
}

// Plan is the result of Assign
type Plan struct {
	Slots    []Slot
	Dropped  []Lesson // lessons left over after the days ran out
	Warnings []string
}

// Assign pairs lessons with class days in order, one slot per day.
// Each day without a lesson gets a placeholder and a warning; each lesson
// without a day is returned in Dropped, also with a warning.
func Assign(lessons []Lesson, days []time.Time) Plan {
	plan := Plan{
		Slots:    make([]Slot, 0, len(days)),
		Dropped:  make([]Lesson, 0),
		Warnings: make([]string, 0),
	}

	for i, day := range days {
		if i < len(lessons) {
			plan.Slots = append(plan.Slots, Slot{Day: day, Lesson: lessons[i]})
			continue
		}
		plan.Slots = append(plan.Slots, Slot{Day: day, Empty: true})
		plan.warn(fmt.Sprintf("not enough lessons scheduled: %s has no lesson", day.Format("Mon 01/02/2006")),
			logger.Fields{"day": day.Format(time.DateOnly)})
	}

	if len(lessons) > len(days) {
		for _, l := range lessons[len(days):] {
			plan.Dropped = append(plan.Dropped, l)
			plan.warn(fmt.Sprintf("not enough class days: lesson %q was not scheduled", l.Title),
				logger.Fields{"lesson": l.Title})
		}
	}

	return plan
}

func (p *Plan) warn(msg string, fields logger.Fields) {
	p.Warnings = append(p.Warnings, msg)
	logger.Warn(msg, fields)
}

// Assigned returns the slots that carry a lesson
func (p Plan) Assigned() []Slot {
	out := make([]Slot, 0, len(p.Slots))
	for _, s := range p.Slots {
		if !s.Empty {
			out = append(out, s)
		}
	}
	return out
}
