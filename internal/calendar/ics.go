package calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

// Session is one dated class meeting
type Session struct {
	Date        time.Time
	Title       string
	Description string
}

// SessionOptions places sessions on the clock
type SessionOptions struct {
	Course   string         // used in summaries and UIDs
	Hour     int            // start hour, 24-hour clock
	Minute   int            // start minute
	Length   time.Duration  // session length
	Location *time.Location // time zone of Hour and Minute; UTC when nil
	Place    string         // room, optional
}

// Validate checks the clock settings
func (o SessionOptions) Validate() error {
	if o.Hour < 0 || o.Hour > 23 {
		return fmt.Errorf("start hour %d out of range 0-23", o.Hour)
	}
	if o.Minute < 0 || o.Minute > 59 {
		return fmt.Errorf("start minute %d out of range 0-59", o.Minute)
	}
	if o.Length <= 0 {
		return fmt.Errorf("session length must be positive, got %s", o.Length)
	}
	return nil
}

// sessionNamespace keys the name-based UIDs so re-exports update events in place
var sessionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/pfrederiksen/termcal/session"))

// SessionUID returns a stable UID for the course meeting on day
func SessionUID(course string, day time.Time) string {
	return uuid.NewSHA1(sessionNamespace, []byte(course+"|"+day.Format(time.DateOnly))).String() + "@termcal"
}

// GenerateICS builds an iCalendar feed with one VEVENT per session
func GenerateICS(sessions []Session, opts SessionOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//termcal//termcal//EN")

	now := time.Now().UTC()
	for _, s := range sessions {
		start := time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), opts.Hour, opts.Minute, 0, 0, loc)

		ev := cal.AddEvent(SessionUID(opts.Course, s.Date))
		ev.SetDtStampTime(now)
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(opts.Length))
		ev.SetSummary(summary(opts.Course, s.Title))
		if s.Description != "" {
			ev.SetDescription(s.Description)
		}
		if opts.Place != "" {
			ev.SetLocation(opts.Place)
		}
	}

	return cal.Serialize(), nil
}

func summary(course, title string) string {
	switch {
	case course == "":
		return title
	case title == "":
		return course
	default:
		return course + ": " + title
	}
}
