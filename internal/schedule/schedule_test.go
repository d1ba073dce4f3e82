package schedule

import (
	"errors"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/pfrederiksen/termcal/internal/calendar"
	"github.com/pfrederiksen/termcal/internal/event"
)

func fallHolidays() event.HolidaySet {
	recess, _ := event.NewRange(event.Date(2023, time.November, 22), event.Date(2023, time.November, 24))
	return event.HolidaySet{
		"Labor Day":    event.Single(event.Date(2023, time.September, 4)),
		"Thanksgiving": recess,
	}
}

func lessons(n int) []Lesson {
	out := make([]Lesson, n)
	for i := range out {
		out[i] = Lesson{Title: "Lesson " + string(rune('A'+i))}
	}
	return out
}

func TestClassDays(t *testing.T) {
	days, err := ClassDays(event.Date(2023, time.August, 28), event.Date(2023, time.September, 8),
		calendar.MustPattern("MW"), fallHolidays())
	if err != nil {
		t.Fatalf("ClassDays() error: %v", err)
	}

	want := []string{"2023-08-28", "2023-08-30", "2023-09-06"}
	if len(days) != len(want) {
		t.Fatalf("got %d days, want %d: %v", len(days), len(want), days)
	}
	for i, d := range days {
		if got := d.Format(time.DateOnly); got != want[i] {
			t.Errorf("day %d = %s, want %s", i, got, want[i])
		}
	}
}

func TestClassDays_FullTerm(t *testing.T) {
	days, err := ClassDays(event.Date(2023, time.August, 28), event.Date(2023, time.December, 8),
		calendar.MustPattern("MW"), fallHolidays())
	if err != nil {
		t.Fatalf("ClassDays() error: %v", err)
	}
	// 15 Mondays and 15 Wednesdays, minus Labor Day and the Thanksgiving Wednesday
	if len(days) != 28 {
		t.Errorf("got %d class days, want 28", len(days))
	}
	for i := 1; i < len(days); i++ {
		if !days[i].After(days[i-1]) {
			t.Fatalf("days not increasing at %d: %v then %v", i, days[i-1], days[i])
		}
	}
}

func TestClassDays_InclusiveEnd(t *testing.T) {
	days, err := ClassDays(event.Date(2023, time.August, 29), event.Date(2023, time.August, 31),
		calendar.MustPattern("TR"), nil)
	if err != nil {
		t.Fatalf("ClassDays() error: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("got %d days, want 2 (Tuesday and Thursday)", len(days))
	}
	if days[1].Format(time.DateOnly) != "2023-08-31" {
		t.Errorf("last day = %s, want 2023-08-31", days[1].Format(time.DateOnly))
	}
}

func TestClassDays_Errors(t *testing.T) {
	if _, err := ClassDays(event.Date(2023, time.December, 8), event.Date(2023, time.August, 28),
		calendar.MustPattern("MW"), nil); err == nil {
		t.Error("expected error for reversed term")
	}
	if _, err := ClassDays(event.Date(2023, time.August, 28), event.Date(2023, time.December, 8),
		nil, nil); err == nil {
		t.Error("expected error for empty pattern")
	}
}

func TestTermEnd(t *testing.T) {
	got := TermEnd(event.Date(2023, time.August, 28), 14)
	if want := event.Date(2023, time.December, 3); !got.Equal(want) {
		t.Errorf("TermEnd() = %v, want %v", got, want)
	}
}

func TestAssign(t *testing.T) {
	days := []time.Time{
		event.Date(2023, time.August, 28),
		event.Date(2023, time.August, 30),
		event.Date(2023, time.September, 6),
		event.Date(2023, time.September, 11),
	}

	tests := []struct {
		name         string
		lessons      int
		wantAssigned int
		wantEmpty    int
		wantDropped  int
	}{
		{"exact", 4, 4, 0, 0},
		{"too few lessons", 1, 1, 3, 0},
		{"no lessons", 0, 0, 4, 0},
		{"too many lessons", 6, 4, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Assign(lessons(tt.lessons), days)

			if len(plan.Slots) != len(days) {
				t.Fatalf("slots = %d, want one per day (%d)", len(plan.Slots), len(days))
			}
			if got := len(plan.Assigned()); got != tt.wantAssigned {
				t.Errorf("assigned = %d, want %d", got, tt.wantAssigned)
			}
			empty := 0
			for _, s := range plan.Slots {
				if s.Empty {
					empty++
				}
			}
			if empty != tt.wantEmpty {
				t.Errorf("placeholders = %d, want %d", empty, tt.wantEmpty)
			}
			if len(plan.Dropped) != tt.wantDropped {
				t.Errorf("dropped = %d, want %d", len(plan.Dropped), tt.wantDropped)
			}
			if want := tt.wantEmpty + tt.wantDropped; len(plan.Warnings) != want {
				t.Errorf("warnings = %d, want %d: %v", len(plan.Warnings), want, plan.Warnings)
			}
		})
	}
}

func TestAssign_Order(t *testing.T) {
	days := []time.Time{event.Date(2023, time.August, 28), event.Date(2023, time.August, 30)}
	plan := Assign(lessons(3), days)

	if plan.Slots[0].Lesson.Title != "Lesson A" || plan.Slots[1].Lesson.Title != "Lesson B" {
		t.Errorf("slots out of order: %+v", plan.Slots)
	}
	if plan.Dropped[0].Title != "Lesson C" {
		t.Errorf("dropped = %+v, want Lesson C", plan.Dropped)
	}
	if !strings.Contains(plan.Warnings[0], "Lesson C") {
		t.Errorf("warning %q does not name the dropped lesson", plan.Warnings[0])
	}
}

func TestReadLessons(t *testing.T) {
	input := "# Course notes\nignored preamble\n## Intro\nSyllabus\n\nFirst steps\n## Limits & Continuity\r\nEpsilon\n## Review\n"

	got, err := ReadLessons(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadLessons() error: %v", err)
	}

	want := []Lesson{
		{Title: "Intro", Body: "Syllabus\n\nFirst steps"},
		{Title: "Limits & Continuity", Body: "Epsilon"},
		{Title: "Review", Body: ""},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lessons, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("lesson %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReadLessons_Empty(t *testing.T) {
	got, err := ReadLessons(strings.NewReader("no headings here\n"))
	if err != nil {
		t.Fatalf("ReadLessons() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d lessons, want 0", len(got))
	}
}

func testTerm() Term {
	return Term{
		Start:    event.Date(2023, time.August, 28),
		End:      event.Date(2023, time.September, 8),
		Pattern:  calendar.MustPattern("MW"),
		Holidays: fallHolidays(),
	}
}

func TestTerm_RenderTeX(t *testing.T) {
	term := testTerm()
	plan, err := term.Build([]Lesson{{Title: "Intro"}, {Title: "Sets & Logic"}})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	tex, err := term.RenderTeX(plan)
	if err != nil {
		t.Fatalf("RenderTeX() error: %v", err)
	}

	for _, want := range []string{
		`\caltext{8/28/2023}{Intro}`,
		`\caltext{8/30/2023}{Sets \& Logic}`,
		`\Holiday{9/4/2023}{Labor Day}`,
	} {
		if !strings.Contains(tex, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(tex, `\caltext{9/6/2023}`) {
		t.Error("placeholder slot should not be rendered")
	}
	if len(plan.Warnings) != 1 {
		t.Errorf("warnings = %v, want one for 9/6", plan.Warnings)
	}
}

func TestExportICS(t *testing.T) {
	term := testTerm()
	plan, err := term.Build([]Lesson{{Title: "Intro", Body: "Read chapter 1"}, {Title: "Sets"}})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	out, err := ExportICS(plan, calendar.SessionOptions{Course: "MATH 140", Hour: 10, Minute: 30, Length: 110 * time.Minute})
	if err != nil {
		t.Fatalf("ExportICS() error: %v", err)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ParseCalendar() error: %v", err)
	}
	if got := len(cal.Events()); got != 2 {
		t.Errorf("events = %d, want 2", got)
	}
}

func TestExportICS_NothingScheduled(t *testing.T) {
	plan := Assign(nil, []time.Time{event.Date(2023, time.August, 28)})
	if _, err := ExportICS(plan, calendar.SessionOptions{Hour: 10, Length: time.Hour}); err == nil {
		t.Error("expected error for a plan without lessons")
	}
}

func TestNewTerm(t *testing.T) {
	pattern := calendar.MustPattern("TR")
	begin := event.Single(event.Date(2024, time.January, 8))
	end := event.Single(event.Date(2024, time.April, 20)) // Saturday
	labor := event.Single(event.Date(2024, time.March, 4))

	tests := []struct {
		name      string
		set       event.HolidaySet
		start     time.Time
		weeks     int
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			name:      "full holiday file",
			set:       event.HolidaySet{event.ClassesBegin: begin, event.ClassesEnd: end, "Break": labor},
			wantStart: event.Date(2024, time.January, 8),
			wantEnd:   event.Date(2024, time.April, 19),
		},
		{
			name:      "start given on the command line",
			set:       event.HolidaySet{event.ClassesEnd: end},
			start:     event.Date(2024, time.January, 10),
			wantStart: event.Date(2024, time.January, 10),
			wantEnd:   event.Date(2024, time.April, 19),
		},
		{
			name:      "end from week count",
			set:       event.HolidaySet{event.ClassesBegin: begin},
			weeks:     14,
			wantStart: event.Date(2024, time.January, 8),
			wantEnd:   event.Date(2024, time.April, 14),
		},
		{name: "no start", set: event.HolidaySet{event.ClassesEnd: end}, wantErr: true},
		{name: "no end", set: event.HolidaySet{event.ClassesBegin: begin}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, err := NewTerm(tt.set, pattern, tt.start, tt.weeks)
			if tt.wantErr {
				if !errors.Is(err, event.ErrMissingTerm) {
					t.Fatalf("NewTerm() error = %v, want ErrMissingTerm", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewTerm() error: %v", err)
			}
			if !term.Start.Equal(tt.wantStart) || !term.End.Equal(tt.wantEnd) {
				t.Errorf("term = %s..%s, want %s..%s", term.Start.Format(time.DateOnly), term.End.Format(time.DateOnly),
					tt.wantStart.Format(time.DateOnly), tt.wantEnd.Format(time.DateOnly))
			}
			if _, ok := term.Holidays[event.ClassesBegin]; ok {
				t.Error("holidays still contain Classes Begin")
			}
		})
	}
}
