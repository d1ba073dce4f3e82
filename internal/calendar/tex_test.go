package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/termcal/internal/event"
)

func TestRenderTeX(t *testing.T) {
	start, end, holidays := fallTerm(t)
	holidays["Labor Day"] = event.Single(event.Date(2023, time.September, 4))

	tex, err := RenderTeX(Document{
		Start:    start,
		End:      end,
		Holidays: holidays,
		Calendars: []Calendar{
			{},
			{Pattern: MustPattern("MW")},
			{Pattern: MustPattern("TR"), Contents: `\caltext{8/29/2023}{Syllabus}`},
		},
	})
	if err != nil {
		t.Fatalf("RenderTeX() error: %v", err)
	}

	wants := []string{
		`\usepackage{termcal}`,
		`\newcommand*{\Holidays}{\Holiday{9/4/2023}{Labor Day}` + "\n",
		`\Holiday{11/22/2023}{Thanksgiving}`,
		`\Holiday{11/24/2023}{Thanksgiving}`,
		`\begin{calendar}{8/28/2023}{17}`,
		`\setlength{\calboxdepth}{0.35294117647058826in}`,
		`\calday[Monday]{\noclassday}`,
		"\\calday[Monday]{\\classday}\n\\skipday\n\\calday[Wednesday]{\\classday}\n\\skipday\n\\skipday\n\\skipday\\skipday",
		"\\skipday\n\\calday[Tuesday]{\\classday}\n\\skipday\n\\calday[Thursday]{\\classday}\n\\skipday\n\\skipday\\skipday",
		`\caltext{8/28/2023}{Classes Start}`,
		`\caltext{12/8/2023}{Classes End}`,
		`\caltext{8/29/2023}{Syllabus}`,
		`\end{document}`,
	}
	for _, want := range wants {
		if !strings.Contains(tex, want) {
			t.Errorf("RenderTeX() output missing %q", want)
		}
	}

	if n := strings.Count(tex, `\begin{calendar}`); n != 3 {
		t.Errorf("calendars = %d, want 3", n)
	}
	if n := strings.Count(tex, `\newpage`); n != 2 {
		t.Errorf("page breaks = %d, want 2", n)
	}
	if n := strings.Count(tex, `\Holiday{11/2`); n != 3 {
		t.Errorf("Thanksgiving days = %d, want 3 (inclusive range)", n)
	}
}

func TestRenderTeX_NoCalendars(t *testing.T) {
	start, end, holidays := fallTerm(t)
	if _, err := RenderTeX(Document{Start: start, End: end, Holidays: holidays}); err == nil {
		t.Error("RenderTeX() without calendars expected error, got nil")
	}
}

func TestEscapeTeX(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Labor Day", `Labor Day`},
		{"Labor\u00a0Day", `Labor~Day`},
		{"R&D 100%", `R\&D 100\%`},
		{"Mid-Term", `Mid{-}Term`},
		{`$x_1^2$`, `\$x\_1\^{}2\$`},
		{`{a}\b`, `\{a\}\textbackslash{}b`},
		{"a~b", `a\textasciitilde{}b`},
		{"[draft]", `{[}draft{]}`},
	}
	for _, tt := range tests {
		if got := EscapeTeX(tt.in); got != tt.want {
			t.Errorf("EscapeTeX(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCaltext(t *testing.T) {
	got := Caltext("caltext", event.Date(2024, time.January, 8), "Classes Begin")
	if want := `\caltext{1/8/2024}{Classes Begin}`; got != want {
		t.Errorf("Caltext() = %q, want %q", got, want)
	}
}
