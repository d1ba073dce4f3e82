package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/termcal/internal/event"
)

// TeXDate is the date form termcal macros expect, e.g. 8/28/2023
const TeXDate = "1/2/2006"

const preamble = `\documentclass[10pt,letterpaper]{article}
\usepackage[left=.8in, right=.8in, top=.7in, bottom=.6in]{geometry}
\usepackage{fontspec}
\setmainfont[Ligatures=TeX]{Vollkorn}
\usepackage{termcal}
\pagestyle{empty}
\newcommand*{\Holiday}[2]{%
\options{#1}{\noclassday}
\caltext{#1}{#2}
}
`

var weekdayNames = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// Calendar is one calendar environment of a Document
type Calendar struct {
	// Pattern selects the class weekdays; an empty pattern draws every
	// weekday as a no-class day, which gives a plain term overview.
	Pattern Pattern
	// Contents is extra TeX placed inside the environment, such as
	// \caltext lines with lesson titles. It is not escaped.
	Contents string
}

// Document is a complete termcal LaTeX file
type Document struct {
	Start     time.Time
	End       time.Time
	Holidays  event.HolidaySet
	Calendars []Calendar
}

// RenderTeX renders the document. Each calendar starts on the Monday of the
// term's first week, sized by Weeks and CellWidth, and marks the first and
// last class days. Holidays are defined once in the preamble as \Holidays.
func RenderTeX(doc Document) (string, error) {
	if len(doc.Calendars) == 0 {
		return "", fmt.Errorf("document has no calendars")
	}

	var tex strings.Builder
	tex.WriteString(preamble)
	tex.WriteString(HolidayMacros(doc.Holidays))
	tex.WriteString(`\begin{document}` + "\n")

	for i, cal := range doc.Calendars {
		grid, err := BuildGrid(doc.Start, doc.End, cal.Pattern, doc.Holidays)
		if err != nil {
			return "", err
		}
		if i > 0 {
			tex.WriteString(`\newpage` + "\n")
		}
		tex.WriteString(calendarEnv(grid, cal))
	}

	tex.WriteString(`\end{document}` + "\n")
	return tex.String(), nil
}

// HolidayMacros defines \Holidays with one \Holiday line per holiday day
func HolidayMacros(holidays event.HolidaySet) string {
	var b strings.Builder
	b.WriteString(`\newcommand*{\Holidays}{`)
	for _, h := range holidays.Sorted() {
		for _, day := range h.Dates.Days() {
			b.WriteString(Caltext("Holiday", day, h.Name))
			b.WriteString("\n")
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// Caltext renders a dated termcal macro such as \caltext{8/28/2023}{text}.
// The text is escaped.
func Caltext(macro string, day time.Time, text string) string {
	return `\` + macro + "{" + day.Format(TeXDate) + "}{" + EscapeTeX(text) + "}"
}

func calendarEnv(g *Grid, cal Calendar) string {
	lines := []string{
		`\begin{center}`,
		fmt.Sprintf(`\begin{calendar}{%s}{%d}`, g.Monday.Format(TeXDate), g.Weeks),
		fmt.Sprintf(`\setlength{\calboxdepth}{%vin}`, g.CellWidth),
		calDays(cal.Pattern),
		Caltext("caltext", g.Start, "Classes Start"),
		Caltext("caltext", g.End, "Classes End"),
		`\Holidays` + "\n",
		cal.Contents,
		`\end{calendar}`,
		`\end{center}`,
	}
	return strings.Join(lines, "\n") + "\n"
}

// calDays declares the week layout: \calday for class days, \skipday otherwise
func calDays(p Pattern) string {
	var b strings.Builder
	for _, wd := range weekdayNames {
		weekend := wd == time.Saturday || wd == time.Sunday
		switch {
		case len(p) == 0 && !weekend:
			fmt.Fprintf(&b, `\calday[%s]{\noclassday}`+"\n", wd)
		case p.Has(wd):
			fmt.Fprintf(&b, `\calday[%s]{\classday}`+"\n", wd)
		case weekend:
			b.WriteString(`\skipday`)
		default:
			b.WriteString(`\skipday` + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

var texEscaper = strings.NewReplacer(
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\^{}`,
	`\`, `\textbackslash{}`,
	`-`, `{-}`,
	`[`, `{[}`,
	`]`, `{]}`,
	"\n", `\newline%`+"\n",
	"\u00a0", `~`,
)

// EscapeTeX escapes LaTeX special characters in plain text
func EscapeTeX(s string) string {
	return texEscaper.Replace(s)
}
