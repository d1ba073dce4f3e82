// Package calendar lays out term calendars and renders them for the LaTeX termcal
// package and for iCalendar clients.
//
// A Grid holds one row per week, starting on the Monday of the first class week,
// with one cell per active weekday. Cells are class days, holidays, or blank days
// outside the term. RenderTeX turns a Document (term bounds, holidays and one or more
// weekday patterns) into a complete LaTeX file; GenerateICS turns dated sessions into
// an .ics feed.
package calendar
