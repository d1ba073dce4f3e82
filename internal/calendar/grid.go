package calendar

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pfrederiksen/termcal/internal/event"
)

// TotalWidth is the printable calendar height in inches shared by all week rows
const TotalWidth = 6.0

// CellKind tells how a calendar day is marked
type CellKind int

const (
	// CellBlank is a day outside the term
	CellBlank CellKind = iota
	// CellClass is a class session placeholder
	CellClass
	// CellHoliday is a suppressed day inside a holiday interval
	CellHoliday
)

func (k CellKind) String() string {
	switch k {
	case CellClass:
		return "class"
	case CellHoliday:
		return "holiday"
	default:
		return "blank"
	}
}

// MarshalJSON renders the kind by name
func (k CellKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Cell is one active weekday of the grid
type Cell struct {
	Date  time.Time `json:"date"`
	Kind  CellKind  `json:"kind"`
	Label string    `json:"label,omitempty"` // holiday name
}

// Week is one grid row
type Week struct {
	Monday time.Time `json:"monday"`
	Cells  []Cell    `json:"cells"`
}

// Grid is the day-by-day layout of a term
type Grid struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Monday    time.Time `json:"monday"`
	Weeks     int       `json:"weeks"`
	CellWidth float64   `json:"cell_width"`
	Pattern   string    `json:"pattern"`
	Rows      []Week    `json:"rows"`
}

// MondayOf returns the Monday of the week containing day
func MondayOf(day time.Time) time.Time {
	d := event.Day(day)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// Weeks returns the number of grid rows for a term: the days from start to
// end in whole weeks, rounded up, plus two rows of padding.
func Weeks(start, end time.Time) int {
	days := int(event.Day(end).Sub(event.Day(start)).Hours() / 24)
	return (days+6)/7 + 2
}

// CellWidth divides TotalWidth evenly between the weeks
func CellWidth(weeks int) float64 {
	return TotalWidth / float64(weeks)
}

// BuildGrid lays out the term from start to end for the active weekdays.
// A day inside any holiday interval, ends included, becomes a holiday cell
// named after that holiday; it still takes its slot.
func BuildGrid(start, end time.Time, pattern Pattern, holidays event.HolidaySet) (*Grid, error) {
	start, end = event.Day(start), event.Day(end)
	if end.Before(start) {
		return nil, fmt.Errorf("term ends %s before it starts %s",
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}

	weeks := Weeks(start, end)
	g := &Grid{
		Start:     start,
		End:       end,
		Monday:    MondayOf(start),
		Weeks:     weeks,
		CellWidth: CellWidth(weeks),
		Pattern:   pattern.String(),
		Rows:      make([]Week, 0, weeks),
	}

	for w := 0; w < weeks; w++ {
		monday := g.Monday.AddDate(0, 0, 7*w)
		row := Week{Monday: monday, Cells: make([]Cell, 0, len(pattern))}

		for _, wd := range pattern {
			day := monday.AddDate(0, 0, (int(wd)+6)%7)
			cell := Cell{Date: day, Kind: CellClass}

			switch {
			case day.Before(start) || day.After(end):
				cell.Kind = CellBlank
			default:
				if name, ok := holidays.HolidayName(day); ok {
					cell.Kind = CellHoliday
					cell.Label = name
				}
			}
			row.Cells = append(row.Cells, cell)
		}
		g.Rows = append(g.Rows, row)
	}

	return g, nil
}

// Cell returns the cell for day, if day is an active weekday of the grid
func (g *Grid) Cell(day time.Time) (Cell, bool) {
	day = event.Day(day)
	for _, row := range g.Rows {
		for _, c := range row.Cells {
			if c.Date.Equal(day) {
				return c, true
			}
		}
	}
	return Cell{}, false
}

// ClassDays lists the class cells in order
func (g *Grid) ClassDays() []time.Time {
	days := make([]time.Time, 0)
	for _, row := range g.Rows {
		for _, c := range row.Cells {
			if c.Kind == CellClass {
				days = append(days, c.Date)
			}
		}
	}
	return days
}

// WriteText prints the grid one week per line for a quick look in a terminal
func WriteText(w io.Writer, g *Grid) error {
	fmt.Fprintf(w, "Term %s to %s, %s, %d weeks\n",
		g.Start.Format("01/02/2006"), g.End.Format("01/02/2006"), g.Pattern, g.Weeks)

	for _, row := range g.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, c := range row.Cells {
			mark := "-"
			switch c.Kind {
			case CellClass:
				mark = "class"
			case CellHoliday:
				mark = c.Label
			}
			cells = append(cells, fmt.Sprintf("%s %s", c.Date.Format("Mon 01/02"), mark))
		}
		if _, err := fmt.Fprintf(w, "%s | %s\n", row.Monday.Format("01/02"), strings.Join(cells, " | ")); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON prints the grids as an indented JSON array
func WriteJSON(w io.Writer, grids ...*Grid) error {
	if grids == nil {
		grids = []*Grid{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(grids)
}
