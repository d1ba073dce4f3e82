package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pfrederiksen/termcal/internal/calendar"
	"github.com/pfrederiksen/termcal/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatTeX  OutputFormat = "tex"
)

// parseFormat accepts one of the allowed formats, case-insensitively
func parseFormat(name string, allowed ...OutputFormat) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(name)))
	names := make([]string, 0, len(allowed))
	for _, f := range allowed {
		if f == format {
			return format, nil
		}
		names = append(names, string(f))
	}
	return "", usagef("invalid format: %s (must be one of %s)", name, strings.Join(names, ", "))
}

// EntryJSON is the JSON form of one semester event
type EntryJSON struct {
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
	Text  string `json:"text"`
}

// WriteEntries writes semester events in the specified format
func WriteEntries(w io.Writer, entries []event.Entry, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeEntriesJSON(w, entries)
	case FormatText:
		return writeEntriesText(w, entries)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeEntriesText prints one "name: range" line per event
func writeEntriesText(w io.Writer, entries []event.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No events found.")
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s: %s\n", e.Name, e.Dates); err != nil {
			return err
		}
	}
	return nil
}

func writeEntriesJSON(w io.Writer, entries []event.Entry) error {
	out := make([]EntryJSON, 0, len(entries))
	for _, e := range entries {
		item := EntryJSON{
			Name:  e.Name,
			Start: e.Dates.Start.Format(time.DateOnly),
			Text:  e.Dates.String(),
		}
		if e.Dates.HasEnd() {
			item.End = e.Dates.End.Format(time.DateOnly)
		}
		out = append(out, item)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// writeGrids writes the grid of every calendar in the document
func writeGrids(w io.Writer, doc calendar.Document, format OutputFormat) error {
	grids := make([]*calendar.Grid, 0, len(doc.Calendars))
	for _, cal := range doc.Calendars {
		g, err := calendar.BuildGrid(doc.Start, doc.End, cal.Pattern, doc.Holidays)
		if err != nil {
			return err
		}
		grids = append(grids, g)
	}

	if format == FormatJSON {
		return calendar.WriteJSON(w, grids...)
	}

	for i, g := range grids {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := calendar.WriteText(w, g); err != nil {
			return err
		}
	}
	return nil
}
