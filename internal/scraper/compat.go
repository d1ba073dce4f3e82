package scraper

import (
	"github.com/pfrederiksen/termcal/internal/event"
	"github.com/pfrederiksen/termcal/internal/logger"
)

// FixTruncatedRange repairs ranges the registrar writes with the end month left
// out when it differs from the start month, e.g. "Aug 29-2" meaning
// August 29 to September 2. The parser reads that as August 29 of the
// previous year through August 2, so the start gets one year and the end one
// month. Only that exact shape is touched: start one year before end, same
// month, smaller end day.
//
// A genuine year-long range written with explicit years has the same shape
// and would be rewritten too. The page has never listed one.
func FixTruncatedRange(r event.DateRange) event.DateRange {
	if !r.HasEnd() {
		return r
	}
	if r.Start.Year()+1 != r.End.Year() || r.Start.Month() != r.End.Month() || r.End.Day() >= r.Start.Day() {
		return r
	}

	logger.Debug("Repairing truncated date range", logger.Fields{"range": r.String()})
	return event.DateRange{
		Start: r.Start.AddDate(1, 0, 0),
		End:   r.End.AddDate(0, 1, 0),
	}
}
