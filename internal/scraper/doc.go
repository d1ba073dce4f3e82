// Package scraper fetches the registrar's academic calendar page and extracts the
// dated events of one semester.
//
// Fetching and extraction are separate: a Fetcher returns the raw page for a
// semester and year, and an Adapter knows how one revision of the page lays out its
// tables. The registrar has reorganized the page several times, so each layout is a
// named adapter and callers only depend on the Adapter interface. Date text found in
// the tables is parsed with event.ParseRange.
package scraper
