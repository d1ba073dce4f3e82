package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/termcal/internal/event"
	"github.com/pfrederiksen/termcal/internal/logger"
)

const (
	CalendarURL = "https://www.svsu.edu/academicandstudentaffairs/calendar/academiccalendar/"
	UserAgent   = "termcal/1.0 (github.com/pfrederiksen/termcal)"
	Timeout     = 30 * time.Second
)

// Fetcher returns the calendar page HTML for a semester and year
type Fetcher interface {
	FetchCalendar(ctx context.Context, semester string, year int) ([]byte, error)
}

// HTTPFetcher fetches the registrar calendar over HTTP
type HTTPFetcher struct {
	client *http.Client
	url    string
}

// NewHTTPFetcher creates a fetcher for the given page URL.
// An empty URL means CalendarURL.
func NewHTTPFetcher(url string) *HTTPFetcher {
	if url == "" {
		url = CalendarURL
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: Timeout,
		},
		url: url,
	}
}

// URL returns the page the fetcher reads
func (f *HTTPFetcher) URL() string {
	return f.url
}

// FetchCalendar downloads the calendar page. The registrar publishes every
// semester on one page, so semester and year only appear in logs.
func (f *HTTPFetcher) FetchCalendar(ctx context.Context, semester string, year int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	logger.Debug("Fetching calendar page", logger.Fields{
		"url":      f.url,
		"semester": semester,
		"year":     year,
	})

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}
	return body, nil
}

// Extractor combines a Fetcher with the Adapter for the current page layout
type Extractor struct {
	fetcher Fetcher
	adapter Adapter
}

// NewExtractor creates an Extractor
func NewExtractor(fetcher Fetcher, adapter Adapter) *Extractor {
	return &Extractor{
		fetcher: fetcher,
		adapter: adapter,
	}
}

// Semester fetches the calendar page and returns the events of one semester
func (e *Extractor) Semester(ctx context.Context, semester string, year int) (event.Semester, error) {
	start := time.Now()
	body, err := e.fetcher.FetchCalendar(ctx, semester, year)
	logger.RecordTiming("scraper.fetch", time.Since(start))
	if err != nil {
		return nil, err
	}

	return e.Parse(bytes.NewReader(body), semester, year)
}

// Parse extracts one semester from an already fetched page
func (e *Extractor) Parse(r io.Reader, semester string, year int) (event.Semester, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	sem, err := e.adapter.Extract(doc, semester, year)
	if err != nil {
		return nil, err
	}

	logger.SetGauge("scraper.events", float64(len(sem)))
	logger.Debug("Extracted semester", logger.Fields{
		"adapter":  e.adapter.Name(),
		"semester": semester,
		"year":     year,
		"events":   len(sem),
	})
	return sem, nil
}
