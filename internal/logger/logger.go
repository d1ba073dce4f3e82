// Package logger writes termcal's diagnostics as JSON lines and keeps the
// counters and timings of one command run.
//
// Each line carries the time, the level, a message, and optionally fields
// and an error. Degraded results, such as a semester with no rows or lessons
// that did not fit the term, go through Warn instead of failing the command.
//
//	logger.Warn("Not enough lessons scheduled", logger.Fields{"day": "12/04/2023"})
//	logger.RecordTiming("scraper.fetch", time.Since(start))
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level orders log severities; a logger drops anything below its own
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
	return levelNames[l]
}

// MarshalText writes the level name, so entries read "level":"WARN"
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText accepts the names ParseLevel accepts
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel reads a level name in any case, e.g. "debug" or " WARN "
func ParseLevel(name string) (Level, error) {
	want := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range levelNames {
		if n == want {
			return Level(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", name)
}

// Fields are the structured details attached to an entry
type Fields map[string]interface{}

// Entry is one line of log output
type Entry struct {
	Time    time.Time `json:"time"`
	Level   Level     `json:"level"`
	Message string    `json:"msg"`
	Fields  Fields    `json:"fields,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// Logger encodes entries at or above its level to a writer
type Logger struct {
	level Level

	mu  sync.Mutex
	enc *json.Encoder
	out io.Writer
}

// New returns a logger writing to out. Commands print their results on
// stdout, so the CLI hands it stderr.
func New(level Level, out io.Writer) *Logger {
	return &Logger{level: level, enc: json.NewEncoder(out), out: out}
}

var std = New(LevelInfo, os.Stderr)

// SetDefault replaces the logger behind the package-level functions
func SetDefault(l *Logger) {
	std = l
}

func (l *Logger) enabled(level Level) bool {
	return level >= l.level
}

func (l *Logger) write(level Level, msg string, fields Fields, err error) {
	if !l.enabled(level) {
		return
	}
	e := Entry{Time: time.Now().UTC().Truncate(time.Second), Level: level, Message: msg, Fields: fields}
	if err != nil {
		e.Error = err.Error()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if encErr := l.enc.Encode(e); encErr != nil {
		// a field that cannot be encoded still leaves a readable line
		fmt.Fprintf(l.out, "%s %s %s (fields dropped: %v)\n", e.Time.Format(time.RFC3339), level, msg, encErr)
	}
}

func (l *Logger) Debug(msg string, fields Fields) { l.write(LevelDebug, msg, fields, nil) }
func (l *Logger) Info(msg string, fields Fields)  { l.write(LevelInfo, msg, fields, nil) }
func (l *Logger) Warn(msg string, fields Fields)  { l.write(LevelWarn, msg, fields, nil) }

// Error records a failure along with err
func (l *Logger) Error(msg string, fields Fields, err error) { l.write(LevelError, msg, fields, err) }

func Debug(msg string, fields Fields)            { std.Debug(msg, fields) }
func Info(msg string, fields Fields)             { std.Info(msg, fields) }
func Warn(msg string, fields Fields)             { std.Warn(msg, fields) }
func Error(msg string, fields Fields, err error) { std.Error(msg, fields, err) }

// Timing summarizes the durations recorded under one name
type Timing struct {
	Count   int    `json:"count"`
	Total   string `json:"total"`
	Average string `json:"average"`
	Min     string `json:"min"`
	Max     string `json:"max"`
}

type timing struct {
	count         int
	total, lo, hi time.Duration
}

func (t *timing) add(d time.Duration) {
	if t.count == 0 || d < t.lo {
		t.lo = d
	}
	if t.count == 0 || d > t.hi {
		t.hi = d
	}
	t.count++
	t.total += d
}

// Snapshot is a copy of a run's metrics
type Snapshot struct {
	Counters map[string]int64   `json:"counters"`
	Gauges   map[string]float64 `json:"gauges"`
	Timings  map[string]Timing  `json:"timings"`
}

// Metrics collects the counters, gauges and timings of a run.
// It is safe for concurrent use.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]float64
	timings  map[string]*timing
}

func NewMetrics() *Metrics {
	return &Metrics{
		counters: map[string]int64{},
		gauges:   map[string]float64{},
		timings:  map[string]*timing{},
	}
}

var run = NewMetrics()

// IncrCounter adds one to the named counter
func (m *Metrics) IncrCounter(name string) {
	m.mu.Lock()
	m.counters[name]++
	m.mu.Unlock()
}

// SetGauge stores the latest value of the named gauge
func (m *Metrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	m.gauges[name] = value
	m.mu.Unlock()
}

// RecordTiming folds d into the named timing
func (m *Metrics) RecordTiming(name string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.timings[name]
	if !ok {
		t = &timing{}
		m.timings[name] = t
	}
	t.add(d)
}

// Snapshot copies the current values
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		Counters: make(map[string]int64, len(m.counters)),
		Gauges:   make(map[string]float64, len(m.gauges)),
		Timings:  make(map[string]Timing, len(m.timings)),
	}
	for k, v := range m.counters {
		s.Counters[k] = v
	}
	for k, v := range m.gauges {
		s.Gauges[k] = v
	}
	for k, t := range m.timings {
		s.Timings[k] = Timing{
			Count:   t.count,
			Total:   t.total.String(),
			Average: (t.total / time.Duration(t.count)).String(),
			Min:     t.lo.String(),
			Max:     t.hi.String(),
		}
	}
	return s
}

func IncrCounter(name string)                   { run.IncrCounter(name) }
func SetGauge(name string, value float64)       { run.SetGauge(name, value) }
func RecordTiming(name string, d time.Duration) { run.RecordTiming(name, d) }

// RunMetrics returns the metrics of the current run
func RunMetrics() Snapshot { return run.Snapshot() }
