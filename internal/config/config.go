// Package config loads termcal's YAML configuration file.
//
// Every setting has a default, so a missing file is not an error. Command
// line flags override the loaded values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/pfrederiksen/termcal/internal/calendar"
	"github.com/pfrederiksen/termcal/internal/logger"
	"github.com/pfrederiksen/termcal/internal/scraper"
	"github.com/pfrederiksen/termcal/internal/storage"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where termcal looks for its configuration
const DefaultPath = "~/.config/termcal/config.yaml"

// ClassConfig describes the course section used by the schedule command.
type ClassConfig struct {
	// Course labels exported sessions, e.g. "MATH 161".
	Course string `yaml:"course"`
	// Pattern is the meeting pattern, e.g. "MW" or "TR".
	Pattern string `yaml:"pattern"`
	// Hour and Minute give the start time on a 24-hour clock.
	Hour   int `yaml:"hour"`
	Minute int `yaml:"minute"`
	// Length is the session length in minutes.
	Length int `yaml:"length"`
	// Weeks bounds the term when the holiday file has no Classes End.
	Weeks int    `yaml:"weeks"`
	Place string `yaml:"place,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	// URL is the registrar's academic calendar page.
	URL string `yaml:"url"`
	// Adapter names the page layout used for extraction.
	Adapter string `yaml:"adapter"`
	// Semester is scraped when no semester argument is given.
	Semester string `yaml:"semester"`
	// Year is the calendar year of the semester; 0 means the current year.
	Year int `yaml:"year"`

	// DataDir holds holiday files; HolidayFile is resolved against it.
	DataDir     string `yaml:"data_dir"`
	HolidayFile string `yaml:"holiday_file"`

	// Unwanted lists events that are not written to the holiday file.
	Unwanted []string `yaml:"unwanted"`

	// Patterns lists the calendars drawn by the render command. The empty
	// pattern is the all-days overview.
	Patterns []string `yaml:"patterns"`

	// Timezone is the IANA zone of class start times.
	Timezone string `yaml:"timezone"`

	// LogLevel is the minimum level logged: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	Class ClassConfig `yaml:"class"`
}

var (
	defaultUnwanted = []string{"Commencement", "Classes Resume"}
	defaultPatterns = []string{"", "MW", "TR"}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		URL:         scraper.CalendarURL,
		Adapter:     scraper.DefaultAdapter,
		Semester:    "Fall",
		DataDir:     ".",
		HolidayFile: storage.DefaultHolidayFile,
		Unwanted:    append([]string(nil), defaultUnwanted...),
		Patterns:    append([]string(nil), defaultPatterns...),
		Timezone:    "America/Detroit",
		LogLevel:    "info",
		Class: ClassConfig{
			Pattern: "MW",
			Hour:    10,
			Minute:  30,
			Length:  110,
			Weeks:   14,
		},
	}
}

// Normalize fills in zero values with defaults.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.URL == "" {
		c.URL = d.URL
	}
	if c.Adapter == "" {
		c.Adapter = d.Adapter
	}
	if c.Semester == "" {
		c.Semester = d.Semester
	}
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.HolidayFile == "" {
		c.HolidayFile = d.HolidayFile
	}
	if c.Unwanted == nil {
		c.Unwanted = d.Unwanted
	}
	if c.Patterns == nil {
		c.Patterns = d.Patterns
	}
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Class.Pattern == "" {
		c.Class.Pattern = d.Class.Pattern
	}
	if c.Class.Length <= 0 {
		c.Class.Length = d.Class.Length
	}
	if c.Class.Weeks <= 0 {
		c.Class.Weeks = d.Class.Weeks
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if _, err := scraper.LookupAdapter(c.Adapter); err != nil {
		return err
	}
	for _, p := range c.Patterns {
		if _, err := calendar.ParsePattern(p); err != nil {
			return fmt.Errorf("patterns: %w", err)
		}
	}
	if _, err := calendar.ParsePattern(c.Class.Pattern); err != nil {
		return fmt.Errorf("class.pattern: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// SemesterYear returns Year, or the current year when it is unset.
func (c *Config) SemesterYear(now time.Time) int {
	if c.Year > 0 {
		return c.Year
	}
	return now.Year()
}

// Location loads the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SessionLength returns the class length as a duration.
func (c ClassConfig) SessionLength() time.Duration {
	return time.Duration(c.Length) * time.Minute
}

// Load reads the configuration at path. An empty path or a missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
