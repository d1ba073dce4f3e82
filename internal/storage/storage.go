package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/termcal/internal/event"
	"gopkg.in/yaml.v3"
)

// DefaultHolidayFile is the holiday file name used when none is given
const DefaultHolidayFile = "holidays.yaml"

// Storage handles persistence of holiday files
type Storage struct {
	dataDir string
}

// New creates a new Storage instance rooted at dataDir
func New(dataDir string) (*Storage, error) {
	if dataDir == "" {
		dataDir = "."
	}

	dataDir, err := expandHome(dataDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Path resolves a file name against the data directory.
// Absolute paths and ~/ paths are used as given.
func (s *Storage) Path(name string) string {
	if name == "" {
		name = DefaultHolidayFile
	}
	if expanded, err := expandHome(name); err == nil {
		name = expanded
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dataDir, name)
}

// LoadHolidays reads a holiday file
func (s *Storage) LoadHolidays(name string) (event.HolidaySet, error) {
	path := s.Path(name)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading holiday file: %w", err)
	}

	var set event.HolidaySet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing holiday file %s: %w", path, err)
	}

	if set == nil {
		set = make(event.HolidaySet)
	}

	return set, nil
}

// SaveHolidays writes a holiday file, replacing any previous content.
// The data goes to a temporary file in the same directory that is then
// renamed over the target.
func (s *Storage) SaveHolidays(set event.HolidaySet, name string) error {
	path := s.Path(name)
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating holiday directory: %w", err)
	}

	data, err := yaml.Marshal(set)
	if err != nil {
		return fmt.Errorf("encoding holidays: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".holidays-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing holiday file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing holiday file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing holiday file: %w", err)
	}

	return nil
}

// ReadFile reads any file resolved against the data directory
func (s *Storage) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// WriteFile writes any file resolved against the data directory
func (s *Storage) WriteFile(name string, data []byte) error {
	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// expandHome replaces a leading ~/ with the home directory
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
