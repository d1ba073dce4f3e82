package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/termcal/internal/event"
)

func TestSaveAndLoadHolidays(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := New(tmpDir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	recess, _ := event.NewRange(event.Date(2023, time.November, 22), event.Date(2023, time.November, 26))
	set := event.HolidaySet{
		event.ClassesBegin:    event.Single(event.Date(2023, time.August, 28)),
		event.ClassesEnd:      event.Single(event.Date(2023, time.December, 8)),
		"Thanksgiving Recess": recess,
	}

	if err := store.SaveHolidays(set, ""); err != nil {
		t.Fatalf("SaveHolidays() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, DefaultHolidayFile))
	if err != nil {
		t.Fatalf("holiday file not written: %v", err)
	}
	if !strings.Contains(string(data), "Classes Begin:") {
		t.Errorf("holiday file missing Classes Begin:\n%s", data)
	}

	loaded, err := store.LoadHolidays("")
	if err != nil {
		t.Fatalf("LoadHolidays() error: %v", err)
	}
	if len(loaded) != len(set) {
		t.Fatalf("LoadHolidays() returned %d entries, want %d", len(loaded), len(set))
	}
	got := loaded["Thanksgiving Recess"]
	if !got.Start.Equal(recess.Start) || !got.End.Equal(recess.End) {
		t.Errorf("Thanksgiving Recess = %v, want %v", got, recess)
	}

	entries, _ := os.ReadDir(tmpDir)
	if len(entries) != 1 {
		t.Errorf("data directory holds %d files, want only the holiday file", len(entries))
	}
}

func TestSaveHolidays_Overwrites(t *testing.T) {
	store, _ := New(t.TempDir())

	first := event.HolidaySet{"Labor Day": event.Single(event.Date(2023, time.September, 4))}
	second := event.HolidaySet{"Fall Break": event.Single(event.Date(2023, time.October, 16))}

	if err := store.SaveHolidays(first, "term.yaml"); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveHolidays(second, "term.yaml"); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadHolidays("term.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := loaded["Labor Day"]; ok || len(loaded) != 1 {
		t.Errorf("LoadHolidays() = %v, want only Fall Break", loaded)
	}
}

func TestLoadHolidays_Errors(t *testing.T) {
	tmpDir := t.TempDir()
	store, _ := New(tmpDir)

	if _, err := store.LoadHolidays("missing.yaml"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadHolidays(missing) error = %v, want ErrNotExist", err)
	}

	bad := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("Labor Day:\n  Start: first monday\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.LoadHolidays("bad.yaml"); err == nil {
		t.Error("LoadHolidays(bad) expected error, got nil")
	}

	empty := filepath.Join(tmpDir, "empty.yaml")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	set, err := store.LoadHolidays(empty)
	if err != nil || set == nil {
		t.Errorf("LoadHolidays(empty) = %v, %v; want empty set", set, err)
	}
}

func TestPath(t *testing.T) {
	store, _ := New(t.TempDir())

	abs := filepath.Join(os.TempDir(), "elsewhere.yaml")
	if got := store.Path(abs); got != abs {
		t.Errorf("Path(%q) = %q, want unchanged", abs, got)
	}
	if got := store.Path("sched.tex"); got != filepath.Join(store.dataDir, "sched.tex") {
		t.Errorf("Path(sched.tex) = %q", got)
	}

	home, err := os.UserHomeDir()
	if err == nil {
		if got := store.Path("~/x.yaml"); got != filepath.Join(home, "x.yaml") {
			t.Errorf("Path(~/x.yaml) = %q", got)
		}
	}
}

func TestReadWriteFile(t *testing.T) {
	store, _ := New(t.TempDir())

	if err := store.WriteFile("out/sched.tex", []byte(`\begin{document}`)); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	data, err := store.ReadFile("out/sched.tex")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != `\begin{document}` {
		t.Errorf("ReadFile() = %q", data)
	}
}
