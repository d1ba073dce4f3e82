package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/termcal/internal/calendar"
	"github.com/pfrederiksen/termcal/internal/event"
	"github.com/pfrederiksen/termcal/internal/exams"
	"github.com/pfrederiksen/termcal/internal/filter"
	"github.com/pfrederiksen/termcal/internal/logger"
	"github.com/pfrederiksen/termcal/internal/schedule"
	"github.com/pfrederiksen/termcal/internal/scraper"
	"github.com/spf13/cobra"
)

// semesterFlags are shared by the commands that scrape the registrar
type semesterFlags struct {
	year    int
	adapter string
	url     string
}

func (f *semesterFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.year, "year", 0, "Calendar year of the semester (default: config, then current year)")
	cmd.Flags().StringVar(&f.adapter, "adapter", "", "Page layout adapter: "+strings.Join(scraper.AdapterNames(), ", "))
	cmd.Flags().StringVar(&f.url, "url", "", "Academic calendar URL (overrides config)")
}

func (a *app) scrape(cmd *cobra.Command, args []string, f *semesterFlags) (event.Semester, error) {
	semester := a.cfg.Semester
	if len(args) > 0 {
		semester = args[0]
	}
	year := f.year
	if year == 0 {
		year = a.cfg.SemesterYear(a.now())
	}

	ex, err := a.extractor(f.adapter, f.url)
	if err != nil {
		return nil, err
	}

	logger.Debug("Scraping semester", logger.Fields{"semester": semester, "year": year})
	sem, err := ex.Semester(cmd.Context(), semester, year)
	if err != nil {
		return nil, fmt.Errorf("extracting %s %d: %w", semester, year, err)
	}
	return sem, nil
}

func newFetchCmd(a *app) *cobra.Command {
	var (
		flags  semesterFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "fetch [semester]",
		Short: "Scrape a semester's dates into a holiday file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sem, err := a.scrape(cmd, args, &flags)
			if err != nil {
				return err
			}

			set := event.FromSemester(sem, a.cfg.Unwanted)
			if output == "" {
				output = a.cfg.HolidayFile
			}
			if len(set) == 0 {
				return fmt.Errorf("%w in semester; %s left unchanged", event.ErrNoEvents, a.store.Path(output))
			}
			if err := a.store.SaveHolidays(set, output); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d events to %s\n", len(set), a.store.Path(output))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Holiday file to write (default: config holiday_file)")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var (
		flags   semesterFlags
		format  string
		order   string
		during  string
		include []string
		exclude []string
	)

	cmd := &cobra.Command{
		Use:   "list [semester]",
		Short: "Print a semester's events sorted by date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := parseFormat(format, FormatText, FormatJSON)
			if err != nil {
				return err
			}
			sortOrder, err := parseSortOrder(order)
			if err != nil {
				return err
			}

			sem, err := a.scrape(cmd, args, &flags)
			if err != nil {
				return err
			}

			f := filter.NewFilter()
			f.Names = include
			f.Exclude = exclude
			if during != "" {
				year := flags.year
				if year == 0 {
					year = a.cfg.SemesterYear(a.now())
				}
				f.DateFrom, f.DateTo, err = filter.ParseWindow(during, year)
				if err != nil {
					return usagef("--during: %v", err)
				}
			}
			logger.Debug("Filtering events", logger.Fields{"filter": f.String()})

			entries := f.Apply(sem.Sorted())
			sortEntries(entries, sortOrder)
			return WriteEntries(cmd.OutOrStdout(), entries, outFormat)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&order, "sort", "date", "Sort order: date or name")
	cmd.Flags().StringVar(&during, "during", "", "Only events overlapping a window, e.g. November or \"Oct 1-15\"")
	cmd.Flags().StringSliceVar(&include, "name", nil, "Only events whose name contains one of these")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Drop events whose name contains one of these")
	return cmd
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		holidayFile string
		patterns    []string
		format      string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a holiday file as a termcal LaTeX calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := parseFormat(format, FormatTeX, FormatText, FormatJSON)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("pattern") {
				patterns = a.cfg.Patterns
			}
			if holidayFile == "" {
				holidayFile = a.cfg.HolidayFile
			}

			set, err := a.store.LoadHolidays(holidayFile)
			if err != nil {
				return err
			}
			start, end, holidays, err := set.Term()
			if err != nil {
				return fmt.Errorf("%s: %w", a.store.Path(holidayFile), err)
			}

			doc := calendar.Document{Start: start, End: end, Holidays: holidays}
			for _, p := range patterns {
				pattern, err := calendar.ParsePattern(p)
				if err != nil {
					return usagef("%v", err)
				}
				doc.Calendars = append(doc.Calendars, calendar.Calendar{Pattern: pattern})
			}
			if len(doc.Calendars) == 0 {
				return usagef("no calendar patterns to render")
			}

			var buf bytes.Buffer
			if outFormat == FormatTeX {
				tex, err := calendar.RenderTeX(doc)
				if err != nil {
					return err
				}
				buf.WriteString(tex)
			} else if err := writeGrids(&buf, doc, outFormat); err != nil {
				return err
			}

			return a.writeOutput(cmd.OutOrStdout(), output, buf.Bytes())
		},
	}

	cmd.Flags().StringVar(&holidayFile, "holidays", "", "Holiday file to read (default: config holiday_file)")
	cmd.Flags().StringSliceVarP(&patterns, "pattern", "p", nil, "Meeting patterns to draw, e.g. MW,TR (empty draws the overview)")
	cmd.Flags().StringVar(&format, "format", "tex", "Output format: tex, text or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func newScheduleCmd(a *app) *cobra.Command {
	var (
		holidayFile string
		pattern     string
		startText   string
		weeks       int
		output      string
		icsFile     string
		course      string
		hour        int
		minute      int
		length      int
	)

	cmd := &cobra.Command{
		Use:   "schedule LESSONS.md",
		Short: "Place lessons on the class days of a term",
		Long: `schedule reads a markdown lesson file, where every "## " heading starts a
lesson, and assigns the lessons in order to the class days of the term,
skipping holidays. It writes a termcal LaTeX schedule and, with --ics, an
iCalendar file of the class sessions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			class := a.cfg.Class
			flags := cmd.Flags()
			if flags.Changed("pattern") {
				class.Pattern = pattern
			}
			if flags.Changed("weeks") {
				class.Weeks = weeks
			}
			if flags.Changed("course") {
				class.Course = course
			}
			if flags.Changed("hour") {
				class.Hour = hour
			}
			if flags.Changed("minute") {
				class.Minute = minute
			}
			if flags.Changed("length") {
				class.Length = length
			}
			if holidayFile == "" {
				holidayFile = a.cfg.HolidayFile
			}

			meets, err := calendar.ParsePattern(class.Pattern)
			if err != nil {
				return usagef("%v", err)
			}
			var start time.Time
			if startText != "" {
				start, err = event.ParseDate(startText, a.now().Year())
				if err != nil {
					return usagef("--start: %v", err)
				}
			}

			set, err := a.store.LoadHolidays(holidayFile)
			if err != nil {
				return err
			}
			term, err := schedule.NewTerm(set, meets, start, class.Weeks)
			if err != nil {
				return fmt.Errorf("%s: %w", a.store.Path(holidayFile), err)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening lessons: %w", err)
			}
			defer f.Close()
			lessons, err := schedule.ReadLessons(f)
			if err != nil {
				return err
			}

			plan, err := term.Build(lessons)
			if err != nil {
				return err
			}
			logger.Info("Lessons scheduled", logger.Fields{
				"lessons":  len(lessons),
				"slots":    len(plan.Slots),
				"dropped":  len(plan.Dropped),
				"warnings": len(plan.Warnings),
			})

			tex, err := term.RenderTeX(plan)
			if err != nil {
				return err
			}
			if err := a.writeOutput(cmd.OutOrStdout(), output, []byte(tex)); err != nil {
				return err
			}

			if icsFile == "" {
				return nil
			}
			loc, err := a.cfg.Location()
			if err != nil {
				return err
			}
			feed, err := schedule.ExportICS(plan, calendar.SessionOptions{
				Course:   class.Course,
				Hour:     class.Hour,
				Minute:   class.Minute,
				Length:   class.SessionLength(),
				Location: loc,
				Place:    class.Place,
			})
			if err != nil {
				return fmt.Errorf("exporting sessions: %w", err)
			}
			return a.writeOutput(cmd.OutOrStdout(), icsFile, []byte(feed))
		},
	}

	cmd.Flags().StringVar(&holidayFile, "holidays", "", "Holiday file to read (default: config holiday_file)")
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "Meeting pattern, e.g. MW or TR (default: config class.pattern)")
	cmd.Flags().StringVar(&startText, "start", "", "First class day when the holiday file has no Classes Begin")
	cmd.Flags().IntVar(&weeks, "weeks", 0, "Term length in weeks when the holiday file has no Classes End")
	cmd.Flags().StringVarP(&output, "output", "o", "sched.tex", "LaTeX output file (- for stdout)")
	cmd.Flags().StringVar(&icsFile, "ics", "", "Also write the sessions as an iCalendar file")
	cmd.Flags().StringVar(&course, "course", "", "Course name for session titles")
	cmd.Flags().IntVar(&hour, "hour", 0, "Class start hour, 24-hour clock")
	cmd.Flags().IntVar(&minute, "minute", 0, "Class start minute")
	cmd.Flags().IntVar(&length, "length", 0, "Class length in minutes")
	return cmd
}

func newExamCmd(a *app) *cobra.Command {
	var tableFile string

	cmd := &cobra.Command{
		Use:     "exam PATTERN TIME",
		Short:   "Look up the final exam slot for a class",
		Example: "  termcal exam TR 10:30\n  termcal exam MW 19",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				exam exams.Exam
				err  error
			)
			if tableFile == "" {
				exam, err = exams.Lookup(args[0], args[1])
			} else {
				exam, err = a.lookupExam(tableFile, args[0], args[1])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s at %s: %s\n", strings.ToUpper(args[0]), args[1], exam)
			return nil
		},
	}

	cmd.Flags().StringVar(&tableFile, "table", "", "Exam table YAML file (default: built-in table)")
	return cmd
}

func (a *app) lookupExam(tableFile, days, start string) (exams.Exam, error) {
	data, err := a.store.ReadFile(tableFile)
	if err != nil {
		return exams.Exam{}, err
	}
	table, err := exams.Parse(data)
	if err != nil {
		return exams.Exam{}, err
	}
	return table.Lookup(days, start)
}
