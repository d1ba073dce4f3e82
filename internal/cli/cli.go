package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pfrederiksen/termcal/internal/config"
	"github.com/pfrederiksen/termcal/internal/logger"
	"github.com/pfrederiksen/termcal/internal/scraper"
	"github.com/pfrederiksen/termcal/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// app holds the state shared by all commands of one invocation
type app struct {
	configPath string
	dataDir    string
	logLevel   string
	verbose    bool

	cfg     *config.Config
	store   *storage.Storage
	fetcher scraper.Fetcher // nil means HTTP against cfg.URL
	now     func() time.Time
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{now: time.Now})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "termcal",
		Short: "Scrape academic calendar dates and typeset term calendars",
		Long: `termcal extracts semester dates from the registrar's academic calendar,
saves them to a holiday file, and turns holiday files into termcal LaTeX
calendars and class schedules.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.finish,
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "Configuration file")
	cmd.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "Directory for holiday files (overrides config)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Minimum log level: debug, info, warn or error (overrides config)")
	cmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Enable debug logging (same as --log-level debug)")

	cmd.AddCommand(
		newFetchCmd(a),
		newListCmd(a),
		newRenderCmd(a),
		newScheduleCmd(a),
		newExamCmd(a),
	)

	return cmd
}

// setup loads the configuration and prepares logging and storage
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.verbose {
		cfg.LogLevel = logger.LevelDebug.String()
	}
	a.cfg = cfg

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return usagef("--log-level: %v", err)
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	a.store = store

	logger.Debug("Configuration loaded", logger.Fields{
		"config":   a.configPath,
		"data_dir": cfg.DataDir,
		"adapter":  cfg.Adapter,
	})
	return nil
}

// finish dumps the run metrics at debug level
func (a *app) finish(cmd *cobra.Command, args []string) error {
	logger.Debug("Run metrics", logger.Fields{"metrics": logger.RunMetrics()})
	return nil
}

func (a *app) extractor(adapterName, url string) (*scraper.Extractor, error) {
	if adapterName == "" {
		adapterName = a.cfg.Adapter
	}
	adapter, err := scraper.LookupAdapter(adapterName)
	if err != nil {
		return nil, err
	}

	fetcher := a.fetcher
	if fetcher == nil {
		if url == "" {
			url = a.cfg.URL
		}
		page := scraper.NewHTTPFetcher(url)
		logger.Debug("Using calendar page", logger.Fields{"url": page.URL(), "adapter": adapter.Name()})
		fetcher = page
	}
	return scraper.NewExtractor(fetcher, adapter), nil
}

// writeOutput writes data to the named file, or to w when name is "" or "-"
func (a *app) writeOutput(w io.Writer, name string, data []byte) error {
	if name == "" || name == "-" {
		_, err := w.Write(data)
		return err
	}
	if err := a.store.WriteFile(name, data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	logger.Info("Wrote file", logger.Fields{"path": a.store.Path(name), "bytes": len(data)})
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var usage *usageError
		if errors.As(err, &usage) {
			fmt.Fprintln(os.Stderr, "Run 'termcal --help' for usage.")
		}
		os.Exit(ExitError)
	}
}

// usageError marks errors caused by bad arguments
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usagef(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}
