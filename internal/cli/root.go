// Package cli defines the kegelcoach command tree. The root command runs the
// terminal UI; subcommands cover headless playback and housekeeping.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/kegelcoach/internal/catalog"
	"github.com/sadopc/kegelcoach/internal/config"
	"github.com/sadopc/kegelcoach/internal/engine"
	"github.com/sadopc/kegelcoach/internal/progress"
	"github.com/sadopc/kegelcoach/internal/store"
	"github.com/sadopc/kegelcoach/internal/tui"
)

var version = "dev" // set via ldflags at build time

type rootOptions struct {
	configPath string
	dbPath     string
	logLevel   string
	logFile    string
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "kegelcoach",
		Short:        "Guided pelvic floor training in your terminal",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", config.DefaultConfigPath(), "config file")
	pf.StringVar(&opts.dbPath, "db", config.DefaultDBPath(), "database file")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFile, "log-file", "", "log file (default: stderr, or the state dir for the UI)")

	rootCmd.AddCommand(newPlayCmd(opts))
	rootCmd.AddCommand(newPlansCmd(opts))
	rootCmd.AddCommand(newSessionsCmd(opts))
	rootCmd.AddCommand(newStatsCmd(opts))
	rootCmd.AddCommand(newHistoryCmd(opts))
	rootCmd.AddCommand(newResetCmd(opts))
	rootCmd.AddCommand(newExportCmd(opts))
	rootCmd.AddCommand(newSubscribeCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

// env is everything a command needs once config, logging and storage are
// set up.
type env struct {
	cfg     config.FileConfig
	log     *slog.Logger
	logFile *os.File
	store   *store.Store
	catalog *catalog.Catalog
	ledger  *progress.Ledger
}

// open loads the config file, lets explicit flags win over it, then opens
// the database and loads the ledger. forUI routes the log away from the
// terminal.
func (o *rootOptions) open(cmd *cobra.Command, forUI bool) (*env, error) {
	fileCfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "db", &o.dbPath, fileCfg.Storage.DBPath)
	applyStringConfig(cmd, "log-level", &o.logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &o.logFile, fileCfg.Log.File)

	e := &env{cfg: fileCfg}
	if err := e.openLog(o, cmd.ErrOrStderr(), forUI); err != nil {
		return nil, err
	}

	e.catalog, err = catalog.New()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	e.store, err = store.New(o.dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	e.ledger = progress.NewLedger(e.store)
	if err := e.ledger.Load(cmd.Context()); err != nil {
		e.Close()
		return nil, err
	}
	e.log.Debug("opened", "db", o.dbPath)
	return e, nil
}

func (e *env) openLog(o *rootOptions, stderr io.Writer, forUI bool) error {
	lvl, err := config.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}

	path := o.logFile
	if path == "" && forUI {
		path = config.DefaultLogPath()
	}

	var w io.Writer = stderr
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		e.logFile = f
		w = f
	}

	e.log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	return nil
}

func (e *env) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.log.Warn("failed to close db", "error", err)
		}
	}
	if e.logFile != nil {
		_ = e.logFile.Close()
	}
}

// sessionLocked applies the free-tier rule. The demo is always playable.
func (e *env) sessionLocked(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == catalog.DemoSessionID {
		return false, nil
	}
	profile, err := e.store.GetProfile(ctx)
	if err != nil {
		return false, err
	}
	return progress.Locked(profile.Subscribed, e.ledger.State().SessionsCompleted), nil
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	e, err := opts.open(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	e.log.Info("kegelcoach starting", "version", version)
	app := tui.NewApp(tui.Services{
		Catalog:  e.catalog,
		Store:    e.store,
		Ledger:   e.ledger,
		Feedback: engine.Bell{W: cmd.ErrOrStderr()},
		Log:      e.log,
	})
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
