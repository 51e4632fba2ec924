// Package cli implements the cycles command tree.
//
// Every command runs one session: load the config, open the store, load the
// state, apply a single operation (which persists), then close the store and
// optionally write metrics.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/allenwsellars/Cycles/internal/config"
	"github.com/allenwsellars/Cycles/internal/metrics"
	"github.com/allenwsellars/Cycles/internal/service"
	"github.com/allenwsellars/Cycles/internal/storage"
	"github.com/allenwsellars/Cycles/internal/storage/sqlite"
	"github.com/allenwsellars/Cycles/pkg/logging"
)

// openStore opens the persistence backend for a session.
var openStore = func(cfg config.Config) (storage.Store, error) {
	return sqlite.New(cfg.DBPath)
}

type rootOptions struct {
	configPath string
	dbPath     string
	logLevel   string
}

// session holds what a single command invocation needs.
type session struct {
	cfg      config.Config
	store    storage.Store
	svc      *service.TrackerService
	registry *prometheus.Registry
}

// Execute runs the command line with os.Args.
func Execute(ctx context.Context) error {
	root, s := newRootCmd()
	err := root.ExecuteContext(ctx)
	return errors.Join(err, s.close())
}

func newRootCmd() (*cobra.Command, *session) {
	var opts rootOptions
	s := &session{}

	root := &cobra.Command{
		Use:   "cycles",
		Short: "Track bicycle maintenance",
		Long: `Cycles keeps a log of maintenance work for your bikes.

Records are dated by month and listed most recent first. All data lives in a
local database and can be exported to and imported from JSON.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.open(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.cycles/config.toml)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database path (overrides config)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newBikeCmd(s))
	root.AddCommand(newRecordCmd(s))
	root.AddCommand(newExportCmd(s))
	root.AddCommand(newImportCmd(s))

	return root, s
}

func (s *session) open(cmd *cobra.Command, opts rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.dbPath != "" {
		cfg.DBPath = opts.dbPath
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	s.cfg = cfg

	logging.Setup(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	s.store = store

	collector := metrics.NewCollector()
	s.registry = prometheus.NewRegistry()
	s.registry.MustRegister(collector)

	svc, err := service.NewTrackerService(cmd.Context(), store, collector)
	if err != nil {
		return err
	}
	s.svc = svc
	return nil
}

// close writes metrics when configured and closes the store. It is safe to
// call on a session that never opened.
func (s *session) close() error {
	var errs []error
	if s.registry != nil && s.cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(s.cfg.MetricsFile, s.registry); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close storage: %w", err))
		}
		s.store = nil
	}
	return errors.Join(errs...)
}
