// Package commands provides the snapkeeper CLI.
package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rksv/snapkeeper/internal/config"
	"github.com/rksv/snapkeeper/internal/history"
	"github.com/rksv/snapkeeper/internal/logging"
	"github.com/rksv/snapkeeper/internal/scheduler"
	"github.com/rksv/snapkeeper/internal/store"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "snapkeeper",
	Short:         "Periodic directory backups with bounded retention",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "path to the configuration file")
}

// setup loads the config and builds the logger every command needs.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// openHistory returns the cycle history store, or nil when history is
// disabled.
func openHistory(cfg *config.Config) (*history.Store, error) {
	if cfg.History.Path == "" {
		return nil, nil
	}
	return history.Open(cfg.History.Path)
}

// newScheduler wires a scheduler over the on-disk store with the given
// config applied.
func newScheduler(cfg *config.Config, hist *history.Store, log *zap.Logger) (*scheduler.Scheduler, error) {
	var rec scheduler.Recorder
	if hist != nil {
		rec = hist
	}
	sched := scheduler.New(store.New(nil, log), rec, log)
	if err := sched.Apply(cfg.Backup); err != nil {
		return nil, err
	}
	return sched, nil
}
