package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rksv/snapkeeper/internal/config"
	"github.com/rksv/snapkeeper/internal/reload"
	"github.com/rksv/snapkeeper/internal/watcher"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the backup scheduler until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		hist, err := openHistory(cfg)
		if err != nil {
			return err
		}
		if hist != nil {
			defer hist.Close()
		}

		sched, err := newScheduler(cfg, hist, log)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Graceful shutdown
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh
			log.Info("shutting down")
			cancel()
		}()

		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()

		box := reload.NewBox()

		// Apply reloaded configs as they arrive.
		go func() {
			for {
				next := box.Take()
				if err := sched.Apply(next.Backup); err != nil {
					log.Error("applying reloaded config failed", zap.Error(err))
					continue
				}
				log.Info("configuration reloaded")
			}
		}()

		// Hot reload on SIGHUP
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGHUP)
			for range sigCh {
				next, err := config.Load(cfgPath)
				if err != nil {
					log.Error("config reload failed", zap.Error(err))
					continue
				}
				box.Put(next)
			}
		}()

		if cfg.ConfigReload.Enabled {
			w := watcher.New(cfgPath, cfg.ConfigReload, log, box)
			go func() {
				if err := w.Start(ctx); err != nil {
					log.Error("config watcher failed", zap.Error(err))
				}
			}()
		}

		<-ctx.Done()
		log.Info("exit complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
