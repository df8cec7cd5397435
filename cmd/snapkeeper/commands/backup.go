package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Run one backup cycle now",
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

		snap, err := sched.TriggerNow(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("created %s (%s)\n", snap.ID, formatSize(snap.SizeBytes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
}
