package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rksv/snapkeeper/internal/retention"
	"github.com/rksv/snapkeeper/internal/store"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete snapshots beyond the configured maximum",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		st := store.New(nil, log)
		snaps, err := st.List(cfg.Backup.DestinationPath)
		if err != nil {
			return err
		}

		victims := retention.Prune(snaps, cfg.Backup.MaxSnapshots)
		if len(victims) == 0 {
			fmt.Println("nothing to prune")
			return nil
		}

		// Each deletion is attempted independently; one failure does not
		// abort the batch.
		failed := 0
		for _, v := range victims {
			if err := st.Delete(v); err != nil {
				fmt.Printf("failed to delete %s: %v\n", v.ID, err)
				failed++
				continue
			}
			fmt.Printf("deleted %s\n", v.ID)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d deletions failed", failed, len(victims))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}
