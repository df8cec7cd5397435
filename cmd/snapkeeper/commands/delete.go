package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rksv/snapkeeper/internal/store"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <snapshot-id>",
	Short: "Delete a snapshot by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
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

		for _, s := range snaps {
			if s.ID == args[0] {
				if err := st.Delete(s); err != nil {
					return err
				}
				fmt.Printf("deleted %s\n", s.ID)
				return nil
			}
		}
		return fmt.Errorf("snapshot %q not found", args[0])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
