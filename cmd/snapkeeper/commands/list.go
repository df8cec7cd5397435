package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rksv/snapkeeper/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List existing snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		snaps, err := store.New(nil, log).List(cfg.Backup.DestinationPath)
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			fmt.Println("no snapshots")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tSIZE")
		for _, s := range snaps {
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"), formatSize(s.SizeBytes))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
