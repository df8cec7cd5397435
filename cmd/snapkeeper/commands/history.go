package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent backup cycle outcomes",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		hist, err := openHistory(cfg)
		if err != nil {
			return err
		}
		if hist == nil {
			return fmt.Errorf("history is disabled (history.path not set)")
		}
		defer hist.Close()

		entries, err := hist.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no recorded cycles")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "STARTED\tMODE\tSTATUS\tSNAPSHOT\tPRUNED\tDURATION\tERROR")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
				e.StartedAt.Format("2006-01-02 15:04:05"),
				e.Mode, e.Status, e.SnapshotID, e.Pruned, e.Duration, e.Error)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of entries to show")
	rootCmd.AddCommand(historyCmd)
}
