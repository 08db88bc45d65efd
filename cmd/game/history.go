package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/younwookim/duskblade/internal/infrastructure/save"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show checkpoint history of a SQLite save slot",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagDBPath, "db", "~/.duskblade/saves.db", "Path to the SQLite save database")
	historyCmd.Flags().StringVar(&flagSlot, "slot", save.DefaultSlot, "Save slot name")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of checkpoints to show (0 = all)")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := save.OpenSQLite(flagDBPath, flagSlot)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	history, err := store.History(flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(history) == 0 {
		fmt.Fprintf(out, "No checkpoints in slot %q\n", flagSlot)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTIME\tLEVEL\tHEALTH\tENEMIES")
	for _, c := range history {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\n", c.ID, c.CreatedAt.Format("2006-01-02 15:04:05"), c.Level+1, c.Health, c.Enemies)
	}
	return w.Flush()
}
