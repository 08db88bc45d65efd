package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/younwookim/duskblade/internal/application/system"
	"github.com/younwookim/duskblade/internal/domain/entity"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels and their contents",
	Long: `List every level file in the config directory. Levels named in
tuning.yaml are marked with their play order.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(cmd *cobra.Command, _ []string) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}

	tuning, err := loader.LoadTuning()
	if err != nil {
		return err
	}

	names, err := loader.ListLevels()
	if err != nil {
		return err
	}

	order := make(map[string]int, len(tuning.Levels))
	for i, name := range tuning.Levels {
		order[name] = i + 1
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tNAME\tSIZE\tPLATFORMS\tMOVING\tHAZARDS\tPICKUPS\tSPAWNS\tENEMIES")
	for _, name := range names {
		lvl, err := loader.LoadLevel(name)
		if err != nil {
			return err
		}
		stage, err := system.LoadStage(lvl, tuning)
		if err != nil {
			return fmt.Errorf("level %s: %w", name, err)
		}

		pos := "-"
		if n, ok := order[name]; ok {
			pos = fmt.Sprint(n)
		}
		fmt.Fprintf(w, "%s\t%s\t%.0fx%.0f\t%d\t%d\t%d\t%d\t%d\t%d\n",
			pos, name, stage.Width, stage.Height,
			stage.Count(entity.KindPlatform),
			stage.Count(entity.KindMovingPlatform),
			stage.Count(entity.KindHazard),
			stage.Count(entity.KindPickup),
			len(stage.EnemySpawns),
			stage.EnemyCount,
		)
	}
	return w.Flush()
}
