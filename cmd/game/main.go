// duskblade is a 2D action platformer: fight through tile levels against
// roaming enemies.
//
// Usage:
//
//	duskblade play                 - Play in a window
//	duskblade simulate <replay>    - Re-run a recorded replay headlessly
//	duskblade levels               - List bundled or configured levels
//	duskblade history              - Show checkpoint history of a save slot
//
// Global flags:
//
//	--config <dir>     - Config directory (default: bundled configs)
//	--log-level <lvl>  - debug, info, warn or error
//	--seed <value>     - RNG seed (0 = random based on time)
package main

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/younwookim/duskblade/internal/infrastructure/config"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagSeed     int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "duskblade",
	Short: "Duskblade - a 2D action platformer",
	Long: `Duskblade is a side-scrolling action platformer. Clear every enemy in a
level to move on to the next one.

Examples:
  duskblade play
  duskblade play --record run.json --save sqlite
  duskblade play --config ./configs --watch
  duskblade simulate run.json
  duskblade levels`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config directory holding tuning.yaml and levels/ (default: bundled)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(historyCmd)
}

// newLogger builds the process logger at --log-level
func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "duskblade",
	})
	logger.SetLevel(level)
	return logger, nil
}

// newLoader returns a loader over --config, or over the bundled configs
func newLoader() (*config.Loader, error) {
	if flagConfig != "" {
		return config.NewLoader(flagConfig), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to open bundled configs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// loadConfig loads tuning and every level it lists
func loadConfig() (*config.Loader, *config.GameConfig, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return loader, cfg, nil
}

// seed returns --seed, or a time-based seed when unset
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
