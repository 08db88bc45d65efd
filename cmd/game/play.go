package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/younwookim/duskblade/internal/application/game"
	"github.com/younwookim/duskblade/internal/application/scene/playing"
	"github.com/younwookim/duskblade/internal/application/session"
	"github.com/younwookim/duskblade/internal/domain/entity"
	"github.com/younwookim/duskblade/internal/infrastructure/config"
	"github.com/younwookim/duskblade/internal/infrastructure/save"
)

const appName = "duskblade"

var (
	flagRecord   string
	flagWatch    bool
	flagSave     string
	flagDBPath   string
	flagSlot     string
	flagContinue bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in a window",
	Long: `Start the game in a window.

Controls:
  A/D, Left/Right   - Move
  Shift             - Sprint
  Space/W/Up        - Jump
  J/Left click      - Attack
  Tab               - Show collision boxes
  Esc               - Pause
  F5                - Save recording now

Save backends:
  gdata   - per-user data directory (default)
  sqlite  - SQLite database at --db, with checkpoint history
  none    - no checkpoints`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record input to file (e.g. --record replay.json)")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload tuning.yaml on change (requires --config)")
	playCmd.Flags().StringVar(&flagSave, "save", "gdata", "Checkpoint backend: gdata, sqlite, none")
	playCmd.Flags().StringVar(&flagDBPath, "db", "~/.duskblade/saves.db", "Path to the SQLite save database")
	playCmd.Flags().StringVar(&flagSlot, "slot", save.DefaultSlot, "Save slot name")
	playCmd.Flags().BoolVar(&flagContinue, "continue", false, "Resume from the slot's last checkpoint")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	loader, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(flagSave)
	if err != nil {
		return err
	}
	defer closeStore()

	start, err := loadStart(store, logger)
	if err != nil {
		return err
	}

	var reload <-chan *config.Tuning
	if flagWatch {
		if flagConfig == "" {
			return errors.New("--watch requires --config")
		}
		w, err := config.NewWatcher(loader.BasePath())
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", loader.BasePath(), err)
		}
		defer func() { _ = w.Close() }()
		reload = forwardReloads(w, loader, logger)
		logger.Info("watching config", "dir", loader.BasePath())
		if flagRecord != "" {
			logger.Warn("recording stops at the first tuning reload", "record", flagRecord)
		}
	}

	var saver session.Saver
	if store != nil {
		saver = store
	}

	s := seed()
	p, err := playing.New(cfg, playing.Options{
		Seed:       s,
		Start:      start,
		Saver:      saver,
		RecordPath: flagRecord,
		Reload:     reload,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	display := cfg.Tuning.Display
	g := game.New(p, display.ScreenWidth, display.ScreenHeight)
	g.SetDT(cfg.Tuning.DT())

	ebiten.SetWindowSize(display.ScreenWidth, display.ScreenHeight)
	ebiten.SetWindowTitle("Duskblade")
	ebiten.SetTPS(display.Framerate)

	logger.Info("starting", "seed", s, "levels", len(cfg.Levels))
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}

// openStore opens the checkpoint backend. The returned close func is
// always safe to call.
func openStore(kind string) (save.Store, func(), error) {
	switch kind {
	case "gdata":
		s, err := save.OpenGData(appName, flagSlot)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	case "sqlite":
		s, err := save.OpenSQLite(flagDBPath, flagSlot)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "none", "":
		return nil, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown save backend %q", kind)
	}
}

// loadStart returns the checkpoint to resume from when --continue is set
func loadStart(store save.Store, logger *log.Logger) (*entity.GameData, error) {
	if !flagContinue {
		return nil, nil
	}
	if store == nil {
		return nil, errors.New("--continue requires a save backend")
	}

	data, err := store.Load()
	if errors.Is(err, save.ErrNoSave) {
		logger.Info("no checkpoint found, starting a new game", "slot", flagSlot)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	logger.Info("resuming checkpoint", "slot", flagSlot, "level", data.Level)
	return data, nil
}

// forwardReloads turns tuning file changes into freshly loaded tunings.
// Only the latest tuning is kept if the scene has not consumed the previous one.
func forwardReloads(w *config.Watcher, loader *config.Loader, logger *log.Logger) <-chan *config.Tuning {
	out := make(chan *config.Tuning, 1)
	go func() {
		defer close(out)
		for {
			select {
			case path, ok := <-w.Events:
				if !ok {
					return
				}
				if !config.IsTuningFile(path) {
					logger.Debug("ignoring config change", "path", path)
					continue
				}
				t, err := loader.LoadTuning()
				if err != nil {
					logger.Warn("failed to reload tuning", "error", err)
					continue
				}
				select {
				case <-out:
				default:
				}
				out <- t
				logger.Info("tuning reloaded", "path", path)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "error", err)
			}
		}
	}()
	return out
}
