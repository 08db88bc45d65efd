package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/younwookim/duskblade/internal/application/replay"
	"github.com/younwookim/duskblade/internal/application/session"
	"github.com/younwookim/duskblade/internal/infrastructure/config"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <replay.json>",
	Short: "Re-run a recorded replay without a window",
	Long: `Feed every recorded frame of a replay through a fresh session built from
the replay's seed and starting checkpoint, then print the final state.
The same replay and config always produce the same output.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := replay.LoadReplay(args[0])
	if err != nil {
		return err
	}

	sess, err := simulate(cfg, *data, logger)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(sess.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "frames: %d\nticks: %d\nstate: %s\nkills: %d\n", len(data.Frames), sess.Tick(), sess.State(), sess.Kills())
	fmt.Fprint(w, string(out))
	return nil
}

// simulate replays data against cfg and returns the session after the
// last frame. Frames past the end of the run are ignored.
func simulate(cfg *config.GameConfig, data replay.ReplayData, logger *log.Logger) (*session.Session, error) {
	opts := session.Options{Seed: data.Seed, Logger: logger}

	var (
		sess *session.Session
		err  error
	)
	if data.Start != nil {
		sess, err = session.FromSave(cfg, *data.Start, opts)
	} else {
		sess, err = session.New(cfg, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	r := replay.NewReplayer(data)
	dt := r.DT()
	for {
		if !sess.State().Simulating() {
			break
		}
		input, ok := r.GetInput()
		if !ok {
			break
		}
		sess.Update(input.Intent(), dt)
	}

	logger.Debug("replay finished", "frame", r.CurrentFrame(), "total", r.TotalFrames())
	return sess, nil
}
