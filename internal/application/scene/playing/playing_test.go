package playing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/duskblade/internal/application/replay"
	"github.com/younwookim/duskblade/internal/application/scene"
	"github.com/younwookim/duskblade/internal/application/state"
	"github.com/younwookim/duskblade/internal/application/system"
	"github.com/younwookim/duskblade/internal/infrastructure/config"
)

// createTestConfig creates a minimal one-level config for testing
func createTestConfig() *config.GameConfig {
	return &config.GameConfig{
		Tuning: config.Default(),
		Levels: []*config.LevelConfig{
			{
				Name:        "test",
				TileSize:    64,
				EnemyCount:  1,
				PlayerSpawn: config.PositionConfig{X: 64, Y: 192},
				Layout: []string{
					"                    ",
					"                    ",
					"                    ",
					"               Y    ",
					"                    ",
					"cccccccccccccccccccc",
				},
			},
		},
	}
}

func createTestPlaying(t *testing.T, opts Options) *Playing {
	t.Helper()
	p, err := New(createTestConfig(), opts)
	require.NoError(t, err)
	return p
}

func TestPlaying_ImplementsScene(t *testing.T) {
	// Compile-time check that Playing implements scene.Scene
	var _ scene.Scene = (*Playing)(nil)
}

func TestNewPlaying(t *testing.T) {
	p := createTestPlaying(t, Options{Seed: 1})

	assert.NotNil(t, p.Session())
	assert.Nil(t, p.recorder)
	assert.Equal(t, state.StatePlaying, p.Session().State())
	assert.Len(t, p.Session().Enemies(), 1)

	w, h := p.Layout(0, 0)
	assert.Equal(t, config.Default().Display.ScreenWidth, w)
	assert.Equal(t, config.Default().Display.ScreenHeight, h)
}

func TestNewPlaying_NilConfig(t *testing.T) {
	_, err := New(nil, Options{})
	assert.Error(t, err)
}

func TestNewPlaying_FromStart(t *testing.T) {
	first := createTestPlaying(t, Options{Seed: 1})
	first.Session().Player().TakeDamage(30, true)
	data := first.Session().Snapshot()

	p := createTestPlaying(t, Options{Seed: 1, Start: &data})

	assert.Equal(t, first.Session().Player().Health(), p.Session().Player().Health())
	assert.Equal(t, first.Session().Player().Position, p.Session().Player().Position)
}

func TestPlaying_Update_ReturnsNilWhenPlaying(t *testing.T) {
	p := createTestPlaying(t, Options{})

	// Normal update should return nil (stay on same scene)
	next, err := p.Update(1.0 / 60.0)

	assert.NoError(t, err)
	assert.Nil(t, next, "Should return nil when continuing to play")
	assert.Equal(t, 1, p.Session().Tick())
}

func TestPlaying_Update_Hitstop(t *testing.T) {
	p := createTestPlaying(t, Options{})
	p.hitstop = 2

	_, err := p.Update(1.0 / 60.0)
	require.NoError(t, err)
	_, err = p.Update(1.0 / 60.0)
	require.NoError(t, err)

	assert.Equal(t, 0, p.Session().Tick(), "Simulation should be frozen during hitstop")

	_, err = p.Update(1.0 / 60.0)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Session().Tick())
}

func TestPlaying_Update_Paused(t *testing.T) {
	p := createTestPlaying(t, Options{})
	p.Session().SetPaused(true)

	_, err := p.Update(1.0 / 60.0)

	require.NoError(t, err)
	assert.Equal(t, 0, p.Session().Tick())
}

func TestPlaying_Step_MovesPlayer(t *testing.T) {
	p := createTestPlaying(t, Options{})
	startX := p.Session().Player().Position.X

	for i := 0; i < 30; i++ {
		p.step(system.InputState{Right: true})
	}

	assert.Greater(t, p.Session().Player().Position.X, startX)
}

func TestPlaying_WithRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_replay.json")
	p := createTestPlaying(t, Options{Seed: 7, RecordPath: path})

	require.NotNil(t, p.recorder)

	// Update should record frames
	_, err := p.Update(1.0 / 60.0)
	require.NoError(t, err)
	p.step(system.InputState{Right: true, Jump: true})

	assert.Equal(t, 2, p.recorder.FrameCount())
	data := p.recorder.GetData()
	assert.Equal(t, int64(7), data.Seed)
	assert.Equal(t, replay.FrameInput{F: 1, R: true, J: true}, data.Frames[1])
}

func TestPlaying_WithRecorder_SkipsPausedTicks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_replay.json")
	p := createTestPlaying(t, Options{RecordPath: path})
	p.Session().SetPaused(true)

	_, err := p.Update(1.0 / 60.0)
	require.NoError(t, err)

	assert.Equal(t, 0, p.recorder.FrameCount())
}

func TestPlaying_Reload(t *testing.T) {
	reload := make(chan *config.Tuning, 1)
	p := createTestPlaying(t, Options{Reload: reload})

	tuned := config.Default()
	tuned.Player.Speed = 9
	reload <- tuned

	_, err := p.Update(1.0 / 60.0)
	require.NoError(t, err)

	assert.Equal(t, 9.0, p.Session().Tuning().Player.Speed)
}

func TestPlaying_Reload_StopsRecording(t *testing.T) {
	reload := make(chan *config.Tuning, 1)
	path := filepath.Join(t.TempDir(), "reload.json")
	p := createTestPlaying(t, Options{Seed: 5, RecordPath: path, Reload: reload})

	_, err := p.Update(1.0 / 60.0)
	require.NoError(t, err)
	require.Equal(t, 1, p.recorder.FrameCount())

	reload <- config.Default()
	_, err = p.Update(1.0 / 60.0)
	require.NoError(t, err)

	assert.False(t, p.recorder.IsRecording())
	assert.Equal(t, 1, p.recorder.FrameCount(), "frames after the reload are not recorded")
	assert.Equal(t, 2, p.Session().Tick())
}

func TestPlaying_Reload_ClosedChannel(t *testing.T) {
	reload := make(chan *config.Tuning)
	close(reload)
	p := createTestPlaying(t, Options{Reload: reload})

	_, err := p.Update(1.0 / 60.0)

	require.NoError(t, err)
	assert.Nil(t, p.reload)
}

func TestPlaying_OnEnter(t *testing.T) {
	p := createTestPlaying(t, Options{})

	// OnEnter should not panic
	assert.NotPanics(t, func() {
		p.OnEnter()
	})
}

func TestPlaying_OnExitWithRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onexit.json")
	p := createTestPlaying(t, Options{Seed: 3, RecordPath: path})

	// Record some frames
	_, _ = p.Update(1.0 / 60.0)
	_, _ = p.Update(1.0 / 60.0)

	p.OnExit()

	_, err := os.Stat(path)
	require.NoError(t, err)

	rp, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, 2, len(rp.Frames))
	assert.Equal(t, int64(3), rp.Seed)
}

func TestRecorder_StopAndIsRecording(t *testing.T) {
	r := NewRecorder(12345, 1.0/60.0, nil)

	assert.True(t, r.IsRecording())

	r.Stop()

	assert.False(t, r.IsRecording())
}

func TestRecorder_DoesNotRecordWhenStopped(t *testing.T) {
	r := NewRecorder(12345, 1.0/60.0, nil)
	r.Stop()

	// Should not record when stopped
	r.RecordFrame(system.InputState{Left: true})

	assert.Equal(t, 0, r.FrameCount())
}

func TestRecorder_SaveEmpty(t *testing.T) {
	r := NewRecorder(1, 1.0/60.0, nil)

	err := r.Save(filepath.Join(t.TempDir(), "empty.json"))

	assert.Error(t, err)
}
