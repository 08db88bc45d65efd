package replay

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/duskblade/internal/application/system"
	"github.com/younwookim/duskblade/internal/domain/entity"
)

func TestFrameInput_JSONKeys(t *testing.T) {
	input := FrameInput{F: 10, L: true, A: true}

	data, err := json.Marshal(input)
	require.NoError(t, err)

	// Unset flags are omitted to keep replays small
	assert.JSONEq(t, `{"f":10,"l":true,"a":true}`, string(data))
}

func TestReplayer_GetInput(t *testing.T) {
	data := ReplayData{
		Version: Version,
		Seed:    42,
		Frames: []FrameInput{
			{F: 0, L: true},
			{F: 1, R: true, J: true, S: true},
			{F: 2, A: true},
		},
	}

	replayer := NewReplayer(data)

	// Frame 0
	input, ok := replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, system.InputState{Left: true}, input)

	// Frame 1
	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, system.InputState{Right: true, Jump: true, Sprint: true}, input)

	// Frame 2
	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.True(t, input.Attack)
	assert.False(t, input.Left)

	// End of frames
	_, ok = replayer.GetInput()
	assert.False(t, ok)
}

func TestFromInput(t *testing.T) {
	in := system.InputState{Left: true, Sprint: true, Attack: true}

	fi := FromInput(7, in)

	assert.Equal(t, FrameInput{F: 7, L: true, S: true, A: true}, fi)
	assert.Equal(t, in, ToInput(fi))
}

func TestReplayer_CurrentFrame(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData(5))

	assert.Equal(t, 0, replayer.CurrentFrame())

	replayer.GetInput()
	assert.Equal(t, 1, replayer.CurrentFrame())

	replayer.GetInput()
	replayer.GetInput()
	assert.Equal(t, 3, replayer.CurrentFrame())
}

func TestReplayer_TotalFramesAndSeed(t *testing.T) {
	replayer := NewReplayer(ReplayData{Seed: 99999, Frames: make([]FrameInput, 10)})

	assert.Equal(t, 10, replayer.TotalFrames())
	assert.Equal(t, int64(99999), replayer.Seed())
}

func TestReplayer_DT(t *testing.T) {
	assert.Equal(t, 1.0/60.0, NewReplayer(ReplayData{}).DT())
	assert.Equal(t, 0.02, NewReplayer(ReplayData{DT: 0.02}).DT())
}

func TestReplayer_Reset(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData(3))

	// Advance to end
	replayer.GetInput()
	replayer.GetInput()
	replayer.GetInput()
	_, ok := replayer.GetInput()
	assert.False(t, ok)

	// Reset
	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())

	// Should be able to read again
	input, ok := replayer.GetInput()
	assert.True(t, ok)
	assert.True(t, input.Right)
}

func TestCreateTestReplayData(t *testing.T) {
	data := CreateTestReplayData(60)

	assert.Equal(t, Version, data.Version)
	assert.Equal(t, int64(12345), data.Seed)
	assert.Nil(t, data.Start)
	assert.Equal(t, 60, len(data.Frames))

	for i, frame := range data.Frames {
		assert.Equal(t, i, frame.F, "Frame number mismatch at index %d", i)
		assert.True(t, frame.R)
	}
}

func TestLoadReplay(t *testing.T) {
	t.Run("loads a replay with a starting checkpoint", func(t *testing.T) {
		data := CreateTestReplayData(3)
		data.Start = &entity.GameData{
			Player: entity.Snapshot{Health: 40, X: 120, Y: 300},
			Level:  1,
		}
		path := filepath.Join(t.TempDir(), "run.json")
		raw, err := json.Marshal(data)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, raw, 0o644))

		loaded, err := LoadReplay(path)

		require.NoError(t, err)
		assert.Equal(t, data.Frames, loaded.Frames)
		require.NotNil(t, loaded.Start)
		assert.Equal(t, 1, loaded.Start.Level)
		assert.Equal(t, 40, loaded.Start.Player.Health)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadReplay(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{frames"), 0o644))

		_, err := LoadReplay(path)
		assert.ErrorContains(t, err, "failed to decode replay")
	})

	t.Run("old format", func(t *testing.T) {
		data := CreateTestReplayData(3)
		data.Version = "1.0"
		path := filepath.Join(t.TempDir(), "old.json")
		raw, err := json.Marshal(data)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, raw, 0o644))

		_, err = LoadReplay(path)
		assert.ErrorIs(t, err, ErrVersion)
	})
}

func TestReplayData_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *ReplayData)
		wantErr error
	}{
		{"valid", func(d *ReplayData) {}, nil},
		{"minor version bump", func(d *ReplayData) { d.Version = "2.7" }, nil},
		{"empty", func(d *ReplayData) { d.Frames = nil }, nil},
		{"major version", func(d *ReplayData) { d.Version = "3.0" }, ErrVersion},
		{"missing version", func(d *ReplayData) { d.Version = "" }, ErrVersion},
		{"gap", func(d *ReplayData) { d.Frames[2].F = 3 }, ErrFrames},
		{"starts late", func(d *ReplayData) {
			for i := range d.Frames {
				d.Frames[i].F++
			}
		}, ErrFrames},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := CreateTestReplayData(4)
			tt.mutate(&data)

			err := data.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
