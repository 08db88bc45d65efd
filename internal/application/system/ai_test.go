package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/duskblade/internal/domain/entity"
)

// stubProber answers every probe with hit and records the probe rects
type stubProber struct {
	hit    bool
	probes []entity.Rect
}

func (p *stubProber) Probe(r entity.Rect) bool {
	p.probes = append(p.probes, r)
	return p.hit
}

func createTestEnemy(x, y float64) *entity.Enemy {
	return entity.NewEnemy(createTestEnemyCharacter(x, y), 2)
}

func createTestEnemyAI() *EnemyAI {
	return NewEnemyAI(createTestTuning(), testRNG())
}

func TestEnemyAI_SelectState(t *testing.T) {
	tests := []struct {
		name       string
		targetX    float64
		targetY    float64
		facing     int
		hurt       bool
		wantState  entity.AIState
		wantIntent Intent
	}{
		{
			name:      "far target roams",
			targetX:   900,
			targetY:   512,
			facing:    entity.FacingRight,
			wantState: entity.AIRoaming,
		},
		{
			name:       "target in detection range is chased",
			targetX:    600,
			targetY:    512,
			facing:     entity.FacingRight,
			wantState:  entity.AIChasing,
			wantIntent: Intent{MoveX: 1, Sprint: true},
		},
		{
			name:      "target beyond vertical range roams",
			targetX:   600,
			targetY:   312,
			facing:    entity.FacingRight,
			wantState: entity.AIRoaming,
		},
		{
			name:      "target behind is unseen",
			targetX:   200,
			targetY:   512,
			facing:    entity.FacingRight,
			wantState: entity.AIRoaming,
		},
		{
			name:       "hurt enemy notices target behind",
			targetX:    200,
			targetY:    512,
			facing:     entity.FacingRight,
			hurt:       true,
			wantState:  entity.AIChasing,
			wantIntent: Intent{MoveX: -1, Sprint: true},
		},
		{
			name:       "melee range attacks",
			targetX:    450,
			targetY:    462,
			facing:     entity.FacingRight,
			wantState:  entity.AIAttacking,
			wantIntent: Intent{Attack: true},
		},
		{
			name:       "hurt enemy turns toward target behind instead of swinging",
			targetX:    350,
			targetY:    512,
			facing:     entity.FacingRight,
			hurt:       true,
			wantState:  entity.AIAttacking,
			wantIntent: Intent{Face: -1},
		},
		{
			name:      "chase holds inside the dead zone",
			targetX:   405,
			targetY:   412,
			facing:    entity.FacingRight,
			wantState: entity.AIChasing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := createTestEnemyAI()
			e := createTestEnemy(400, testFloorY-128)
			e.Grounded = true
			e.Facing = tt.facing
			if tt.hurt {
				e.TakeDamage(1, false)
			}
			target := createTestPlayer(tt.targetX, tt.targetY)
			probe := &stubProber{hit: false}

			intent := ai.Decide(e, target, probe, 1.0/60.0)

			assert.Equal(t, tt.wantState, e.Brain.State)
			if tt.wantState != entity.AIRoaming {
				assert.Equal(t, tt.wantIntent, intent)
			}
		})
	}
}

func TestEnemyAI_MissingTarget(t *testing.T) {
	ai := createTestEnemyAI()

	t.Run("nil target roams", func(t *testing.T) {
		e := createTestEnemy(400, testFloorY-128)
		e.Brain.State = entity.AIChasing

		intent := ai.Decide(e, nil, ObstacleScan(nil), 1.0/60.0)

		assert.Equal(t, entity.AIRoaming, e.Brain.State)
		assert.Equal(t, e.Facing, intent.MoveX)
	})

	t.Run("dead target roams", func(t *testing.T) {
		e := createTestEnemy(400, testFloorY-128)
		target := createTestPlayer(450, testFloorY-128)
		target.Die()

		ai.Decide(e, target, nil, 1.0/60.0)

		assert.Equal(t, entity.AIRoaming, e.Brain.State)
	})

	t.Run("dead enemy does nothing", func(t *testing.T) {
		e := createTestEnemy(400, testFloorY-128)
		e.Die()
		target := createTestPlayer(450, testFloorY-128)

		assert.True(t, ai.Decide(e, target, nil, 1.0/60.0).Idle())
		assert.True(t, ai.Decide(nil, target, nil, 1.0/60.0).Idle())
	})
}

func TestEnemyAI_ApproachScenario(t *testing.T) {
	ai := createTestEnemyAI()
	charSys := createTestCharacterSystem()
	stage := createTestStage()
	probe := ObstacleScan(stage.Obstacles)

	e := createTestEnemy(400, testFloorY-128)
	e.Grounded = true
	target := createTestPlayer(900, testFloorY-128)

	ai.Decide(e, target, probe, 1.0/60.0)
	require.Equal(t, entity.AIRoaming, e.Brain.State)

	// Teleport the target to 50px on both axes, in front
	e.Position.X = 400
	e.Facing = entity.FacingRight
	target.Position = entity.Vec2{X: 450, Y: testFloorY - 128 - 50}

	swings := 0
	for i := 0; i < 60; i++ {
		intent := ai.Decide(e, target, probe, 1.0/60.0)
		require.Equal(t, entity.AIAttacking, e.Brain.State, "tick %d", i)
		step(charSys, e.Character, intent, stage, []*entity.Character{target}, 1.0/60.0)
		if e.HasEvent(entity.EventSwingStarted) {
			swings++
		}
	}

	assert.Equal(t, 1, swings)
	assert.Equal(t, 100-e.Stats.AttackDamage, target.Health())
}

func TestEnemyAI_Roaming(t *testing.T) {
	ai := createTestEnemyAI()
	e := entity.NewEnemy(createTestEnemyCharacter(400, testFloorY-128), 1)
	e.Grounded = true
	probe := &stubProber{hit: false}

	// Walk phase
	for i := 0; i < 3; i++ {
		intent := ai.Decide(e, nil, probe, 0.25)
		assert.Equal(t, e.Facing, intent.MoveX)
		assert.False(t, intent.Jump)
	}

	// Walk phase over
	intent := ai.Decide(e, nil, probe, 0.25)
	assert.True(t, intent.Idle())
	require.True(t, e.Brain.Idle)
	assert.GreaterOrEqual(t, e.Brain.IdleDuration, 1.0)
	assert.Less(t, e.Brain.IdleDuration, 3.0)

	// Idle until the idle phase elapses, then walk again
	walked := false
	for i := 0; i < 20; i++ {
		intent = ai.Decide(e, nil, probe, 0.25)
		if !e.Brain.Idle {
			walked = true
			break
		}
		assert.True(t, intent.Idle())
	}

	require.True(t, walked)
	assert.Equal(t, e.Facing, intent.MoveX)
	assert.GreaterOrEqual(t, e.Brain.WalkDuration, 1.0)
	assert.Less(t, e.Brain.WalkDuration, 3.0)
}

func TestEnemyAI_RoamingRandomizesFacing(t *testing.T) {
	ai := createTestEnemyAI()
	seen := map[int]bool{}

	for i := 0; i < 50; i++ {
		e := createTestEnemy(400, testFloorY-128)
		e.Grounded = true
		e.Brain.Idle = true
		e.Brain.IdleDuration = 0.1

		ai.Decide(e, nil, &stubProber{hit: true}, 0.25)
		seen[e.Facing] = true
	}

	assert.True(t, seen[entity.FacingLeft])
	assert.True(t, seen[entity.FacingRight])
}

func TestEnemyAI_JumpProbes(t *testing.T) {
	tests := []struct {
		name     string
		grounded bool
		hit      bool
		wantJump bool
	}{
		{name: "grounded with clear path", grounded: true, hit: false, wantJump: false},
		{name: "grounded facing a wall", grounded: true, hit: true, wantJump: true},
		{name: "airborne with no ground ahead", grounded: false, hit: false, wantJump: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := createTestEnemyAI()
			e := createTestEnemy(400, 100)
			e.Grounded = tt.grounded

			intent := ai.Decide(e, nil, &stubProber{hit: tt.hit}, 1.0/60.0)

			assert.Equal(t, tt.wantJump, intent.Jump)
		})
	}
}

func TestEnemyAI_ProbeGeometry(t *testing.T) {
	ai := createTestEnemyAI()

	t.Run("facing right", func(t *testing.T) {
		c := createTestEnemyCharacter(0, 0)
		probe := &stubProber{}

		ai.WallAhead(c, probe)
		ai.GroundAhead(c, probe)

		require.Len(t, probe.probes, 2)
		assert.Equal(t, entity.Rect{X: 83, Y: 89, W: 5, H: 5}, probe.probes[0])
		assert.Equal(t, entity.Rect{X: 83, Y: 133, W: 2, H: 2}, probe.probes[1])
	})

	t.Run("facing left", func(t *testing.T) {
		c := createTestEnemyCharacter(0, 0)
		c.Facing = entity.FacingLeft
		probe := &stubProber{}

		ai.WallAhead(c, probe)
		ai.GroundAhead(c, probe)

		require.Len(t, probe.probes, 2)
		assert.Equal(t, entity.Rect{X: 40, Y: 89, W: 5, H: 5}, probe.probes[0])
		assert.Equal(t, entity.Rect{X: 43, Y: 133, W: 2, H: 2}, probe.probes[1])
	})

	t.Run("grounded characters see ground without probing", func(t *testing.T) {
		c := createTestEnemyCharacter(0, 0)
		c.Grounded = true
		probe := &stubProber{}

		assert.True(t, ai.GroundAhead(c, probe))
		assert.Empty(t, probe.probes)
	})

	t.Run("ledge detection against a real stage", func(t *testing.T) {
		ledge := ObstacleScan{entity.NewPlatform(entity.Rect{X: 0, Y: 640, W: 128, H: 64}, 0)}
		c := createTestEnemyCharacter(0, 640-128-4)

		assert.True(t, ai.GroundAhead(c, ledge))
		c.Position.X = 100
		assert.False(t, ai.GroundAhead(c, ledge))
	})
}

func TestEnemyAI_RoamDuration(t *testing.T) {
	ai := createTestEnemyAI()

	for i := 0; i < 100; i++ {
		d := ai.RoamDuration()
		assert.GreaterOrEqual(t, d, 1.0)
		assert.Less(t, d, 3.0)
	}

	cfg := createTestTuning()
	cfg.AI.RoamMaxDuration = cfg.AI.RoamMinDuration
	ai.SetConfig(cfg)
	assert.Equal(t, cfg.AI.RoamMinDuration, ai.RoamDuration())
}
