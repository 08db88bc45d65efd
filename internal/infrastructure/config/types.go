package config

import "github.com/younwookim/duskblade/internal/domain/entity"

// Tuning is the root config for tuning.yaml
type Tuning struct {
	Display        DisplayConfig        `yaml:"display"`
	Physics        PhysicsConfig        `yaml:"physics"`
	Player         CharacterConfig      `yaml:"player"`
	Enemy          CharacterConfig      `yaml:"enemy"`
	AI             AIConfig             `yaml:"ai"`
	Hazard         HazardConfig         `yaml:"hazard"`
	Pickup         PickupConfig         `yaml:"pickup"`
	MovingPlatform MovingPlatformConfig `yaml:"movingPlatform"`
	HealOnKill     int                  `yaml:"healOnKill"`
	Levels         []string             `yaml:"levels"`
}

type DisplayConfig struct {
	ScreenWidth  int `yaml:"screenWidth"`
	ScreenHeight int `yaml:"screenHeight"`
	Framerate    int `yaml:"framerate"`
}

// PhysicsConfig holds per-tick motion constants
type PhysicsConfig struct {
	Gravity  float64 `yaml:"gravity"`  // added to vertical velocity each airborne tick
	Inset    float64 `yaml:"inset"`    // collision box margin
	TileSize float64 `yaml:"tileSize"` // default layout cell size
}

// CharacterConfig describes one character archetype
type CharacterConfig struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	MaxHealth        int     `yaml:"maxHealth"`
	Speed            float64 `yaml:"speed"`
	SprintMultiplier float64 `yaml:"sprintMultiplier"`
	JumpPower        float64 `yaml:"jumpPower"`
	AttackDamage     int     `yaml:"attackDamage"`
	AttackDuration   float64 `yaml:"attackDuration"`
	AttackCooldown   float64 `yaml:"attackCooldown"`
	HurtDuration     float64 `yaml:"hurtDuration"`
	DeathDuration    float64 `yaml:"deathDuration"`
	RegenInterval    float64 `yaml:"regenInterval"`
	RegenAmount      int     `yaml:"regenAmount"`
}

// AIConfig tunes the enemy decision loop
type AIConfig struct {
	DetectionRange  float64 `yaml:"detectionRange"`
	VerticalFactor  float64 `yaml:"verticalFactor"` // vertical detection = range * factor
	MeleeRange      float64 `yaml:"meleeRange"`
	ChaseDeadZone   float64 `yaml:"chaseDeadZone"`
	RoamMinDuration float64 `yaml:"roamMinDuration"`
	RoamMaxDuration float64 `yaml:"roamMaxDuration"`
	ProbeGap        float64 `yaml:"probeGap"`
	WallProbeSize   float64 `yaml:"wallProbeSize"`
	GroundProbeSize float64 `yaml:"groundProbeSize"`
}

type HazardConfig struct {
	Damage    int     `yaml:"damage"`
	Knockback float64 `yaml:"knockback"`
}

type PickupConfig struct {
	Heal int `yaml:"heal"`
}

// MovingPlatformConfig sets the oscillation of 'z' tiles
type MovingPlatformConfig struct {
	Reach float64 `yaml:"reach"` // in platform widths
	Speed float64 `yaml:"speed"` // pixels per second
}

// Default returns the built-in tuning
func Default() *Tuning {
	return &Tuning{
		Display: DisplayConfig{ScreenWidth: 1280, ScreenHeight: 768, Framerate: 60},
		Physics: PhysicsConfig{Gravity: 1, Inset: 50, TileSize: 64},
		Player: CharacterConfig{
			Width:            128,
			Height:           128,
			MaxHealth:        100,
			Speed:            8,
			SprintMultiplier: 1.5,
			JumpPower:        25,
			AttackDamage:     34,
			AttackDuration:   0.5,
			AttackCooldown:   0.5,
			HurtDuration:     0.25,
			DeathDuration:    1,
			RegenInterval:    3.5,
			RegenAmount:      5,
		},
		Enemy: CharacterConfig{
			Width:            128,
			Height:           128,
			MaxHealth:        100,
			Speed:            8,
			SprintMultiplier: 2,
			JumpPower:        25,
			AttackDamage:     20,
			AttackDuration:   0.25,
			AttackCooldown:   1.5,
			HurtDuration:     0.25,
			DeathDuration:    0.75,
		},
		AI: AIConfig{
			DetectionRange:  300,
			VerticalFactor:  0.5,
			MeleeRange:      60,
			ChaseDeadZone:   10,
			RoamMinDuration: 1,
			RoamMaxDuration: 3,
			ProbeGap:        5,
			WallProbeSize:   5,
			GroundProbeSize: 2,
		},
		Hazard:         HazardConfig{Damage: 10, Knockback: 6},
		Pickup:         PickupConfig{Heal: 20},
		MovingPlatform: MovingPlatformConfig{Reach: 3, Speed: 120},
		HealOnKill:     25,
	}
}

// PlayerStats converts the player section into character stats
func (t *Tuning) PlayerStats() entity.Stats {
	s := t.Player.stats()
	s.CollectsPickups = true
	s.RespawnOnDeath = true
	return s
}

// EnemyStats converts the enemy section into character stats.
// Enemies never regenerate.
func (t *Tuning) EnemyStats() entity.Stats {
	s := t.Enemy.stats()
	s.RegenInterval = 0
	s.RegenAmount = 0
	return s
}

func (c CharacterConfig) stats() entity.Stats {
	return entity.Stats{
		MaxHealth:        c.MaxHealth,
		Speed:            c.Speed,
		SprintMultiplier: c.SprintMultiplier,
		JumpPower:        c.JumpPower,
		AttackDamage:     c.AttackDamage,
		AttackDuration:   c.AttackDuration,
		AttackCooldown:   c.AttackCooldown,
		HurtDuration:     c.HurtDuration,
		DeathDuration:    c.DeathDuration,
		RegenInterval:    c.RegenInterval,
		RegenAmount:      c.RegenAmount,
	}
}

// DT returns the fixed tick length in seconds
func (t *Tuning) DT() float64 {
	if t.Display.Framerate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(t.Display.Framerate)
}
