// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/duskblade/internal/application/scene"
	"github.com/younwookim/duskblade/internal/application/session"
	"github.com/younwookim/duskblade/internal/application/state"
	"github.com/younwookim/duskblade/internal/application/system"
	"github.com/younwookim/duskblade/internal/domain/entity"
	"github.com/younwookim/duskblade/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorPlatform = color.RGBA{80, 80, 100, 255}
	colorLift     = color.RGBA{120, 110, 80, 255}
	colorSpike    = color.RGBA{200, 50, 50, 255}
	colorHeart    = color.RGBA{240, 90, 140, 255}
	colorPlayer   = color.RGBA{100, 200, 100, 255}
	colorEnemy    = color.RGBA{200, 100, 100, 255}
	colorHurt     = color.RGBA{255, 255, 255, 220}
	colorDead     = color.RGBA{70, 70, 70, 160}
	colorHitbox   = color.RGBA{255, 220, 60, 140}
	colorCollide  = color.RGBA{60, 160, 255, 110}
	colorHealthBG = color.RGBA{60, 60, 60, 255}
	colorHealthFG = color.RGBA{100, 200, 100, 255}
)

// hitstopFrames freezes the scene briefly when a melee hit lands
const hitstopFrames = 4

// Options configures the Playing scene
type Options struct {
	Seed       int64
	Start      *entity.GameData // resume from this checkpoint when set
	Saver      session.Saver
	RecordPath string
	Reload     <-chan *config.Tuning // hot-reloaded tuning, applied between ticks
	Logger     *log.Logger
}

// Playing is the main gameplay scene
type Playing struct {
	config  *config.GameConfig
	session *session.Session
	input   *system.InputSystem
	screenW int
	screenH int
	dt      float64

	// Feedback
	hitstop int

	reload <-chan *config.Tuning
	logger *log.Logger

	// Input recording
	recorder       *Recorder
	recordFilename string
}

// New creates a new Playing scene.
// If opts.RecordPath is not empty, gameplay will be recorded.
func New(cfg *config.GameConfig, opts Options) (*Playing, error) {
	if cfg == nil || cfg.Tuning == nil {
		return nil, session.ErrNilConfig
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	p := &Playing{
		config:         cfg,
		input:          system.NewInputSystem(),
		screenW:        cfg.Tuning.Display.ScreenWidth,
		screenH:        cfg.Tuning.Display.ScreenHeight,
		dt:             cfg.Tuning.DT(),
		reload:         opts.Reload,
		logger:         logger,
		recordFilename: opts.RecordPath,
	}

	sessOpts := session.Options{
		Seed:   opts.Seed,
		Saver:  opts.Saver,
		Logger: logger,
		OnHit: func(_, _ *entity.Character) {
			p.hitstop = hitstopFrames
		},
	}

	var err error
	if opts.Start != nil {
		p.session, err = session.FromSave(cfg, *opts.Start, sessOpts)
	} else {
		p.session, err = session.New(cfg, sessOpts)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	// Initialize recorder if recording is enabled
	if opts.RecordPath != "" {
		p.recorder = NewRecorder(opts.Seed, p.dt, opts.Start)
		logger.Info("recording enabled", "path", opts.RecordPath, "seed", opts.Seed)
	}

	return p, nil
}

// Session returns the simulation driven by the scene
func (p *Playing) Session() *session.Session {
	return p.session
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	p.applyReload()

	// Handle hitstop
	if p.hitstop > 0 {
		p.hitstop--
		return nil, nil
	}

	switch p.session.State() {
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.session.SetPaused(false)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			return nil, scene.ErrQuit
		}
		return nil, nil
	case state.StateVictory:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return nil, scene.ErrQuit
		}
		return nil, nil
	}

	// Check for pause
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.session.SetPaused(true)
		return nil, nil
	}

	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && p.recorder != nil {
		p.saveRecording()
	}

	p.step(p.input.GetInput())

	// Auto-save recording at the end of the run
	if p.session.State() == state.StateVictory && p.recorder != nil {
		p.saveRecording()
		p.recorder.Stop()
	}

	return nil, nil // nil = stay on this scene
}

// step records and simulates one tick of input
func (p *Playing) step(input system.InputState) {
	if p.recorder != nil {
		p.recorder.RecordFrame(input)
	}
	p.session.Update(input.Intent(), p.dt)
}

// applyReload swaps in a hot-reloaded tuning if one is waiting and ends
// any recording in progress.
func (p *Playing) applyReload() {
	if p.reload == nil {
		return
	}
	select {
	case t, ok := <-p.reload:
		if !ok {
			p.reload = nil
			return
		}
		p.session.ApplyTuning(t)
		// Replays carry inputs only, so frames after a tuning swap would not
		// reproduce under simulate
		if p.recorder != nil && p.recorder.IsRecording() {
			p.recorder.Stop()
			p.logger.Warn("recording stopped after tuning reload", "frames", p.recorder.FrameCount())
		}
	default:
	}
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		p.logger.Warn("failed to save recording", "error", err)
	} else {
		p.logger.Info("recording saved", "path", filename, "frames", p.recorder.FrameCount())
	}
}

// camera returns the top-left world position of the view, clamped to the stage
func (p *Playing) camera() (float64, float64) {
	stage := p.session.Stage()
	c := p.session.Player().Center()

	camX := clampCam(c.X-float64(p.screenW)/2, stage.Width-float64(p.screenW))
	camY := clampCam(c.Y-float64(p.screenH)/2, stage.Height-float64(p.screenH))
	return camX, camY
}

func clampCam(v, maxV float64) float64 {
	if v > maxV {
		v = maxV
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	camX, camY := p.camera()
	debug := ebiten.IsKeyPressed(ebiten.KeyTab)

	p.drawObstacles(screen, camX, camY)
	for _, e := range p.session.Enemies() {
		p.drawCharacter(screen, e.Character, colorEnemy, camX, camY, debug)
	}
	p.drawCharacter(screen, p.session.Player(), colorPlayer, camX, camY, debug)

	p.drawUI(screen)

	// Draw state overlays
	switch p.session.State() {
	case state.StatePaused:
		p.drawOverlay(screen, color.RGBA{0, 0, 0, 128}, "PAUSED\n\nESC: resume  Q: quit")
	case state.StateVictory:
		text := fmt.Sprintf("VICTORY\n\nEnemies defeated: %d\n\nPress Enter to exit", p.session.Kills())
		p.drawOverlay(screen, color.RGBA{0, 60, 0, 180}, text)
	}
}

func (p *Playing) drawObstacles(screen *ebiten.Image, camX, camY float64) {
	for _, o := range p.session.Stage().Obstacles {
		var c color.Color
		switch o.Kind {
		case entity.KindPlatform:
			c = colorPlatform
		case entity.KindMovingPlatform:
			c = colorLift
		case entity.KindHazard:
			c = colorSpike
		case entity.KindPickup:
			if o.Collected {
				continue
			}
			c = colorHeart
		}
		fillRect(screen, o.Bounds, camX, camY, c)
	}
}

func (p *Playing) drawCharacter(screen *ebiten.Image, c *entity.Character, base color.Color, camX, camY float64, debug bool) {
	body := c.Bounds()

	// Flash while hurt
	fill := base
	switch {
	case c.IsDead():
		fill = colorDead
	case c.IsInvulnerable() && c.StateTicks()%6 < 3:
		fill = colorHurt
	}
	fillRect(screen, c.CollisionRect(c.Position), camX, camY, fill)

	// Facing marker
	eye := entity.Rect{X: body.Center().X + float64(c.Facing)*8 - 3, Y: body.Y + c.Inset + 8, W: 6, H: 6}
	fillRect(screen, eye, camX, camY, color.White)

	if c.Attacking() {
		fillRect(screen, p.session.Hitbox(c), camX, camY, colorHitbox)
	}

	if debug {
		fillRect(screen, body, camX, camY, colorCollide)
		ebitenutil.DebugPrintAt(screen, c.State().String(), int(body.X-camX), int(body.Y+c.Inset-camY-16))
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	player := p.session.Player()

	// Health bar
	barX := float32(10)
	barY := float32(p.screenH - 20)
	barW := float32(200)
	barH := float32(10)

	vector.FillRect(screen, barX, barY, barW, barH, colorHealthBG, false)
	ratio := float32(player.Health()) / float32(player.MaxHealth())
	vector.FillRect(screen, barX, barY, barW*ratio, barH, colorHealthFG, false)

	status := fmt.Sprintf("Level %d: %s | Enemies: %d | Kills: %d",
		p.session.Level()+1, p.session.Stage().Name, len(p.session.Enemies()), p.session.Kills())
	ebitenutil.DebugPrintAt(screen, status, 10, p.screenH-38)

	// Controls
	ebitenutil.DebugPrint(screen, "A/D: Move | Shift: Sprint | Space: Jump | J/Click: Attack | Tab: Debug | ESC: Pause")
}

func (p *Playing) drawOverlay(screen *ebiten.Image, c color.Color, text string) {
	vector.FillRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), c, false)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-30)
}

func fillRect(screen *ebiten.Image, r entity.Rect, camX, camY float64, c color.Color) {
	vector.FillRect(screen, float32(r.X-camX), float32(r.Y-camY), float32(r.W), float32(r.H), c, false)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
