// Package playing provides the main fighting scene.
package playing

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/legion/internal/application/link"
	"github.com/younwookim/legion/internal/application/scene"
	"github.com/younwookim/legion/internal/application/scene/results"
	"github.com/younwookim/legion/internal/application/state"
	"github.com/younwookim/legion/internal/application/system"
	"github.com/younwookim/legion/internal/domain/entity"
	"github.com/younwookim/legion/internal/ecs"
	"github.com/younwookim/legion/internal/infrastructure/config"
	"github.com/younwookim/legion/internal/infrastructure/persistence"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorSolid    = color.RGBA{80, 80, 100, 255}
	colorCloud    = color.RGBA{170, 170, 200, 255}
	colorLadder   = color.RGBA{140, 100, 60, 255}
	colorHot      = color.RGBA{200, 50, 50, 255}
	colorWater    = color.RGBA{40, 80, 180, 160}
	colorDoor     = color.RGBA{120, 90, 40, 255}
	colorFlash    = color.RGBA{255, 255, 255, 200}
	colorOverlay  = color.RGBA{0, 0, 0, 128}
	colorFinished = color.RGBA{0, 0, 60, 180}
)

// readyTicks is the pre-fight countdown
const readyTicks = 90

// bannerTicks is how long a KO or sudden-death banner stays up
const bannerTicks = 60

// Options configures a playing scene
type Options struct {
	// Input feeds the local human slot; the keyboard when nil
	Input system.InputSource
	// Slot is the local human slot; the match lead when negative
	Slot int

	RecordPath string
	MatchName  string

	// Session mirrors the match to a linked machine
	Session *link.Session

	Store   persistence.Storage
	Profile string

	// Restart builds the scene for a rematch
	Restart func() (scene.Scene, error)
}

// Playing is the main fighting scene
type Playing struct {
	config *config.GameConfig
	match  *system.Match
	world  *ecs.World
	input  system.InputSource
	slot   int

	session *link.Session
	store   persistence.Storage
	profile string
	restart func() (scene.Scene, error)

	screenW, screenH int
	scale            float64

	countdown int
	hitstop   int
	paused    bool
	banner    string
	bannerFor int
	saved     bool

	// confirmPressed reports a press of the continue key; replaceable in tests
	confirmPressed func() bool

	recorder       *Recorder
	recordFilename string
}

// New creates a playing scene around a constructed match
func New(cfg *config.GameConfig, m *system.Match, opts Options) *Playing {
	input := opts.Input
	if input == nil {
		input = system.NewInputSystem()
	}
	slot := opts.Slot
	if slot < 0 {
		slot = m.LeadIndex()
	}

	p := &Playing{
		config:         cfg,
		match:          m,
		world:          ecs.NewWorld(),
		input:          input,
		slot:           slot,
		session:        opts.Session,
		store:          opts.Store,
		profile:        opts.Profile,
		restart:        opts.Restart,
		screenW:        cfg.Rules.Display.ScreenWidth,
		screenH:        cfg.Rules.Display.ScreenHeight,
		scale:          float64(cfg.Rules.Display.ScreenWidth) / float64(cfg.Rules.Display.ViewWidth),
		countdown:      readyTicks,
		recordFilename: opts.RecordPath,
		confirmPressed: func() bool {
			return inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
		},
	}

	if opts.RecordPath != "" {
		stageID := m.Stage().Name
		if cfg.Stage != nil && cfg.Stage.ID != "" {
			stageID = cfg.Stage.ID
		}
		p.recorder = NewRecorder(m.Seed(), stageID, opts.MatchName, slot)
		log.Printf("[Playing] recording enabled: %s (seed: %d)", opts.RecordPath, m.Seed())
	}

	m.OnEvent = p.onEvent
	ecs.Sync(p.world, m)
	return p
}

// Phase returns the current match phase
func (p *Playing) Phase() state.Phase {
	return state.Of(p.match, p.countdown > 0, p.paused)
}

// Update proceeds the match by one tick (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	if p.bannerFor > 0 {
		p.bannerFor--
	}

	switch p.Phase() {
	case state.PhaseReady:
		p.countdown--
	case state.PhaseFinished:
		return p.updateFinished()
	case state.PhaseFighting, state.PhaseSuddenDeath:
		p.updateFighting()
	}

	ecs.Sync(p.world, p.match)
	return nil, nil // nil = stay on this scene
}

func (p *Playing) updateFighting() {
	if p.hitstop > 0 {
		p.hitstop--
		return
	}

	input := p.input.GetInput()
	if p.recorder != nil {
		p.recorder.RecordFrame(p.match.Ticks(), input)
	}
	if h := p.match.Human(p.slot); h != nil {
		h.SetInput(input)
	}

	p.match.Tick()

	if p.session != nil {
		if err := p.session.Exchange(); err != nil {
			p.dropLink(err)
		}
	}
}

// dropLink hands the peer's fighters to the computer and plays on
func (p *Playing) dropLink(err error) {
	log.Printf("[Playing] link dropped: %v", err)
	for i := range p.match.Fighters() {
		if !p.session.Owns(i) {
			p.match.SetController(i, system.NewAIController())
		}
	}
	_ = p.session.Close()
	p.session = nil
	p.showBanner("LINK LOST")
}

func (p *Playing) updateFinished() (scene.Scene, error) {
	if !p.saved {
		p.saved = true
		p.saveResult()
		p.saveRecording()
	}
	if !p.confirmPressed() {
		return nil, nil
	}
	return results.New(p.match.Result(), p.stats(), p.screenW, p.screenH, p.restart), nil
}

func (p *Playing) onEvent(e system.Event) {
	switch e.Kind {
	case system.EventHit:
		p.hitstop = p.config.Rules.Combat.HitstopFrames
	case system.EventKO:
		p.showBanner(fmt.Sprintf("KO! %s", entity.Roster[p.match.Fighters()[e.Fighter].Character].Name))
	case system.EventSuddenDeath:
		p.showBanner("SUDDEN DEATH")
	case system.EventFinished:
		log.Printf("[Playing] match over after %d ticks", p.match.Ticks())
	}
}

func (p *Playing) showBanner(text string) {
	p.banner = text
	p.bannerFor = bannerTicks
}

// saveResult scores the match for the local profile
func (p *Playing) saveResult() {
	if p.store == nil || p.match.Result() == nil {
		return
	}
	r, err := persistence.RecordResult(p.store, p.profile, p.slot, p.match.Result())
	if err != nil {
		log.Printf("[Playing] failed to record result: %v", err)
		return
	}
	log.Printf("[Playing] result recorded for %s (won: %v)", p.profile, r.Won)
}

func (p *Playing) stats() *persistence.Stats {
	if p.store == nil {
		return nil
	}
	s, err := p.store.LoadStats(p.profile)
	if err != nil {
		return nil
	}
	return s
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || p.recorder.FrameCount() == 0 {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("[Playing] failed to save recording: %v", err)
	} else {
		log.Printf("[Playing] recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
	p.recorder.Stop()
}

// Suspend is called when the game is paused
func (p *Playing) Suspend() {
	p.paused = true
}

// Resume is called when the game is unpaused
func (p *Playing) Resume() {
	p.paused = false
}

// Draw renders the arena from the ecs world
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	p.drawTiles(screen)
	p.drawEntities(screen)
	p.drawHUD(screen)

	if p.bannerFor > 0 {
		ebitenutil.DebugPrintAt(screen, p.banner, p.screenW/2-len(p.banner)*3, p.screenH/3)
	}

	switch p.Phase() {
	case state.PhaseReady:
		p.drawCenter(screen, colorOverlay, fmt.Sprintf("READY\n\n   %d", p.countdown/30+1))
	case state.PhasePaused:
		p.drawCenter(screen, colorOverlay, "PAUSED\n\nPress P to resume")
	case state.PhaseFinished:
		p.drawCenter(screen, colorFinished, "GAME!\n\nPress Enter")
	}
}

func (p *Playing) rect(screen *ebiten.Image, x, y, w, h int, c color.Color) {
	s := p.scale
	ebitenutil.DrawRect(screen,
		float64(x-p.world.CameraX)*s, float64(y-p.world.CameraY)*s,
		float64(w)*s, float64(h)*s, c)
}

func (p *Playing) drawTiles(screen *ebiten.Image) {
	stage := p.match.Stage()
	ts := stage.TileSize
	view := p.config.Rules.Display
	startX, startY := p.world.CameraX/ts, p.world.CameraY/ts
	endX, endY := (p.world.CameraX+view.ViewWidth)/ts+1, (p.world.CameraY+view.ViewHeight)/ts+1

	for ty := startY; ty <= endY && ty < stage.Height; ty++ {
		for tx := startX; tx <= endX && tx < stage.Width; tx++ {
			if tx < 0 || ty < 0 {
				continue
			}
			c := tileColor(stage.FlagsAt(tx, ty))
			if c == nil {
				continue
			}
			p.rect(screen, tx*ts, ty*ts, ts, ts, c)
		}
	}
}

func tileColor(f entity.TileFlag) color.Color {
	switch {
	case f.Any(entity.TileHot):
		return colorHot
	case f.Any(entity.TileCloud):
		return colorCloud
	case f.Any(entity.TileSolid):
		return colorSolid
	case f.Any(entity.TileLadder):
		return colorLadder
	case f.Any(entity.TileWater):
		return colorWater
	case f.Any(entity.TileDoor):
		return colorDoor
	default:
		return nil
	}
}

func (p *Playing) drawEntities(screen *ebiten.Image) {
	w := p.world
	for _, id := range w.Drawables() {
		pos, ext, sp := w.Position[id], w.Extent[id], w.Sprite[id]
		var c color.Color = sp.Color
		if sp.Flash && w.Tick%4 < 2 {
			c = colorFlash
		}
		p.rect(screen, pos.X, pos.Y, ext.W, ext.H, c)

		// facing notch
		if w.Kind[id] == ecs.KindFighter {
			nx := pos.X
			if w.Facing[id].Right {
				nx = pos.X + ext.W - 2
			}
			p.rect(screen, nx, pos.Y+2, 2, 2, colorBG)
		}
	}
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	for i, g := range p.world.Gauges() {
		line := fmt.Sprintf("%s %d%%", g.Label, g.Percent)
		if p.match.Config().MatchType() == entity.MatchStock {
			line += fmt.Sprintf(" x%d", g.Lives)
		}
		ebitenutil.DebugPrintAt(screen, line, 4+(i%2)*(p.screenW/2), p.screenH-28+(i/2)*12)
	}

	if p.match.Config().MatchType() == entity.MatchTimed {
		m, s := p.match.Clock().Remaining()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d:%02d", m, s), p.screenW/2-12, 2)
	}
	for _, b := range p.match.Bosses() {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("BOSS %d", b.HitPoints), 4+int(b.Kind)*(p.screenW/2), 2)
	}
}

func (p *Playing) drawCenter(screen *ebiten.Image, c color.Color, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), c)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-20)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
	if p.session != nil {
		_ = p.session.Close()
		p.session = nil
	}
}

// Match returns the simulated match
func (p *Playing) Match() *system.Match {
	return p.match
}

// World returns the render projection
func (p *Playing) World() *ecs.World {
	return p.world
}
