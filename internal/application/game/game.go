// Package game provides the main game loop manager that handles Scene
// transitions and pausing.
package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/legion/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	paused  bool

	// pausePressed reports a press of the pause key; replaceable in tests
	pausePressed func() bool
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0,
		pausePressed: func() bool {
			return inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
		},
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	if g.pausePressed() {
		g.SetPaused(!g.paused)
	}
	if g.paused {
		return nil
	}

	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the delta time used for updates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// Paused reports whether the tick loop is suspended
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused suspends or resumes the tick loop, telling the scene
func (g *Game) SetPaused(paused bool) {
	if paused == g.paused {
		return
	}
	g.paused = paused
	p, ok := g.current.(scene.Pausable)
	switch {
	case !ok:
	case paused:
		p.Suspend()
	default:
		p.Resume()
	}
	log.Printf("[Game] paused=%v", paused)
}

// Current returns the active scene
func (g *Game) Current() scene.Scene {
	return g.current
}
