// Command spectate runs a computer-only match in the terminal.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/legion/internal/application/system"
	"github.com/younwookim/legion/internal/ecs"
	"github.com/younwookim/legion/internal/infrastructure/config"
)

// spectator owns a match where every fighter is played by the computer
type spectator struct {
	cfg    *config.GameConfig
	match  *system.Match
	world  *ecs.World
	paused bool
}

func newSpectator(cfg *config.GameConfig, seed int64) (*spectator, error) {
	stage, err := system.LoadStage(cfg.Stage)
	if err != nil {
		return nil, err
	}
	m, err := system.NewMatch(stage, cfg.Rules, cfg.Match, seed)
	if err != nil {
		return nil, err
	}
	for i := range m.Fighters() {
		if _, ok := m.Controller(i).(*system.AIController); !ok {
			m.SetController(i, system.NewAIController())
		}
	}

	s := &spectator{cfg: cfg, match: m, world: ecs.NewWorld()}
	ecs.Sync(s.world, m)
	return s, nil
}

// step advances the match by one tick unless it is paused or over
func (s *spectator) step() {
	if s.paused || s.match.Finished() {
		return
	}
	s.match.Tick()
	ecs.Sync(s.world, s.match)
}

// handleKey applies a key press and reports whether to keep running
func (s *spectator) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			s.paused = !s.paused
		}
	}
	return true
}

func run(screen tcell.Screen, s *spectator, tps int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.match.StartClock(ctx)

	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !s.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			s.step()
			screen.Clear()
			render(screen, s.match, s.world)
			screen.Show()
		}
	}
}

func main() {
	dir := flag.String("configs", "cmd/game/configs", "Config directory")
	matchName := flag.String("match", "exhibition", "Match file under the config directory")
	stageName := flag.String("stage", "", "Override the match's stage")
	seed := flag.Int64("seed", 0, "Random seed (0 = time based)")
	tps := flag.Int("tps", 60, "Ticks per second")
	flag.Parse()

	cfg, err := config.NewLoader(*dir).LoadAll(*matchName, *stageName)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if *tps <= 0 {
		*tps = cfg.Rules.Display.Framerate
	}

	s, err := newSpectator(cfg, *seed)
	if err != nil {
		log.Fatalf("Failed to start match: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}

	// the screen owns the terminal until Fini
	log.SetOutput(io.Discard)
	run(screen, s, *tps)
	screen.Fini()
	log.SetOutput(os.Stderr)

	if s.match.Finished() {
		log.Printf("[Spectate] finished after %d ticks", s.match.Ticks())
	}
}
