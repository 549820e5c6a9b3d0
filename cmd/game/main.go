package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/legion/internal/application/game"
	"github.com/younwookim/legion/internal/application/link"
	"github.com/younwookim/legion/internal/application/replay"
	"github.com/younwookim/legion/internal/application/scene"
	"github.com/younwookim/legion/internal/application/scene/playing"
	"github.com/younwookim/legion/internal/application/system"
	"github.com/younwookim/legion/internal/domain/entity"
	"github.com/younwookim/legion/internal/infrastructure/config"
	"github.com/younwookim/legion/internal/infrastructure/persistence"
)

//go:embed configs
var configFS embed.FS

// linkSeed is used by both linked machines when no -seed is given
const linkSeed = 7777

type options struct {
	match   string
	stage   string
	seed    int64
	record  string
	replay  string
	host    bool
	join    string
	store   string
	profile string
	results bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.match, "match", "stock", "Match file under configs/matches")
	flag.StringVar(&o.stage, "stage", "", "Override the match's stage")
	flag.Int64Var(&o.seed, "seed", 0, "Random seed (0 = time based)")
	flag.StringVar(&o.record, "record", "", "Record input to file (e.g., -record replay.json)")
	flag.StringVar(&o.replay, "replay", "", "Verify a recorded replay headlessly and exit")
	flag.BoolVar(&o.host, "host", false, "Wait for a linked machine to join")
	flag.StringVar(&o.join, "join", "", "Join a linked match (e.g., -join ws://host:7777/link)")
	flag.StringVar(&o.store, "store", "", "Result store: a postgres DSN or a save-data app name")
	flag.StringVar(&o.profile, "profile", "player", "Profile results are saved under")
	flag.BoolVar(&o.results, "results", false, "Print the profile's saved results and exit")
	flag.Parse()
	return o
}

func newLoader() *config.Loader {
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	return config.NewFSLoader(fsys, "configs")
}

// newMatch builds the stage and match of a loaded configuration
func newMatch(cfg *config.GameConfig, seed int64) (*system.Match, error) {
	stage, err := system.LoadStage(cfg.Stage)
	if err != nil {
		return nil, err
	}
	return system.NewMatch(stage, cfg.Rules, cfg.Match, seed)
}

// remoteSlot returns the first fighter the match file leaves to a linked machine
func remoteSlot(m *system.Match) (int, bool) {
	for i, f := range m.Fighters() {
		if f.Controller == entity.ControlRemote {
			return i, true
		}
	}
	return 0, false
}

// connect links the match to the other machine and returns the local slot
func connect(o options, cfg *config.GameConfig, m *system.Match) (*link.Session, int, error) {
	remote, ok := remoteSlot(m)
	if !ok {
		return nil, 0, fmt.Errorf("match %s has no remote fighter", o.match)
	}

	if o.host {
		log.Printf("[Main] waiting for a peer on %s%s", cfg.Rules.Link.Addr, cfg.Rules.Link.Path)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		t, err := link.Accept(ctx, cfg.Rules.Link.Addr, cfg.Rules.Link.Path)
		if err != nil {
			return nil, 0, err
		}
		return link.NewHostSession(t, m, remote), -1, nil
	}

	log.Printf("[Main] joining %s", o.join)
	t, err := link.Dial(o.join)
	if err != nil {
		return nil, 0, err
	}
	s := link.NewJoinSession(t, m, remote)
	m.SetController(remote, system.NewHumanController())
	return s, remote, nil
}

func printResults(store persistence.Storage, profile string) error {
	s, err := store.LoadStats(profile)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d matches, %d wins, %d losses\n", s.Profile, s.Matches, s.Wins, s.Losses)
	fmt.Printf("  sudden death: %d won, %d lost\n", s.SuddenDeathWins, s.SuddenDeathLosses)
	fmt.Printf("  kills: %d, deaths: %d\n", s.Kills, s.Deaths)
	return nil
}

func main() {
	o := parseFlags()
	loader := newLoader()

	if o.replay != "" {
		data, err := replay.LoadReplay(o.replay)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		res, err := verifyReplay(loader, data)
		if err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		fmt.Println(res)
		return
	}

	store, err := persistence.Open(o.store)
	if err != nil {
		log.Printf("[Main] result store unavailable, results are kept in memory: %v", err)
		store = persistence.NewMemoryStore()
	}
	defer func() { _ = store.Close() }()

	if o.results {
		if err := printResults(store, o.profile); err != nil {
			log.Fatalf("No results for %s: %v", o.profile, err)
		}
		return
	}

	cfg, err := loader.LoadAll(o.match, o.stage)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	linked := o.host || o.join != ""
	seed := o.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		if linked {
			seed = linkSeed
		}
	}

	var start func() (scene.Scene, error)
	start = func() (scene.Scene, error) {
		m, err := newMatch(cfg, seed)
		if err != nil {
			return nil, err
		}
		opts := playing.Options{
			Slot:       -1,
			RecordPath: o.record,
			MatchName:  o.match,
			Store:      store,
			Profile:    o.profile,
			Restart:    start,
		}
		if linked {
			opts.Session, opts.Slot, err = connect(o, cfg, m)
			if err != nil {
				return nil, fmt.Errorf("link: %w", err)
			}
			opts.Restart = nil
		}
		log.Printf("[Main] %s match on %s (seed: %d)", cfg.Match.Type, cfg.Stage.Name, seed)
		return playing.New(cfg, m, opts), nil
	}

	first, err := start()
	if err != nil {
		log.Fatalf("Failed to start match: %v", err)
	}

	display := cfg.Rules.Display
	g := game.New(first, display.ScreenWidth, display.ScreenHeight)

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Legion")
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		log.Printf("[Main] %v", err)
		os.Exit(1)
	}
}
