package main

import (
	"fmt"
	"strings"

	"github.com/younwookim/legion/internal/application/replay"
	"github.com/younwookim/legion/internal/application/scene/results"
	"github.com/younwookim/legion/internal/application/system"
	"github.com/younwookim/legion/internal/infrastructure/config"
)

// replayReport summarizes a headless replay run
type replayReport struct {
	Frames int
	Ticks  int
	Match  *system.Match
}

func (r *replayReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "replayed %d frames in %d ticks\n", r.Frames, r.Ticks)
	if !r.Match.Finished() {
		b.WriteString("match unfinished\n")
		return b.String()
	}
	res := r.Match.Result()
	b.WriteString(results.Headline(res))
	b.WriteByte('\n')
	for _, line := range results.Lines(res) {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// verifyReplay rebuilds the recorded match from its files and seed and
// plays the recorded keys back
func verifyReplay(loader *config.Loader, data *replay.ReplayData) (*replayReport, error) {
	cfg, err := loader.LoadAll(data.Match, data.Stage)
	if err != nil {
		return nil, err
	}
	return playReplay(cfg, data)
}

// playReplay feeds the recorded slot one frame per tick until the keys run
// out or the match ends
func playReplay(cfg *config.GameConfig, data *replay.ReplayData) (*replayReport, error) {
	m, err := newMatch(cfg, data.Seed)
	if err != nil {
		return nil, err
	}
	if data.Slot < 0 || data.Slot >= len(m.Fighters()) {
		return nil, fmt.Errorf("replay slot %d out of range", data.Slot)
	}
	h := m.Human(data.Slot)
	if h == nil {
		return nil, fmt.Errorf("replay slot %d is not a human fighter", data.Slot)
	}

	r := replay.NewReplayer(*data)
	for !m.Finished() {
		in, ok := r.Next()
		if !ok {
			break
		}
		h.SetInput(in)
		m.Tick()
	}

	return &replayReport{Frames: r.CurrentFrame(), Ticks: m.Ticks(), Match: m}, nil
}
