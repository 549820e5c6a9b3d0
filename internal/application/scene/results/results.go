// Package results shows the tallies of a finished match.
package results

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/legion/internal/application/scene"
	"github.com/younwookim/legion/internal/domain/entity"
	"github.com/younwookim/legion/internal/infrastructure/persistence"
)

var colorBG = color.RGBA{16, 16, 32, 255}

// Results lists every fighter's line and waits for a rematch
type Results struct {
	result  *entity.MatchResult
	stats   *persistence.Stats
	screenW int
	screenH int
	restart func() (scene.Scene, error)

	// rematchPressed reports a press of the rematch key; replaceable in tests
	rematchPressed func() bool
}

// New creates the results screen. restart may be nil, in which case the
// screen stays up.
func New(result *entity.MatchResult, stats *persistence.Stats, screenW, screenH int, restart func() (scene.Scene, error)) *Results {
	return &Results{
		result:  result,
		stats:   stats,
		screenW: screenW,
		screenH: screenH,
		restart: restart,
		rematchPressed: func() bool {
			return inpututil.IsKeyJustPressed(ebiten.KeyR)
		},
	}
}

// Update waits for the rematch key
func (r *Results) Update(_ float64) (scene.Scene, error) {
	if r.restart == nil || !r.rematchPressed() {
		return nil, nil
	}
	next, err := r.restart()
	if err != nil {
		return nil, fmt.Errorf("failed to start rematch: %w", err)
	}
	return next, nil
}

// Headline names the winner
func Headline(res *entity.MatchResult) string {
	switch {
	case res == nil:
		return "NO CONTEST"
	case res.BossesWon:
		return "THE BOSSES WIN"
	case res.Winner >= 0 && res.Winner < len(res.Tallies):
		return fmt.Sprintf("%s WINS", strings.ToUpper(entity.Roster[res.Tallies[res.Winner].Character].Name))
	case res.WinningTeam != entity.TeamNone:
		return fmt.Sprintf("TEAM %d WINS", res.WinningTeam)
	default:
		return "NO CONTEST"
	}
}

// Lines formats one row per fighter
func Lines(res *entity.MatchResult) []string {
	if res == nil {
		return nil
	}
	lines := make([]string, 0, len(res.Tallies))
	for _, t := range res.Tallies {
		lines = append(lines, fmt.Sprintf("%-14s T%d  K%-3d D%-3d %3d%%",
			entity.Roster[t.Character].Name, t.Team, t.Kills, t.Deaths, t.DamageTaken))
	}
	return lines
}

// Draw renders the tallies
func (r *Results) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	text := Headline(r.result)
	if r.result != nil && r.result.SuddenDeath {
		text += " (SUDDEN DEATH)"
	}
	text += "\n\n" + strings.Join(Lines(r.result), "\n")
	if r.stats != nil {
		text += fmt.Sprintf("\n\n%s: %d-%d", r.stats.Profile, r.stats.Wins, r.stats.Losses)
	}
	if r.restart != nil {
		text += "\n\nR: rematch"
	}
	ebitenutil.DebugPrintAt(screen, text, 8, 8)
}

// OnEnter is called when entering this scene
func (r *Results) OnEnter() {
	log.Printf("[Results] %s", Headline(r.result))
}

// OnExit is called when leaving this scene
func (r *Results) OnExit() {}
