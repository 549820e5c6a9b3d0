package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/legion/internal/domain/entity"
	"github.com/younwookim/legion/internal/infrastructure/config"
)

func newTestMatch(t testing.TB, cfg *config.MatchConfig) *Match {
	t.Helper()
	m, err := NewMatch(testStage(t), config.DefaultRules(), cfg, 1)
	require.NoError(t, err)
	return m
}

// inPlay takes f off the respawn platform and stands it on the floor
func inPlay(f *entity.Fighter, x int) {
	f.Clear(entity.StatusOnStage | entity.StatusInvincible)
	f.X = x
	f.Y = 96 - f.Height - f.HeightOdd()
}

func human(name string, team int) config.FighterConfig {
	return config.FighterConfig{Character: name, Team: team, Controller: "human"}
}

func cpu(name string, team int) config.FighterConfig {
	return config.FighterConfig{Character: name, Team: team, Controller: "ai"}
}

func TestNewMatch(t *testing.T) {
	m := newTestMatch(t, testMatchConfig(cpu("Link", 0), human("Mario", 0), cpu("Fox", 0)))

	x, y := m.Camera()
	assert.Equal(t, 80, x)
	assert.Equal(t, 0, y)

	require.Len(t, m.Fighters(), 3)
	assert.Equal(t, 1, m.LeadIndex())
	assert.Same(t, m.Fighters()[1], m.Lead())
	assert.NotNil(t, m.Human(1))
	assert.Nil(t, m.Human(0))

	for i, f := range m.Fighters() {
		assert.Equal(t, entity.EntityID(i+1), f.ID)
		assert.Equal(t, 3, f.Lives)
		assert.True(t, f.Is(entity.StatusOnStage))
		assert.Equal(t, spawnPoints[i].X+80, f.X)
		assert.Equal(t, spawnPoints[i].Y, f.Y)
	}
	assert.Nil(t, m.Bosses())
	assert.False(t, m.Finished())
}

func TestNewMatch_Invalid(t *testing.T) {
	cfg := testMatchConfig(cpu("Nobody", 0))
	_, err := NewMatch(testStage(t), config.DefaultRules(), cfg, 1)
	assert.Error(t, err)
}

func TestMatch_Entry(t *testing.T) {
	t.Run("a human enters on any key", func(t *testing.T) {
		m := newTestMatch(t, testMatchConfig(human("Mario", 0), cpu("Link", 0)))
		f := m.Fighters()[0]

		m.Tick()
		assert.True(t, f.Is(entity.StatusOnStage))
		assert.True(t, f.Is(entity.StatusInvincible))

		m.Human(0).SetInput(InputState{Left: true})
		m.Tick()
		assert.False(t, f.Is(entity.StatusOnStage))
		assert.False(t, f.Is(entity.StatusInvincible))
	})

	t.Run("the computer waits out the entry time", func(t *testing.T) {
		m := newTestMatch(t, testMatchConfig(human("Mario", 0), cpu("Link", 0)))
		f := m.Fighters()[1]

		for i := 0; i <= m.Rules().Combat.EntryTicks; i++ {
			m.Tick()
		}
		assert.True(t, f.Is(entity.StatusOnStage))

		m.Tick()
		assert.False(t, f.Is(entity.StatusOnStage))
	})
}

func TestMatch_HumanJump(t *testing.T) {
	m := newTestMatch(t, testMatchConfig(human("Mario", 0), cpu("Link", 0)))
	f := m.Fighters()[0]
	inPlay(f, 96)

	m.Human(0).SetInput(InputState{Jump: true})
	m.Tick()

	assert.Equal(t, 1, f.NumJumps)
	assert.Equal(t, entity.Jumping, f.Loco)
	assert.Equal(t, m.Rules().Physics.JumpValue, f.JumpValue)
}

func TestMatch_HumanGrabLatch(t *testing.T) {
	m := newTestMatch(t, testMatchConfig(human("Mario", 1), cpu("Mario", 2)))
	a, b := m.Fighters()[0], m.Fighters()[1]
	inPlay(a, 96)
	inPlay(b, 106)
	a.Direction = entity.Right

	m.Human(0).SetInput(InputState{Grab: true})
	m.Tick()
	require.True(t, a.Is(entity.StatusGrabbing))
	require.True(t, b.Is(entity.StatusHeld))

	m.Human(0).SetInput(InputState{Right: true})
	m.Tick()
	assert.False(t, a.Is(entity.StatusGrabbing))
	assert.False(t, b.Is(entity.StatusHeld))
	assert.Same(t, a, b.LastHitBy)
}

func TestMatch_KnockOut(t *testing.T) {
	m := newTestMatch(t, testMatchConfig(human("Mario", 0), cpu("Link", 0)))
	a, b := m.Fighters()[0], m.Fighters()[1]
	inPlay(b, 96)
	b.Y = m.Stage().PixelHeight() + 8
	b.LastHitBy = a
	b.Percent = 120

	var events []Event
	m.OnEvent = func(e Event) { events = append(events, e) }

	for i := 1; i < m.Rules().Combat.DeathTicks; i++ {
		m.Tick()
	}
	assert.Equal(t, 3, b.Lives)

	m.Tick()
	assert.Equal(t, 2, b.Lives)
	assert.Equal(t, 1, b.Deaths)
	assert.Equal(t, 1, a.Kills)
	assert.Zero(t, b.Percent)
	assert.True(t, b.Alive())
	assert.True(t, b.Is(entity.StatusOnStage))
	assert.Nil(t, b.LastHitBy)

	camX, camY := m.Camera()
	assert.GreaterOrEqual(t, b.X, camX)
	assert.GreaterOrEqual(t, b.Y, camY)

	require.Len(t, events, 2)
	assert.Equal(t, Event{Kind: EventKO, Fighter: 1, Other: 0}, events[0])
	assert.Equal(t, EventRespawn, events[1].Kind)
}

func TestMatch_StockWin(t *testing.T) {
	m := newTestMatch(t, testMatchConfig(human("Mario", 0), cpu("Link", 0)))
	a, b := m.Fighters()[0], m.Fighters()[1]
	inPlay(b, 96)
	b.Lives = 1
	b.Y = m.Stage().PixelHeight() + 8
	b.LastHitBy = a

	for i := 0; i < m.Rules().Combat.DeathTicks; i++ {
		m.Tick()
	}
	require.False(t, b.Alive())
	assert.False(t, m.Finished())

	m.Tick()
	require.True(t, m.Finished())
	res := m.Result()
	assert.Equal(t, 0, res.Winner)
	assert.False(t, res.SuddenDeath)
	require.Len(t, res.Tallies, 2)
	assert.Equal(t, 1, res.Tallies[0].Kills)
	assert.False(t, res.Tallies[1].Alive)

	ticks := m.Ticks()
	m.Tick()
	assert.Equal(t, ticks, m.Ticks())
}

func TestMatch_TeamStockWin(t *testing.T) {
	m := newTestMatch(t, testMatchConfig(human("Mario", 1), cpu("Link", 1), cpu("Fox", 2)))
	m.Fighters()[2].Set(entity.StatusDead)

	m.Tick()

	require.True(t, m.Finished())
	assert.Equal(t, entity.Team(1), m.Result().WinningTeam)
	assert.Equal(t, -1, m.Result().Winner)
}

func timedConfig(fighters ...config.FighterConfig) *config.MatchConfig {
	cfg := testMatchConfig(fighters...)
	cfg.Type = "timed"
	cfg.Minutes = 2
	return cfg
}

// expire runs the clock out on the next step
func expire(m *Match) {
	m.Clock().Reset(0)
}

func TestMatch_TimedWinner(t *testing.T) {
	m := newTestMatch(t, timedConfig(human("Mario", 0), cpu("Link", 0)))
	for _, f := range m.Fighters() {
		assert.Equal(t, 1, f.Lives)
	}
	m.Fighters()[1].Kills = 2
	m.Fighters()[1].Deaths = 1

	expire(m)
	m.Tick()

	require.True(t, m.Finished())
	assert.Equal(t, 1, m.Result().Winner)
	assert.False(t, m.SuddenDeath())
}

func TestMatch_TimedTeamTie(t *testing.T) {
	m := newTestMatch(t, timedConfig(human("Mario", 1), cpu("Link", 1), cpu("Fox", 2)))
	m.Fighters()[2].Deaths = 1

	expire(m)
	m.Tick()

	require.True(t, m.Finished())
	assert.Equal(t, entity.Team(1), m.Result().WinningTeam)
	assert.Equal(t, -1, m.Result().Winner)
}

func TestMatch_SuddenDeath(t *testing.T) {
	m := newTestMatch(t, timedConfig(human("Mario", 0), cpu("Link", 0), cpu("Fox", 0)))
	a, b, c := m.Fighters()[0], m.Fighters()[1], m.Fighters()[2]
	c.Deaths = 1

	var sudden int
	m.OnEvent = func(e Event) {
		if e.Kind == EventSuddenDeath {
			sudden++
		}
	}

	expire(m)
	m.Tick()

	require.False(t, m.Finished())
	assert.True(t, m.SuddenDeath())
	assert.Equal(t, 1, sudden)
	assert.False(t, c.Alive())
	for _, f := range []*entity.Fighter{a, b} {
		assert.True(t, f.Alive())
		assert.Equal(t, 300, f.Percent)
		assert.Equal(t, 1, f.Lives)
		assert.True(t, f.Is(entity.StatusOnStage))
	}
	minutes, _ := m.Clock().Remaining()
	assert.Equal(t, 1, minutes)

	inPlay(b, 96)
	b.Y = m.Stage().PixelHeight() + 8
	for i := 0; i < m.Rules().Combat.DeathTicks; i++ {
		m.Tick()
	}
	require.False(t, b.Alive())

	m.Tick()
	require.True(t, m.Finished())
	assert.Equal(t, 0, m.Result().Winner)
	assert.True(t, m.Result().SuddenDeath)
}

func TestMatch_BossFight(t *testing.T) {
	bossConfig := func() *config.MatchConfig {
		cfg := testMatchConfig(human("Mario", 0))
		cfg.Bosses = 2
		return cfg
	}

	t.Run("bosses start from the view origin", func(t *testing.T) {
		m := newTestMatch(t, bossConfig())
		require.Len(t, m.Bosses(), 2)
		assert.Equal(t, entity.PrimaryHomeX+80, m.Bosses()[0].X)
	})

	t.Run("bosses win when the lead falls", func(t *testing.T) {
		m := newTestMatch(t, bossConfig())
		m.Lead().Set(entity.StatusDead)

		m.Tick()

		require.True(t, m.Finished())
		assert.True(t, m.Result().BossesWon)
	})

	t.Run("lead wins when every boss is down", func(t *testing.T) {
		m := newTestMatch(t, bossConfig())
		for _, h := range m.Bosses() {
			h.Dead = true
		}

		m.Tick()

		require.True(t, m.Finished())
		assert.False(t, m.Result().BossesWon)
		assert.Equal(t, 0, m.Result().Winner)
	})

	t.Run("runs without a result while both sides stand", func(t *testing.T) {
		m := newTestMatch(t, bossConfig())
		for i := 0; i < 120; i++ {
			m.Tick()
		}
		assert.False(t, m.Finished())
	})
}

func TestMatch_FightVariants(t *testing.T) {
	cfg := testMatchConfig(human("Mario", 0), cpu("Link", 0))
	cfg.MetalFight = true
	cfg.CloakedFight = true
	m := newTestMatch(t, cfg)

	m.Tick()

	assert.False(t, m.Lead().IsAny(entity.StatusMetal|entity.StatusCloaked))
	assert.True(t, m.Fighters()[1].Is(entity.StatusMetal|entity.StatusCloaked))
}

func TestMatch_Camera(t *testing.T) {
	m := newTestMatch(t, testMatchConfig(human("Mario", 0), cpu("Link", 0)))
	lead := m.Lead()
	inPlay(lead, 80+150)

	m.Tick()
	x, _ := m.Camera()
	assert.Equal(t, 82, x)

	inPlay(lead, 300)
	for i := 0; i < 100; i++ {
		m.Tick()
		inPlay(lead, 300)
	}
	x, _ = m.Camera()
	assert.Equal(t, 160, x)
}

func TestMatch_SetController(t *testing.T) {
	m := newTestMatch(t, testMatchConfig(human("Mario", 0), cpu("Link", 0)))

	m.SetController(0, NewAIController())
	assert.Equal(t, entity.ControlAI, m.Fighters()[0].Controller)
	assert.Equal(t, 0, m.LeadIndex())

	m.SetController(1, NewHumanController())
	assert.Equal(t, entity.ControlHuman, m.Fighters()[1].Controller)
	assert.Equal(t, 1, m.LeadIndex())
}

func TestMatch_Deterministic(t *testing.T) {
	cfg := testMatchConfig(cpu("Ganondorf", 0), cpu("Zelda", 0), cpu("Link", 0), cpu("Samus", 0))
	cfg.ItemProbability = 1

	run := func() []entity.Fighter {
		m := newTestMatch(t, cfg)
		for i := 0; i < 1500 && !m.Finished(); i++ {
			m.Tick()
		}
		out := make([]entity.Fighter, 0, 4)
		for _, f := range m.Fighters() {
			out = append(out, *f)
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		assert.Equal(t, a[i].X, b[i].X)
		assert.Equal(t, a[i].Y, b[i].Y)
		assert.Equal(t, a[i].Percent, b[i].Percent)
		assert.Equal(t, a[i].Lives, b[i].Lives)
		assert.Equal(t, a[i].Status, b[i].Status)
	}
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "ko", EventKO.String())
	assert.Equal(t, "sudden-death", EventSuddenDeath.String())
	assert.Equal(t, "unknown", EventKind(99).String())
}

func BenchmarkMatch_Tick(b *testing.B) {
	cfg := testMatchConfig(cpu("Ganondorf", 0), cpu("Zelda", 0), cpu("Link", 0), cpu("Samus", 0))
	cfg.ItemProbability = 2
	m := newTestMatch(b, cfg)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if m.Finished() {
			b.StopTimer()
			m = newTestMatch(b, cfg)
			b.StartTimer()
		}
		m.Tick()
	}
}
