package system

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/legion/internal/domain/entity"
	"github.com/younwookim/legion/internal/infrastructure/config"
)

func TestClock_TimedCountdown(t *testing.T) {
	rules := config.DefaultRules()
	match := &config.MatchConfig{Type: "timed", Minutes: 1}
	c := NewClock(&rules.Clock, match, 1)

	c.Step()
	m, s := c.Remaining()
	assert.Equal(t, 0, m)
	assert.Equal(t, 59, s)

	steps := 1
	for c.Running() {
		c.Step()
		steps++
		require.Less(t, steps, 5000)
	}
	// one step into the minute, 21 per second, then one to stop
	assert.Equal(t, 1+20+59*21+1, steps)

	m, s = c.Remaining()
	assert.Zero(t, m)
	assert.Zero(t, s)

	c.Reset(1)
	assert.True(t, c.Running())
}

func TestClock_StockNeverRunsOut(t *testing.T) {
	rules := config.DefaultRules()
	match := &config.MatchConfig{Type: "stock", Minutes: 0}
	c := NewClock(&rules.Clock, match, 1)

	for i := 0; i < 5000; i++ {
		c.Step()
	}
	assert.True(t, c.Running())
}

func TestClock_ItemSpawns(t *testing.T) {
	rules := config.DefaultRules()

	t.Run("rolls spawns on even steps", func(t *testing.T) {
		c := NewClock(&rules.Clock, &config.MatchConfig{Type: "stock", ItemProbability: 1}, 7)
		for i := 0; i < 2000; i++ {
			c.Step()
		}

		spawns, running := c.Drain()
		assert.True(t, running)
		require.NotEmpty(t, spawns)
		for _, k := range spawns {
			assert.GreaterOrEqual(t, int(k), 0)
			assert.Less(t, int(k), entity.NumItemKinds)
		}

		again, _ := c.Drain()
		assert.Empty(t, again)
	})

	t.Run("disabled at zero probability", func(t *testing.T) {
		c := NewClock(&rules.Clock, &config.MatchConfig{Type: "stock"}, 7)
		for i := 0; i < 2000; i++ {
			c.Step()
		}
		spawns, _ := c.Drain()
		assert.Empty(t, spawns)
	})

	t.Run("same seed same spawns", func(t *testing.T) {
		match := &config.MatchConfig{Type: "stock", ItemProbability: 2}
		a := NewClock(&rules.Clock, match, 3)
		b := NewClock(&rules.Clock, match, 3)
		for i := 0; i < 1000; i++ {
			a.Step()
			b.Step()
		}
		sa, _ := a.Drain()
		sb, _ := b.Drain()
		assert.Equal(t, sa, sb)
	})
}

func TestClock_Run(t *testing.T) {
	rules := config.DefaultRules()
	rules.Clock.StepsPerSecond = 1000
	c := NewClock(&rules.Clock, &config.MatchConfig{Type: "timed", Minutes: 1}, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	require.Eventually(t, func() bool {
		m, _ := c.Remaining()
		return m == 0
	}, 2*time.Second, 5*time.Millisecond)
	assert.True(t, c.Running())
}
