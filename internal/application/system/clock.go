package system

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/younwookim/legion/internal/domain/entity"
	"github.com/younwookim/legion/internal/infrastructure/config"
)

// Clock is the match timer. It counts down timed matches and rolls the
// item drop process, queueing spawns for the match to pick up. It can be
// stepped by the match loop or run on its own goroutine.
type Clock struct {
	mu sync.Mutex

	timed    bool
	running  bool
	millis   int
	seconds  int
	minutes  int
	rate     int
	counter  int
	itemProb int
	interval time.Duration
	rng      *rand.Rand
	pending  []entity.ItemKind
}

// NewClock creates a clock for a match. The clock draws from its own
// random source so a running timer never races the simulation.
func NewClock(cfg *config.ClockConfig, match *config.MatchConfig, seed int64) *Clock {
	c := &Clock{
		timed:    match.MatchType() == entity.MatchTimed,
		rate:     cfg.StepsPerSecond,
		itemProb: match.ItemProbability,
		interval: time.Second / time.Duration(cfg.StepsPerSecond),
		rng:      rand.New(rand.NewSource(seed)),
	}
	c.reset(match.Minutes)
	return c
}

func (c *Clock) reset(minutes int) {
	c.millis = 0
	c.seconds = 0
	c.minutes = minutes
	c.counter = 0
	c.running = true
}

// Reset restarts the countdown at the given number of minutes
func (c *Clock) Reset(minutes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset(minutes)
}

// Step advances the clock by one timer tick
func (c *Clock) Step() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timed {
		if c.millis == 0 && c.seconds == 0 && c.minutes == 0 {
			c.running = false
		} else {
			c.millis--
			if c.millis < 0 {
				c.millis = c.rate
				c.seconds--
				if c.seconds < 0 {
					c.seconds = 59
					c.minutes--
				}
			}
		}
	}

	c.counter++
	if c.itemProb > 0 && c.counter&1 == 0 && c.rng.Intn(c.itemProb*20) == 0 {
		c.pending = append(c.pending, entity.ItemKind(c.rng.Intn(entity.NumItemKinds)))
	}
}

// Run steps the clock at its configured rate until ctx is done
func (c *Clock) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Step()
		}
	}
}

// Drain hands over the queued item spawns and reports whether the
// countdown is still running.
func (c *Clock) Drain() (spawns []entity.ItemKind, running bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	spawns = c.pending
	c.pending = nil
	return spawns, c.running
}

// Running reports whether the countdown has time left. Stock matches
// always run.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Remaining returns the time left on the countdown
func (c *Clock) Remaining() (minutes, seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minutes, c.seconds
}
