package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/legion/internal/domain/entity"
)

func TestCombat_DamageClampsToZero(t *testing.T) {
	w := newTestWorld(t, entity.Classic)
	attacker := testFighter(1, "Mario", 1, 100)
	defender := testFighter(2, "Link", 2, 110)
	attacker.Power = 0
	defender.Size = 100

	assert.Equal(t, 0, w.combat.Damage(defender, attacker))
}

func TestKnockbackX(t *testing.T) {
	attacker := testFighter(1, "Mario", 1, 100)

	tests := []struct {
		name string
		x    int
		want int
	}{
		{"point blank right", 104, 2},
		{"point blank left", 96, -2},
		{"near right", 120, 4},
		{"near left", 80, -4},
		{"far", 140, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defender := testFighter(2, "Link", 2, tt.x)
			assert.Equal(t, tt.want, KnockbackX(defender, attacker))
		})
	}
}

func TestCombat_Hit(t *testing.T) {
	w := newTestWorld(t, entity.Classic)
	attacker := testFighter(1, "Mario", 1, 100)
	defender := testFighter(2, "Link", 2, 110)

	var reported int
	w.combat.OnHit = func(d, a *entity.Fighter, dmg int) {
		assert.Same(t, defender, d)
		assert.Same(t, attacker, a)
		reported = dmg
	}
	w.combat.Hit(defender, attacker)

	assert.Positive(t, defender.Percent)
	assert.Equal(t, defender.Percent, reported)
	assert.True(t, defender.Is(entity.StatusParalyzed))
	assert.Same(t, attacker, defender.LastHitBy)
	assert.Equal(t, defender.LaunchSpeed(), defender.YSpeed)
	assert.Equal(t, 4, defender.XSpeed)
}

func TestCombat_ResolveFighters(t *testing.T) {
	t.Run("facing attack lands", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		a := testFighter(1, "Mario", 1, 100)
		b := testFighter(2, "Mario", 2, 110)
		a.Direction = entity.Right
		a.Enemy = b
		a.Set(entity.StatusSmash)

		w.combat.ResolveFighters([]*entity.Fighter{a, b})

		assert.Positive(t, b.Percent)
		assert.Zero(t, a.Percent)
	})

	t.Run("attack from behind misses", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		a := testFighter(1, "Mario", 1, 100)
		b := testFighter(2, "Mario", 2, 110)
		a.Direction = entity.Left
		a.Enemy = b
		a.Set(entity.StatusSmash)

		w.combat.ResolveFighters([]*entity.Fighter{a, b})

		assert.Zero(t, b.Percent)
	})

	t.Run("teammates never hurt each other", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		a := testFighter(1, "Mario", 1, 100)
		b := testFighter(2, "Mario", 1, 110)
		a.Direction = entity.Right
		a.Enemy = b
		a.Set(entity.StatusSmash)

		w.combat.ResolveFighters([]*entity.Fighter{a, b})

		assert.Zero(t, b.Percent)
	})

	t.Run("invincible defender is spared", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		a := testFighter(1, "Mario", 1, 100)
		b := testFighter(2, "Mario", 2, 110)
		a.Direction = entity.Right
		a.Enemy = b
		a.Set(entity.StatusSmash)
		b.Set(entity.StatusInvincible)

		w.combat.ResolveFighters([]*entity.Fighter{a, b})

		assert.Zero(t, b.Percent)
	})

	t.Run("trade goes to the enemy on a won tie-break", func(t *testing.T) {
		w := newTestWorld(t, entity.Difficulty(1))
		a := testFighter(1, "Mario", 1, 100)
		b := testFighter(2, "Mario", 2, 110)
		a.Direction = entity.Right
		b.Direction = entity.Left
		a.Enemy = b
		a.Set(entity.StatusSmash)
		b.Set(entity.StatusSmash)

		w.combat.ResolveFighters([]*entity.Fighter{a, b})

		assert.Positive(t, a.Percent)
		assert.Zero(t, b.Percent)
	})

	t.Run("grabbing fighter seizes its enemy", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		a := testFighter(1, "Mario", 1, 100)
		b := testFighter(2, "Mario", 2, 110)
		a.Enemy = b
		a.Set(entity.StatusGrabbing)

		w.combat.ResolveFighters([]*entity.Fighter{a, b})

		assert.True(t, b.Is(entity.StatusHeld))
		assert.Same(t, a, b.Captor)
		assert.Same(t, b, a.Captive)
	})

	t.Run("no contact no resolution", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		a := testFighter(1, "Mario", 1, 100)
		b := testFighter(2, "Mario", 2, 200)
		a.Direction = entity.Right
		a.Enemy = b
		a.Set(entity.StatusSmash)

		w.combat.ResolveFighters([]*entity.Fighter{a, b})

		assert.Zero(t, b.Percent)
	})
}

func TestCombat_Grab(t *testing.T) {
	t.Run("connects when facing", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		a := testFighter(1, "Mario", 1, 100)
		b := testFighter(2, "Mario", 2, 110)
		a.Direction = entity.Right
		a.Counter = 40

		require.True(t, w.combat.Grab(a, []*entity.Fighter{a, b}))

		assert.True(t, a.Is(entity.StatusGrabbing))
		assert.True(t, b.Is(entity.StatusHeld))
		assert.Same(t, b, a.Enemy)
		assert.Equal(t, 11, b.Percent)
		assert.Equal(t, entity.Left, b.Direction)
		assert.Equal(t, 40, a.AttackMarker)
	})

	t.Run("misses when turned away", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		a := testFighter(1, "Mario", 1, 100)
		b := testFighter(2, "Mario", 2, 110)
		a.Direction = entity.Left

		assert.False(t, w.combat.Grab(a, []*entity.Fighter{a, b}))
		assert.False(t, a.Is(entity.StatusGrabbing))
		assert.Zero(t, b.Percent)
	})

	t.Run("skips fighters on the respawn platform", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		a := testFighter(1, "Mario", 1, 100)
		b := testFighter(2, "Mario", 2, 110)
		a.Direction = entity.Right
		b.Set(entity.StatusOnStage)

		assert.False(t, w.combat.Grab(a, []*entity.Fighter{a, b}))
	})
}

func TestCombat_ThrowAndExpire(t *testing.T) {
	w := newTestWorld(t, entity.Classic)
	a := testFighter(1, "Mario", 1, 100)
	b := testFighter(2, "Mario", 2, 110)
	a.Direction = entity.Right
	require.True(t, w.combat.Grab(a, []*entity.Fighter{a, b}))

	w.combat.Throw(a, 4)

	assert.False(t, a.Is(entity.StatusGrabbing))
	assert.False(t, b.Is(entity.StatusHeld))
	assert.Nil(t, a.Captive)
	assert.Nil(t, b.Captor)
	assert.Equal(t, 4, b.XSpeed)
	assert.True(t, b.Is(entity.StatusParalyzed))
	assert.Same(t, a, b.LastHitBy)

	b.Clear(entity.StatusParalyzed)
	require.True(t, w.combat.Grab(a, []*entity.Fighter{a, b}))
	a.Counter = a.AttackMarker + 50
	w.combat.ExpireGrab(a, 50)
	assert.True(t, a.Is(entity.StatusGrabbing))

	a.Counter++
	w.combat.ExpireGrab(a, 50)
	assert.False(t, a.Is(entity.StatusGrabbing))
	assert.False(t, b.Is(entity.StatusHeld))
}

func TestCombat_ProjectileSingleLive(t *testing.T) {
	w := newTestWorld(t, entity.Classic)
	a := testFighter(1, "Link", 1, 100)
	a.Direction = entity.Right

	require.True(t, w.combat.Fire(a))
	assert.True(t, a.Projectile.Active)
	assert.Equal(t, 100+a.Width, a.Projectile.X)

	assert.False(t, w.combat.Fire(a))

	a.Projectile.Explode(0, 0)
	assert.False(t, w.combat.Fire(a))
}

func TestCombat_UpdateProjectile(t *testing.T) {
	t.Run("hits an opponent in its path", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		a := testFighter(1, "Link", 1, 100)
		b := testFighter(2, "Mario", 2, 140)
		a.Direction = entity.Right
		require.True(t, w.combat.Fire(a))

		for i := 0; i < 10 && a.Projectile.Active; i++ {
			w.combat.UpdateProjectile(a, []*entity.Fighter{a, b})
		}

		assert.True(t, a.Projectile.Exploding)
		assert.GreaterOrEqual(t, b.Percent, 6)
		assert.Same(t, a, b.LastHitBy)
	})

	t.Run("passes through a teammate", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		a := testFighter(1, "Link", 1, 100)
		b := testFighter(2, "Mario", 1, 140)
		a.Direction = entity.Right
		require.True(t, w.combat.Fire(a))

		for i := 0; i < 10; i++ {
			w.combat.UpdateProjectile(a, []*entity.Fighter{a, b})
		}

		assert.Zero(t, b.Percent)
	})

	t.Run("explodes at its range", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic,
			"..............................................",
			"..............................................",
			"..............................................",
			"..............................................",
			"..............................................",
			"..............................................",
			"##############################################",
		)
		a := testFighter(1, "Link", 1, 16)
		a.Direction = entity.Right
		require.True(t, w.combat.Fire(a))

		for i := 0; i <= entity.ProjectileRange; i++ {
			w.combat.UpdateProjectile(a, []*entity.Fighter{a})
		}

		assert.False(t, a.Projectile.Active)
	})
}

func TestCombat_Special(t *testing.T) {
	w := newTestWorld(t, entity.Classic)

	link := testFighter(1, "Link", 1, 100)
	w.combat.Special(link)
	assert.True(t, link.Is(entity.StatusSpecial))
	assert.True(t, link.Projectile.Active)

	mario := testFighter(2, "Mario", 1, 100)
	mario.Loco = entity.Climbing
	w.combat.Special(mario)
	assert.True(t, mario.Is(entity.StatusSpecial))
	assert.Equal(t, entity.Standing, mario.Loco)
	assert.False(t, mario.Projectile.Active)
}
