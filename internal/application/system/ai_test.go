package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/legion/internal/domain/entity"
)

func TestAI_ScanForEnemy(t *testing.T) {
	ai := NewAIController()

	t.Run("one on one targets the other side", func(t *testing.T) {
		m := newTestMatch(t, testMatchConfig(cpu("Mario", 0), cpu("Link", 0)))
		a, b := m.Fighters()[0], m.Fighters()[1]

		ai.ScanForEnemy(m, a)
		assert.Same(t, b, a.Enemy)
	})

	t.Run("one on one teammates have no target", func(t *testing.T) {
		m := newTestMatch(t, testMatchConfig(cpu("Mario", 1), cpu("Link", 1)))
		a := m.Fighters()[0]

		ai.ScanForEnemy(m, a)
		assert.Nil(t, a.Enemy)
	})

	t.Run("proximity", func(t *testing.T) {
		m := newTestMatch(t, testMatchConfig(cpu("Mario", 0), cpu("Link", 0), cpu("Fox", 0)))
		a, b, c := m.Fighters()[0], m.Fighters()[1], m.Fighters()[2]
		inPlay(a, 16)
		inPlay(b, 40)
		inPlay(c, 200)

		ai.ScanForEnemy(m, a)
		assert.Same(t, b, a.Enemy)
	})

	t.Run("fatigue beats a distant target", func(t *testing.T) {
		m := newTestMatch(t, testMatchConfig(cpu("Mario", 0), cpu("Link", 0), cpu("Fox", 0)))
		a, b, c := m.Fighters()[0], m.Fighters()[1], m.Fighters()[2]
		inPlay(a, 0)
		inPlay(b, 100)
		inPlay(c, 200)
		c.Percent = 250

		ai.ScanForEnemy(m, a)
		assert.Same(t, c, a.Enemy)
	})

	t.Run("a lazy human lead draws attention", func(t *testing.T) {
		m := newTestMatch(t, testMatchConfig(human("Mario", 0), cpu("Link", 0), cpu("Fox", 0)))
		lead, b, c := m.Fighters()[0], m.Fighters()[1], m.Fighters()[2]
		inPlay(lead, 280)
		inPlay(b, 0)
		inPlay(c, 60)

		require.True(t, m.lazy(lead))
		ai.ScanForEnemy(m, c)
		assert.Same(t, lead, c.Enemy)
	})

	t.Run("nobody in play falls back to the lead", func(t *testing.T) {
		m := newTestMatch(t, testMatchConfig(human("Mario", 0), cpu("Link", 0), cpu("Fox", 0)))
		c := m.Fighters()[2]

		ai.ScanForEnemy(m, c)
		assert.Same(t, m.Lead(), c.Enemy)
	})
}

func TestMatch_Lazy(t *testing.T) {
	m := newTestMatch(t, testMatchConfig(human("Mario", 0), cpu("Link", 0)))
	lead := m.Lead()
	inPlay(lead, 96)
	require.True(t, m.lazy(lead))

	lead.Percent = 40
	assert.False(t, m.lazy(lead))
	lead.Percent = 0

	lead.Lives = 2
	assert.False(t, m.lazy(lead))
	lead.Lives = 3

	lead.Set(entity.StatusSmash)
	assert.False(t, m.lazy(lead))

	assert.False(t, m.lazy(m.Fighters()[1]))
}

func TestAI_MoveToEnemy(t *testing.T) {
	m := newTestMatch(t, testMatchConfig(cpu("Mario", 0), cpu("Link", 0)))
	a, b := m.Fighters()[0], m.Fighters()[1]
	ai := NewAIController()

	t.Run("walks along the floor", func(t *testing.T) {
		inPlay(a, 96)
		inPlay(b, 200)
		a.Enemy = b

		ai.MoveToEnemy(m, a)
		assert.Greater(t, a.X, 96)
		assert.Equal(t, entity.Right, a.Direction)
	})

	t.Run("jumps toward a target above", func(t *testing.T) {
		inPlay(a, 96)
		inPlay(b, 96)
		b.Y = 20
		a.Enemy = b
		a.NumJumps = 0

		ai.MoveToEnemy(m, a)
		assert.Equal(t, 1, a.NumJumps)
		assert.Equal(t, entity.Jumping, a.Loco)
	})
}

func TestAI_AttackEnemy(t *testing.T) {
	m := newTestMatch(t, testMatchConfig(cpu("Mario", 1), cpu("Mario", 2)))
	m.combat.difficulty = entity.Difficulty(1)
	a, b := m.Fighters()[0], m.Fighters()[1]
	inPlay(a, 96)
	inPlay(b, 106)
	a.Enemy = b
	a.Direction = entity.Left

	NewAIController().AttackEnemy(m, a)

	assert.Equal(t, entity.Right, a.Direction)
	assert.True(t, a.IsAny(entity.StatusGrabbing|entity.StatusSmash|entity.StatusSpecial))
}

func TestAI_EscapesAHold(t *testing.T) {
	m := newTestMatch(t, testMatchConfig(cpu("Mario", 1), cpu("Mario", 2)))
	a, b := m.Fighters()[0], m.Fighters()[1]
	inPlay(a, 96)
	inPlay(b, 106)
	a.Direction = entity.Right
	require.True(t, m.combat.Grab(a, m.Fighters()))

	a.Counter = a.AttackMarker + m.Rules().Combat.EscapeTicks + 1
	NewAIController().Control(m, b)

	assert.False(t, b.Is(entity.StatusHeld))
	assert.Nil(t, b.Captor)
}

func TestAI_Evade(t *testing.T) {
	tests := []struct {
		name      string
		shot      func(p *entity.Projectile, x, y int)
		wantDodge bool
	}{
		{"shot in flight", func(p *entity.Projectile, x, y int) {
			p.Launch(x, y, entity.Right)
		}, true},
		{"explosion just started", func(p *entity.Projectile, x, y int) {
			p.Launch(x, y, entity.Right)
			p.Explode(x, y)
		}, true},
		{"nothing fired", func(p *entity.Projectile, x, y int) {
			p.X, p.Y, p.Dir = x, y, entity.Right
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatch(t, testMatchConfig(cpu("Mario", 1), cpu("Link", 2)))
			m.combat.difficulty = entity.Difficulty(1)
			f, e := m.Fighters()[0], m.Fighters()[1]
			inPlay(f, 100)
			inPlay(e, 40)
			tt.shot(&e.Projectile, f.X-5, f.Y+5)

			NewAIController().evade(m, f, e)

			if tt.wantDodge {
				assert.Equal(t, 100-m.Rules().Physics.DodgeDistance, f.X)
				assert.Equal(t, entity.Left, f.Direction)
			} else {
				assert.Equal(t, 100, f.X)
			}
		})
	}
}
