package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/legion/internal/domain/entity"
)

// kinds from the item table
const (
	kindThrow      entity.ItemKind = 0
	kindSmashBoost entity.ItemKind = 2
	kindMetal      entity.ItemKind = 3
	kindInvincible entity.ItemKind = 4
	kindCloak      entity.ItemKind = 6
	kindExplosive  entity.ItemKind = 14
	kindFood       entity.ItemKind = 18
)

// placeItem drops an item of kind at the feet of f
func placeItem(w *testWorld, f *entity.Fighter, kind entity.ItemKind) *entity.Item {
	it := w.items.Spawn(kind)
	it.X = f.X + f.Width/2 - 8
	it.Y = f.FootLine()
	return it
}

func TestItems_SpawnCapacity(t *testing.T) {
	w := newTestWorld(t, entity.Classic)
	w.rules.Clock.MaxItems = 2

	require.NotNil(t, w.items.Spawn(kindThrow))
	require.NotNil(t, w.items.Spawn(kindFood))
	assert.Nil(t, w.items.Spawn(kindThrow))
	assert.Len(t, w.items.Items(), 2)
}

func TestItems_FallToTheFloor(t *testing.T) {
	w := newTestWorld(t, entity.Classic)
	it := w.items.Spawn(kindThrow)
	require.NotNil(t, it)
	it.X = 32

	for i := 0; i < 100; i++ {
		w.items.Update()
	}

	assert.Equal(t, 96-it.Size(), it.Y)
}

func TestItems_UsedItemsAreSwept(t *testing.T) {
	w := newTestWorld(t, entity.Classic)
	it := w.items.Spawn(kindThrow)
	require.NotNil(t, it)

	it.Used = true
	w.items.Update()

	assert.Empty(t, w.items.Items())
}

func TestItems_PickUpAndUse(t *testing.T) {
	t.Run("throw item launches a projectile", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		f := testFighter(1, "Mario", 1, 32)
		it := placeItem(w, f, kindThrow)

		require.True(t, w.items.PickUp(f))
		assert.Same(t, it, f.Item)
		assert.True(t, it.Held)

		require.True(t, w.items.Use(f))
		assert.Nil(t, f.Item)
		assert.True(t, it.Used)
		assert.True(t, f.Projectile.Active)
	})

	t.Run("throw item leaves a live shot alone", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		f := testFighter(1, "Mario", 1, 32)
		f.Projectile.Launch(200, 10, entity.Left)
		placeItem(w, f, kindThrow)
		require.True(t, w.items.PickUp(f))
		require.True(t, w.items.Use(f))
		assert.Equal(t, 200, f.Projectile.X)
		assert.Equal(t, entity.Left, f.Projectile.Dir)

		w = newTestWorld(t, entity.Classic)
		g := testFighter(2, "Mario", 1, 32)
		g.Projectile.Explode(200, 10)
		placeItem(w, g, kindThrow)
		require.True(t, w.items.PickUp(g))
		require.True(t, w.items.Use(g))
		assert.False(t, g.Projectile.Active)
		assert.True(t, g.Projectile.Exploding)
	})

	t.Run("smash boost", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		f := testFighter(1, "Mario", 1, 32)
		placeItem(w, f, kindSmashBoost)

		require.True(t, w.items.PickUp(f))
		require.True(t, w.items.Use(f))
		assert.Equal(t, 15, f.Power)
	})

	t.Run("metal", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		f := testFighter(1, "Mario", 1, 32)
		placeItem(w, f, kindMetal)

		require.True(t, w.items.PickUp(f))
		require.True(t, w.items.Use(f))
		assert.True(t, f.Is(entity.StatusMetal))
		assert.Equal(t, 7, f.Size)
		assert.Equal(t, w.rules.Combat.MetalTicks, f.MetalTicks)
	})

	t.Run("invincible", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		f := testFighter(1, "Mario", 1, 32)
		placeItem(w, f, kindInvincible)

		require.True(t, w.items.PickUp(f))
		require.True(t, w.items.Use(f))
		assert.True(t, f.Is(entity.StatusInvincible))
		assert.Equal(t, w.rules.Combat.InvincibleTicks, f.InvincibleTicks)
	})

	t.Run("cloak", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		f := testFighter(1, "Mario", 1, 32)
		placeItem(w, f, kindCloak)

		require.True(t, w.items.PickUp(f))
		require.True(t, w.items.Use(f))
		assert.True(t, f.Is(entity.StatusCloaked))
		assert.Equal(t, w.rules.Combat.CloakTicks, f.CloakTicks)
	})

	t.Run("food heals on contact", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		f := testFighter(1, "Mario", 1, 32)
		f.Percent = 150
		it := placeItem(w, f, kindFood)

		require.True(t, w.items.PickUp(f))
		assert.Nil(t, f.Item)
		assert.True(t, it.Used)
		assert.Equal(t, 50, f.Percent)
	})

	t.Run("explosive launches on contact", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		f := testFighter(1, "Mario", 1, 32)
		placeItem(w, f, kindExplosive)

		require.True(t, w.items.PickUp(f))
		assert.Nil(t, f.Item)
		assert.GreaterOrEqual(t, f.Percent, 50)
		assert.True(t, f.Is(entity.StatusParalyzed))
		assert.True(t, f.Projectile.Exploding)
	})

	t.Run("out of reach", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		f := testFighter(1, "Mario", 1, 32)
		it := w.items.Spawn(kindThrow)
		it.X, it.Y = 200, 0

		assert.False(t, w.items.PickUp(f))
		assert.Nil(t, f.Item)
	})

	t.Run("one item at a time", func(t *testing.T) {
		w := newTestWorld(t, entity.Classic)
		f := testFighter(1, "Mario", 1, 32)
		placeItem(w, f, kindThrow)
		placeItem(w, f, kindMetal)

		require.True(t, w.items.PickUp(f))
		assert.False(t, w.items.PickUp(f))
	})
}

func TestItems_Drop(t *testing.T) {
	w := newTestWorld(t, entity.Classic)
	f := testFighter(1, "Mario", 1, 32)
	it := placeItem(w, f, kindThrow)
	require.True(t, w.items.PickUp(f))

	f.X = 64
	w.items.Drop(f)

	assert.Nil(t, f.Item)
	assert.False(t, it.Held)
	assert.Equal(t, 64, it.X)
}

func TestItems_CustomEffector(t *testing.T) {
	w := newTestWorld(t, entity.Classic)
	f := testFighter(1, "Mario", 1, 32)

	var used *entity.Fighter
	w.items.SetEffector(entity.EffectThrow, ItemEffectorFunc(func(f *entity.Fighter) {
		used = f
	}))
	placeItem(w, f, kindThrow)
	require.True(t, w.items.PickUp(f))
	require.True(t, w.items.Use(f))

	assert.Same(t, f, used)
	assert.False(t, f.Projectile.Active)
}
