package system

import (
	"log"
	"math/rand"

	"github.com/younwookim/legion/internal/domain/entity"
	"github.com/younwookim/legion/internal/infrastructure/config"
)

// ItemEffector applies a held item's effect to the fighter using it
type ItemEffector interface {
	Apply(f *entity.Fighter)
}

// ItemEffectorFunc adapts a function to ItemEffector
type ItemEffectorFunc func(f *entity.Fighter)

// Apply calls fn(f)
func (fn ItemEffectorFunc) Apply(f *entity.Fighter) {
	fn(f)
}

// ItemSystem spawns, drops and hands out arena items
type ItemSystem struct {
	config    *config.RulesConfig
	terrain   *Terrain
	rng       *rand.Rand
	items     []*entity.Item
	effectors map[entity.ItemEffect]ItemEffector
}

// NewItemSystem creates an item system with the stock effect table
func NewItemSystem(rules *config.RulesConfig, terrain *Terrain, rng *rand.Rand, combat *CombatSystem) *ItemSystem {
	s := &ItemSystem{
		config:  rules,
		terrain: terrain,
		rng:     rng,
		items:   make([]*entity.Item, 0, rules.Clock.MaxItems),
	}
	cc := rules.Combat
	s.effectors = map[entity.ItemEffect]ItemEffector{
		entity.EffectThrow: ItemEffectorFunc(func(f *entity.Fighter) {
			combat.Fire(f)
		}),
		entity.EffectInvincible: ItemEffectorFunc(func(f *entity.Fighter) {
			f.InvincibleTicks = cc.InvincibleTicks
			f.Set(entity.StatusInvincible)
		}),
		entity.EffectSmashBoost: ItemEffectorFunc(func(f *entity.Fighter) {
			f.Power += 5
		}),
		entity.EffectCloak: ItemEffectorFunc(func(f *entity.Fighter) {
			f.Set(entity.StatusCloaked)
			f.CloakTicks = cc.CloakTicks
		}),
		entity.EffectMetal: ItemEffectorFunc(func(f *entity.Fighter) {
			if !f.Is(entity.StatusMetal) {
				f.Size += 5
			}
			f.Set(entity.StatusMetal)
			f.MetalTicks = cc.MetalTicks
		}),
	}
	return s
}

// SetEffector replaces the behavior bound to an effect
func (s *ItemSystem) SetEffector(effect entity.ItemEffect, e ItemEffector) {
	s.effectors[effect] = e
}

// Items returns the items in the arena
func (s *ItemSystem) Items() []*entity.Item {
	return s.items
}

// Spawn drops a new item of the given kind from the top of the arena.
// Spawns beyond the item capacity are skipped.
func (s *ItemSystem) Spawn(kind entity.ItemKind) *entity.Item {
	if len(s.items) >= s.config.Clock.MaxItems {
		log.Printf("[Items] capacity reached, dropping spawn of kind %d", kind)
		return nil
	}
	span := s.terrain.Stage().PixelWidth() - kind.Size()
	if span <= 0 {
		return nil
	}
	it := entity.NewItem(kind, s.rng.Intn(span))
	s.items = append(s.items, it)
	return it
}

// Update drops loose items and sweeps used ones out of the arena
func (s *ItemSystem) Update() {
	for _, it := range s.items {
		if it.Used || it.Held {
			continue
		}
		if !s.terrain.HasAt(it.X, it.Y+it.Size(), entity.TileSolid) &&
			it.Y < s.terrain.Stage().PixelHeight() {
			it.Y += 2
		}
	}

	for i := 0; i < len(s.items); {
		it := s.items[i]
		if it.Used || it.Y >= s.terrain.Stage().PixelHeight() {
			last := len(s.items) - 1
			s.items[i] = s.items[last]
			s.items[last] = nil
			s.items = s.items[:last]
			continue
		}
		i++
	}
}

// InReach returns the first loose item overlapping the tile-sized box at
// f's feet
func (s *ItemSystem) InReach(f *entity.Fighter) *entity.Item {
	fx := f.X + f.Width/2 - 8
	fy := f.FootLine()
	for _, it := range s.items {
		if it.Used || it.Held {
			continue
		}
		n := it.Size()
		if it.X < fx+entity.TileSize && fx < it.X+n && it.Y < fy+entity.TileSize && fy < it.Y+n {
			return it
		}
	}
	return nil
}

// PickUp handles an item-less fighter touching an item. Food and explosives
// act on contact; anything else is carried.
func (s *ItemSystem) PickUp(f *entity.Fighter) bool {
	if f.Item != nil {
		return false
	}
	it := s.InReach(f)
	if it == nil {
		return false
	}

	switch it.Kind.Effect() {
	case entity.EffectFood:
		f.Heal(it.Kind.Replenish())
		it.Used = true
	case entity.EffectExplosive:
		f.Projectile.Explode(f.X+8, f.Y+4)
		f.XSpeed = 4 - s.rng.Intn(2)*8
		f.YSpeed = f.LaunchSpeed()
		f.AddDamage(50 + s.rng.Intn(10))
		f.Set(entity.StatusParalyzed)
		it.Used = true
	default:
		it.Held = true
		f.Item = it
	}
	return true
}

// Use fires the effect of the item f carries and consumes it
func (s *ItemSystem) Use(f *entity.Fighter) bool {
	it := f.Item
	if it == nil {
		return false
	}
	if e, ok := s.effectors[it.Kind.Effect()]; ok {
		e.Apply(f)
	}
	it.Used = true
	it.Held = false
	f.Item = nil
	return true
}

// Drop releases a carried item where f stands
func (s *ItemSystem) Drop(f *entity.Fighter) {
	if f.Item == nil {
		return
	}
	f.Item.Held = false
	f.Item.X, f.Item.Y = f.X, f.Y
	f.Item = nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
