package ecs

import (
	"github.com/younwookim/legion/internal/application/system"
	"github.com/younwookim/legion/internal/domain/entity"
)

// Sync copies the drawable state of a match into the world, creating and
// destroying entities as simulation objects come and go
func Sync(w *World, m *system.Match) {
	w.CameraX, w.CameraY = m.Camera()
	w.Tick = m.Ticks()

	syncFighters(w, m.Fighters())
	syncBosses(w, m.Bosses())
	syncItems(w, m.Items())
}

func syncFighters(w *World, fighters []*entity.Fighter) {
	for i, f := range fighters {
		id, ok := w.fighters[f]
		if !ok {
			id = w.NewEntity()
			w.fighters[f] = id
			w.Kind[id] = KindFighter
		}

		w.Position[id] = Position{X: f.X, Y: f.Y}
		w.Extent[id] = Extent{W: f.Width, H: f.Height}
		w.Facing[id] = Facing{Right: f.Direction == entity.Right}
		w.Sprite[id] = Sprite{
			Layer: LayerFighter,
			Frame: int(f.CurrentFrame()),
			Color: FighterColor(int(f.Team), i),
			Flash: f.Is(entity.StatusInvincible) && !f.Is(entity.StatusOnStage),
		}
		w.Gauge[id] = Gauge{
			Slot:    i,
			Label:   entity.Roster[f.Character].Name,
			Percent: f.Percent,
			Lives:   f.Lives,
		}
		w.SetHidden(id, !f.Alive() || f.Is(entity.StatusCloaked))

		syncShot(w, f)
	}
}

func syncShot(w *World, f *entity.Fighter) {
	p := &f.Projectile
	if !p.Active && !p.Exploding {
		if id, ok := w.shots[f]; ok {
			w.DestroyEntity(id)
			delete(w.shots, f)
		}
		return
	}

	id, ok := w.shots[f]
	if !ok {
		id = w.NewEntity()
		w.shots[f] = id
	}

	if p.Exploding {
		size := entity.ProjectileSize * (1 + p.Phase())
		w.Kind[id] = KindExplosion
		w.Position[id] = Position{X: p.ExplodeX - size/2, Y: p.ExplodeY - size/2}
		w.Extent[id] = Extent{W: size, H: size}
		w.Sprite[id] = Sprite{Layer: LayerEffect, Frame: p.Phase(), Color: ExplosionColor}
		return
	}
	w.Kind[id] = KindProjectile
	w.Position[id] = Position{X: p.X, Y: p.Y}
	w.Extent[id] = Extent{W: entity.ProjectileSize, H: entity.ProjectileSize}
	w.Facing[id] = Facing{Right: p.Dir == entity.Right}
	w.Sprite[id] = Sprite{Layer: LayerProjectile, Color: ProjectileColor}
}

func syncBosses(w *World, bosses []*entity.Boss) {
	for _, b := range bosses {
		id, ok := w.bosses[b]
		if !ok {
			id = w.NewEntity()
			w.bosses[b] = id
			w.Kind[id] = KindBoss
		}
		w.Position[id] = Position{X: b.X, Y: b.Y}
		w.Extent[id] = Extent{W: entity.BossSize, H: entity.BossSize}
		w.Sprite[id] = Sprite{
			Layer: LayerBoss,
			Frame: int(b.Frame),
			Color: BossColor,
			Flash: b.Spastic,
		}
		w.SetHidden(id, b.Dead)
	}
}

func syncItems(w *World, items []*entity.Item) {
	live := make(map[*entity.Item]struct{}, len(items))
	for _, it := range items {
		live[it] = struct{}{}
		id, ok := w.items[it]
		if !ok {
			id = w.NewEntity()
			w.items[it] = id
			w.Kind[id] = KindItem
		}

		c := ItemColor
		if it.Kind.Effect() == entity.EffectFood {
			c = FoodColor
		}
		w.Position[id] = Position{X: it.X, Y: it.Y}
		w.Extent[id] = Extent{W: it.Size(), H: it.Size()}
		w.Sprite[id] = Sprite{Layer: LayerItem, Frame: int(it.Kind), Color: c}
		w.SetHidden(id, it.Held || it.Used)
	}

	for it, id := range w.items {
		if _, ok := live[it]; !ok {
			w.DestroyEntity(id)
			delete(w.items, it)
		}
	}
}
