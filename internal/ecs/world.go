package ecs

import (
	"sort"

	"github.com/younwookim/legion/internal/domain/entity"
)

// EntityID is a unique identifier for an entity (never recycled)
type EntityID uint64

// World is the drawable projection of a match. Simulation state stays in
// the match; the world only mirrors what the renderer needs.
type World struct {
	nextID EntityID

	// Components
	Kind     map[EntityID]Kind
	Position map[EntityID]Position
	Extent   map[EntityID]Extent
	Facing   map[EntityID]Facing
	Sprite   map[EntityID]Sprite
	Gauge    map[EntityID]Gauge

	// Tags
	Hidden map[EntityID]struct{}

	// Bindings from simulation objects
	fighters map[*entity.Fighter]EntityID
	shots    map[*entity.Fighter]EntityID
	bosses   map[*entity.Boss]EntityID
	items    map[*entity.Item]EntityID

	// Camera is the top-left of the view in world pixels
	CameraX, CameraY int
	// Tick is the match tick the world was last synced to
	Tick int
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:   1, // 0 is "nil"
		Kind:     make(map[EntityID]Kind),
		Position: make(map[EntityID]Position),
		Extent:   make(map[EntityID]Extent),
		Facing:   make(map[EntityID]Facing),
		Sprite:   make(map[EntityID]Sprite),
		Gauge:    make(map[EntityID]Gauge),
		Hidden:   make(map[EntityID]struct{}),
		fighters: make(map[*entity.Fighter]EntityID),
		shots:    make(map[*entity.Fighter]EntityID),
		bosses:   make(map[*entity.Boss]EntityID),
		items:    make(map[*entity.Item]EntityID),
	}
}

// NewEntity returns a new unique entity ID
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// DestroyEntity removes all components for an entity
func (w *World) DestroyEntity(id EntityID) {
	delete(w.Kind, id)
	delete(w.Position, id)
	delete(w.Extent, id)
	delete(w.Facing, id)
	delete(w.Sprite, id)
	delete(w.Gauge, id)
	delete(w.Hidden, id)
}

// Exists checks if an entity has Position component
func (w *World) Exists(id EntityID) bool {
	_, ok := w.Position[id]
	return ok
}

// Count returns the number of live entities
func (w *World) Count() int {
	return len(w.Position)
}

// SetHidden tags or untags an entity as not drawn
func (w *World) SetHidden(id EntityID, hidden bool) {
	if hidden {
		w.Hidden[id] = struct{}{}
	} else {
		delete(w.Hidden, id)
	}
}

// Visible reports whether an entity exists and is drawn
func (w *World) Visible(id EntityID) bool {
	_, hidden := w.Hidden[id]
	return w.Exists(id) && !hidden
}

// Drawables returns the visible entities in drawing order
func (w *World) Drawables() []EntityID {
	ids := make([]EntityID, 0, len(w.Position))
	for id := range w.Position {
		if w.Visible(id) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		li, lj := w.Sprite[ids[i]].Layer, w.Sprite[ids[j]].Layer
		if li != lj {
			return li < lj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Gauges returns the HUD lines ordered by slot
func (w *World) Gauges() []Gauge {
	gauges := make([]Gauge, 0, len(w.Gauge))
	for _, g := range w.Gauge {
		gauges = append(gauges, g)
	}
	sort.Slice(gauges, func(i, j int) bool { return gauges[i].Slot < gauges[j].Slot })
	return gauges
}

// FighterEntity returns the entity bound to a fighter
func (w *World) FighterEntity(f *entity.Fighter) (EntityID, bool) {
	id, ok := w.fighters[f]
	return id, ok
}

// BossEntity returns the entity bound to a boss
func (w *World) BossEntity(b *entity.Boss) (EntityID, bool) {
	id, ok := w.bosses[b]
	return id, ok
}

// ItemEntity returns the entity bound to an item
func (w *World) ItemEntity(it *entity.Item) (EntityID, bool) {
	id, ok := w.items[it]
	return id, ok
}

// ShotEntity returns the entity bound to a fighter's projectile
func (w *World) ShotEntity(f *entity.Fighter) (EntityID, bool) {
	id, ok := w.shots[f]
	return id, ok
}
