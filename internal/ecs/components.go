package ecs

import "image/color"

// Position is an entity's top-left corner in world pixels
type Position struct {
	X, Y int
}

// Extent is the size of an entity's box in pixels
type Extent struct {
	W, H int
}

// Facing represents which direction entity faces
type Facing struct {
	Right bool
}

// Layer orders drawing; higher layers are drawn later
type Layer int

const (
	LayerItem Layer = iota
	LayerBoss
	LayerFighter
	LayerProjectile
	LayerEffect
)

// Kind tells the renderer what an entity stands for
type Kind int

const (
	KindFighter Kind = iota
	KindBoss
	KindItem
	KindProjectile
	KindExplosion
)

// Sprite is the drawing state of an entity
type Sprite struct {
	Layer Layer
	Frame int
	Color color.RGBA
	// Flash blinks the sprite on alternate ticks
	Flash bool
}

// Gauge is the HUD line of a fighter
type Gauge struct {
	Slot    int
	Label   string
	Percent int
	Lives   int
}

var teamColors = []color.RGBA{
	{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
	{R: 0xe8, G: 0x40, B: 0x40, A: 0xff},
	{R: 0x40, G: 0x70, B: 0xe8, A: 0xff},
	{R: 0x40, G: 0xc0, B: 0x50, A: 0xff},
	{R: 0xe8, G: 0xc0, B: 0x30, A: 0xff},
}

// free-for-all fighters are told apart by slot
var slotColors = []color.RGBA{
	{R: 0xe8, G: 0x40, B: 0x40, A: 0xff},
	{R: 0x40, G: 0x70, B: 0xe8, A: 0xff},
	{R: 0x40, G: 0xc0, B: 0x50, A: 0xff},
	{R: 0xe8, G: 0xc0, B: 0x30, A: 0xff},
}

// FighterColor returns the tint of a fighter by team, or by slot when the
// fighter has no team
func FighterColor(team, slot int) color.RGBA {
	if team > 0 {
		return teamColors[team%len(teamColors)]
	}
	return slotColors[slot%len(slotColors)]
}

var (
	BossColor       = color.RGBA{R: 0x90, G: 0x30, B: 0xb0, A: 0xff}
	ItemColor       = color.RGBA{R: 0xf0, G: 0xa0, B: 0x20, A: 0xff}
	FoodColor       = color.RGBA{R: 0x60, G: 0xd0, B: 0x60, A: 0xff}
	ProjectileColor = color.RGBA{R: 0xff, G: 0xff, B: 0x80, A: 0xff}
	ExplosionColor  = color.RGBA{R: 0xff, G: 0x60, B: 0x20, A: 0xff}
)
