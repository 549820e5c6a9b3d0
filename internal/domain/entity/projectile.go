package entity

const (
	ProjectileSize  = 8
	ProjectileSpeed = 4
	ProjectileRange = 90
	ExplosionTicks  = 12
)

// Projectile is a fighter's single fired shot. A fighter owns at most one.
type Projectile struct {
	X, Y      int
	Dir       Direction
	Distance  int
	Active    bool // in flight
	Exploding bool
	Tick      int // explosion tick
	ExplodeX  int
	ExplodeY  int
}

// Launch puts the projectile in flight from a point
func (p *Projectile) Launch(x, y int, dir Direction) {
	p.X, p.Y = x, y
	p.Dir = dir
	p.Distance = 0
	p.Active = true
}

// Advance moves the projectile one tick, dipping one unit on a fixed cadence
func (p *Projectile) Advance() {
	p.X += int(p.Dir) * ProjectileSpeed
	p.Distance++
	if p.Distance&9 == 0 {
		p.Y++
	}
}

// Stop ends the flight without an explosion
func (p *Projectile) Stop() {
	p.Active = false
	p.Distance = 0
}

// Explode ends the flight and starts the explosion at (x, y)
func (p *Projectile) Explode(x, y int) {
	p.Stop()
	p.Exploding = true
	p.Tick = 0
	p.ExplodeX, p.ExplodeY = x, y
}

// StepExplosion advances the explosion animation
func (p *Projectile) StepExplosion() {
	if !p.Exploding {
		return
	}
	p.Tick++
	if p.Tick >= ExplosionTicks {
		p.Exploding = false
		p.Tick = 0
	}
}

// Phase returns the explosion sprite phase (1 to 3), or 0 when not exploding
func (p *Projectile) Phase() int {
	if !p.Exploding {
		return 0
	}
	switch left := ExplosionTicks - p.Tick; {
	case left > 8:
		return 1
	case left > 4:
		return 2
	default:
		return 3
	}
}

// HitsBox reports whether the projectile overlaps the central column of a box
func (p *Projectile) HitsBox(x, y, w, h int) bool {
	cx := x + w/2
	return !(p.X+ProjectileSize < cx || p.X > cx || p.Y > y+h-1 || p.Y+ProjectileSize < y)
}
