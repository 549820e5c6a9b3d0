package system

import (
	"math/rand"

	"github.com/younwookim/legion/internal/domain/entity"
	"github.com/younwookim/legion/internal/infrastructure/config"
)

// CombatSystem resolves attacks, grabs, throws and projectiles between fighters
type CombatSystem struct {
	config     *config.CombatConfig
	terrain    *Terrain
	rng        *rand.Rand
	difficulty entity.Difficulty

	// OnHit fires after an attack or projectile lands
	OnHit func(defender, attacker *entity.Fighter, damage int)
}

// NewCombatSystem creates a new combat system
func NewCombatSystem(rules *config.RulesConfig, terrain *Terrain, rng *rand.Rand, difficulty entity.Difficulty) *CombatSystem {
	return &CombatSystem{
		config:     &rules.Combat,
		terrain:    terrain,
		rng:        rng,
		difficulty: difficulty,
	}
}

// Difficulty returns the tie-break denominator
func (s *CombatSystem) Difficulty() entity.Difficulty {
	return s.difficulty
}

// Chance rolls the difficulty tie-break
func (s *CombatSystem) Chance() bool {
	return s.rng.Intn(int(s.difficulty)) == 0
}

// Damage computes the percent an attacker deals to a defender
func (s *CombatSystem) Damage(defender, attacker *entity.Fighter) int {
	d := attacker.Power - defender.Size + s.rng.Intn(7) + s.rng.Intn(6) + (defender.Percent/128)*13
	if d < 0 {
		d = 0
	}
	return d
}

// KnockbackX returns the horizontal launch speed of a defender hit by attacker
func KnockbackX(defender, attacker *entity.Fighter) int {
	dx := defender.X - attacker.X
	if dx < 0 {
		dx = -dx
	}
	var speed int
	switch {
	case dx < 8:
		speed = 2
	case dx < 33:
		speed = 4
	}
	if defender.X < attacker.X {
		speed = -speed
	}
	return speed
}

// Hit applies an attack to a defender and launches it
func (s *CombatSystem) Hit(defender, attacker *entity.Fighter) {
	dmg := defender.AddDamage(s.Damage(defender, attacker))
	defender.XSpeed = KnockbackX(defender, attacker)
	defender.YSpeed = defender.LaunchSpeed()
	defender.Set(entity.StatusParalyzed)
	defender.LastHitBy = attacker
	if s.OnHit != nil {
		s.OnHit(defender, attacker, dmg)
	}
}

// faces reports whether attacker is turned toward defender
func faces(attacker, defender *entity.Fighter) bool {
	aL := attacker.X + attacker.Width/2 - 8
	aR := attacker.X + attacker.Width/2 + 7
	dL := defender.X + defender.Width/2 - 8
	dR := defender.X + defender.Width/2 + 7
	return (dL <= aL && attacker.Direction < 0) || (dR > aR && attacker.Direction > 0)
}

// ResolveFighters settles grabs and attacks between colliding opponents.
// Each fighter is checked against its current enemy. A grab contest or a
// trade of blows is won by the enemy with probability 1/D.
func (s *CombatSystem) ResolveFighters(fighters []*entity.Fighter) {
	blocked := entity.StatusParalyzed | entity.StatusOnStage
	for _, t := range fighters {
		e := t.Enemy
		if e == nil || !t.Alive() || !e.Alive() || !t.Opposes(e) {
			continue
		}
		if t.IsAny(blocked) || e.IsAny(blocked) || !t.Collides(e) {
			continue
		}

		switch {
		case t.Is(entity.StatusGrabbing):
			if e.Is(entity.StatusGrabbing) {
				if s.Chance() {
					if !t.Is(entity.StatusInvincible) {
						s.hold(e, t)
					}
				} else if !e.Is(entity.StatusInvincible) {
					s.hold(t, e)
				}
			} else if !e.Is(entity.StatusInvincible) {
				s.hold(t, e)
			}
		case e.Is(entity.StatusGrabbing):
			if !t.Is(entity.StatusInvincible) {
				s.hold(e, t)
			}
		case t.Attacking() && e.Attacking():
			if s.Chance() {
				if faces(e, t) && !t.Is(entity.StatusInvincible) {
					s.Hit(t, e)
				}
			} else if faces(t, e) && !e.Is(entity.StatusInvincible) {
				s.Hit(e, t)
			}
		case t.Attacking():
			if faces(t, e) && !e.Is(entity.StatusInvincible) {
				s.Hit(e, t)
			}
		case e.Attacking():
			if faces(e, t) && !t.Is(entity.StatusInvincible) {
				s.Hit(t, e)
			}
		}
	}
}

// hold links captor and captive, breaking any grab either was part of
func (s *CombatSystem) hold(captor, captive *entity.Fighter) {
	if captor.Captive != captive {
		captor.Release()
		captive.Release()
		captor.Captive = captive
		captive.Captor = captor
	}
	captor.Set(entity.StatusGrabbing)
	captive.Set(entity.StatusHeld)
}

// Grab seizes the first opponent f touches and faces. f only enters the
// grabbing state when the grab connects.
func (s *CombatSystem) Grab(f *entity.Fighter, fighters []*entity.Fighter) bool {
	f.AttackMarker = f.Counter
	for _, t := range fighters {
		if t == f || !t.Alive() || !f.Opposes(t) || !f.Collides(t) {
			continue
		}
		facing := (f.X < t.X && f.Direction > 0) || (f.X > t.X && f.Direction < 0)
		if !facing || t.IsAny(entity.StatusOnStage|entity.StatusInvincible|entity.StatusHeld) {
			continue
		}
		s.hold(f, t)
		f.Enemy = t
		t.AddDamage(11)
		if t.X < f.X {
			t.Direction = entity.Right
		} else {
			t.Direction = entity.Left
		}
		return true
	}
	return false
}

// Throw launches f's captive horizontally at xspeed
func (s *CombatSystem) Throw(f *entity.Fighter, xspeed int) {
	c := f.Captive
	if c == nil {
		return
	}
	f.Release()
	c.XSpeed = xspeed
	c.YSpeed = c.LaunchSpeed()
	c.Set(entity.StatusParalyzed)
	c.LastHitBy = f
}

// ExpireGrab releases a grab that has lasted longer than hold ticks
func (s *CombatSystem) ExpireGrab(f *entity.Fighter, hold int) {
	if f.Is(entity.StatusGrabbing) && f.Counter-f.AttackMarker > hold {
		f.Release()
	}
}

// Smash starts a smash attack
func (s *CombatSystem) Smash(f *entity.Fighter) {
	f.AttackMarker = f.Counter
	f.Set(entity.StatusSmash)
	f.SetFrames(entity.PoseSmash)
}

// SkyAttack starts an aerial attack
func (s *CombatSystem) SkyAttack(f *entity.Fighter) {
	f.Set(entity.StatusSky)
	f.SetFrames(entity.PoseSky)
}

// Special starts f's character-specific special attack
func (s *CombatSystem) Special(f *entity.Fighter) {
	switch f.Special {
	case entity.SpecialStill:
		f.AttackMarker = f.Counter
		f.Set(entity.StatusSpecial)
	case entity.SpecialProjectile:
		f.AttackMarker = f.Counter
		f.Set(entity.StatusSpecial)
		s.Fire(f)
	case entity.SpecialMissile:
		f.AttackMarker = f.Counter
		f.Set(entity.StatusSpecial)
		if f.Loco == entity.Climbing {
			f.Loco = entity.Standing
		}
	}
	f.SetFrames(entity.PoseSpecial)
}

// Fire launches f's projectile when the previous one has resolved
func (s *CombatSystem) Fire(f *entity.Fighter) bool {
	if !f.CanFire() {
		return false
	}
	s.launch(f)
	return true
}

func (s *CombatSystem) launch(f *entity.Fighter) {
	x := f.X - entity.ProjectileSize
	if f.Direction > 0 {
		x = f.X + f.Width
	}
	f.Projectile.Launch(x, f.Y+4, f.Direction)
}

// UpdateProjectile advances f's projectile and resolves hits against the
// other fighters.
func (s *CombatSystem) UpdateProjectile(f *entity.Fighter, fighters []*entity.Fighter) {
	p := &f.Projectile
	if p.Exploding {
		p.StepExplosion()
	}
	if !p.Active {
		return
	}

	stage := s.terrain.Stage()
	aheadX := p.X - 1
	if p.Dir > 0 {
		aheadX = p.X + entity.ProjectileSize
	}
	outside := p.X < 0 || p.X > stage.PixelWidth()-4
	if s.terrain.HasAt(aheadX, p.Y, entity.TileSolid) || p.Distance >= entity.ProjectileRange || outside {
		if s.terrain.InArena(p.X, p.Y, entity.ProjectileSize, entity.ProjectileSize) {
			p.Explode(p.X, p.Y)
		} else {
			p.Stop()
		}
		return
	}
	p.Advance()

	for _, t := range fighters {
		if !f.Opposes(t) || !t.Alive() || t.IsAny(entity.StatusInvincible|entity.StatusOnStage) {
			continue
		}
		if p.HitsBox(t.X, t.Y, t.Width, t.Height) {
			p.Explode(p.X, p.Y)
			dmg := t.AddDamage(s.rng.Intn(6) + 6)
			t.LastHitBy = f
			if s.OnHit != nil {
				s.OnHit(t, f, dmg)
			}
			return
		}
	}
}
