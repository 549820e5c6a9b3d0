package system

import (
	"math/rand"

	"github.com/younwookim/legion/internal/domain/entity"
)

// Boss timing, in boss ticks
const (
	BossDecisionPeriod = 64
	BossHoverPeriod    = 16
	BossCatchDelay     = 8
	BossHoldTicks      = 25
	BossHoldDamage     = 10
	BossDeathTicks     = 128
)

// Field edges that end the sweeping attacks
const (
	BossFieldLeft   = 32
	BossFieldRight  = 160
	BossPunchLimit  = 36
	bossDriftSpeed  = 4
	bossRestCeiling = 20
)

// BossAttack is one attack routine. Step runs once per tick while the
// attack is selected and ends it through h.EndAttack.
type BossAttack interface {
	Step(s *BossSystem, h *entity.Boss, target *entity.Fighter)
}

// BossSystem drives the one or two bosses of a boss fight against the lead
// fighter.
type BossSystem struct {
	terrain   *Terrain
	rng       *rand.Rand
	originX   int
	primary   *entity.Boss
	secondary *entity.Boss
	attacks   map[entity.BossAttackID]BossAttack

	// alreadyHitting latches one boss hit per attack contact
	alreadyHitting bool

	// OnBossHit fires when the lead fighter damages a boss
	OnBossHit func(h *entity.Boss, damage int)
}

// NewBossSystem creates the bosses for a fight. count is 1 or 2. Home
// positions and field edges are measured from originX, the left edge of the
// starting view.
func NewBossSystem(terrain *Terrain, rng *rand.Rand, difficulty entity.Difficulty, count, originX int) *BossSystem {
	s := &BossSystem{
		terrain: terrain,
		rng:     rng,
		originX: originX,
		primary: entity.NewBoss(entity.BossPrimary, difficulty.BossHP()),
		attacks: map[entity.BossAttackID]BossAttack{
			entity.AttackFireSlam: fireSlam{},
			entity.AttackGrab:     grabAttack{},
			entity.AttackPalmSlap: palmSlap{},
			entity.AttackPunch:    punch{},
			entity.AttackSwat:     swat{},
			entity.AttackTeamClap: teamClap{},
		},
	}
	s.primary.X += originX
	if count > 1 {
		s.secondary = entity.NewBoss(entity.BossSecondary, difficulty.SecondaryBossHP())
		s.secondary.X += originX
	}
	return s
}

// Primary returns the primary boss
func (s *BossSystem) Primary() *entity.Boss {
	return s.primary
}

// Secondary returns the secondary boss, or nil in a single-boss fight
func (s *BossSystem) Secondary() *entity.Boss {
	return s.secondary
}

// Bosses returns the bosses in the fight
func (s *BossSystem) Bosses() []*entity.Boss {
	if s.secondary == nil {
		return []*entity.Boss{s.primary}
	}
	return []*entity.Boss{s.primary, s.secondary}
}

func (s *BossSystem) other(h *entity.Boss) *entity.Boss {
	if h == s.primary {
		return s.secondary
	}
	return s.primary
}

// canDrop reports whether the boss can sink further toward the floor
func (s *BossSystem) canDrop(h *entity.Boss) bool {
	return !s.terrain.HasAt(h.X+16, h.Y+entity.BossSize, entity.TileSolid)
}

// towardCenter returns the horizontal step a boss takes on its sweeps
func towardCenter(h *entity.Boss) int {
	if h.Kind == entity.BossPrimary {
		return -bossDriftSpeed
	}
	return bossDriftSpeed
}

// sinkOrSweep drops the boss while it can and sweeps it sideways once it
// has reached the floor.
func (s *BossSystem) sinkOrSweep(h *entity.Boss) {
	if s.canDrop(h) {
		h.Y += 4
	} else {
		h.X += towardCenter(h)
	}
}

// Update runs one tick of a boss against target. Dead bosses are skipped.
func (s *BossSystem) Update(h *entity.Boss, target *entity.Fighter) {
	if !h.Alive() {
		return
	}

	if h.Attack != entity.AttackNone && !h.Spastic {
		s.attacks[h.Attack].Step(s, h, target)
	} else {
		adjusting := false
		home := h.HomeX() + s.originX
		if h.Kind == entity.BossPrimary && h.X < home+32 {
			h.X += bossDriftSpeed
			adjusting = true
		}
		if h.Kind == entity.BossSecondary && h.X > home+32 {
			h.X -= bossDriftSpeed
			adjusting = true
		}
		if h.Y > bossRestCeiling {
			h.Y -= bossDriftSpeed
			adjusting = true
		}
		if h.Counter%BossDecisionPeriod == 0 && !adjusting && !h.Spastic {
			h.Attack = s.decide(h)
		}
	}

	if h.Counter%BossHoverPeriod == 0 {
		h.Hovering = !h.Hovering
	}
	if h.Attack == entity.AttackNone {
		h.Frame = entity.BossIdle
		if h.Hovering {
			h.Frame = entity.BossHover
		}
	}

	if h.Holding {
		touching := h.Collides(target)
		if !touching {
			h.X += towardCenter(h)
		}
		if h.Counter-h.Marker > BossCatchDelay {
			h.Frame = entity.BossTryToCatch
		}
		if h.Frame == entity.BossTryToCatch {
			if touching {
				h.Frame = entity.BossHoldingFighter
				target.Set(entity.StatusHeld)
			} else {
				h.Frame = entity.BossMiss
				h.EndAttack()
			}
		}
	}

	if h.Holding && target.Is(entity.StatusHeld) && h.Counter-h.Marker > BossHoldTicks {
		target.Clear(entity.StatusHeld)
		target.AddDamage(BossHoldDamage)
		h.EndAttack()
	}

	if h.HitPoints == 0 && !h.Spastic {
		h.Spastic = true
		h.Marker = h.Counter
		if h.Holding {
			target.Clear(entity.StatusHeld)
		}
		h.EndAttack()
	}
	if h.Spastic {
		if h.Counter&7 == 0 {
			h.Frame = entity.BossHurt1
			if !h.Hovering {
				h.Frame = entity.BossHurt2
			}
		}
		if h.Counter-h.Marker >= BossDeathTicks {
			h.Spastic = false
			h.Dead = true
		}
	}

	h.Counter++
}

// decide picks the next attack. The secondary boss follows the primary into
// the team clap and the punch.
func (s *BossSystem) decide(h *entity.Boss) entity.BossAttackID {
	other := s.other(h)
	if h.Kind == entity.BossSecondary {
		switch {
		case other.Alive() && other.Attack == entity.AttackTeamClap:
			return entity.AttackTeamClap
		case other.Alive() && other.Attack == entity.AttackPunch:
			return entity.AttackPunch
		}
		return entity.BossAttackID(s.rng.Intn(5) + 1)
	}
	if other.Alive() {
		return entity.BossAttackID(s.rng.Intn(6) + 1)
	}
	return entity.BossAttackID(s.rng.Intn(5) + 1)
}

// ResolveHits settles contact between the lead fighter and the bosses.
// Attacks against a boss land once per contact; a boss in the middle of a
// damaging attack launches the fighter.
func (s *BossSystem) ResolveHits(p *entity.Fighter) {
	if p.IsAny(entity.StatusInvincible | entity.StatusParalyzed | entity.StatusOnStage) {
		return
	}
	for _, h := range s.Bosses() {
		if !h.Alive() || !h.Collides(p) {
			continue
		}
		if p.Attacking() {
			if !s.alreadyHitting {
				dmg := 9 + s.rng.Intn(4)
				if p.Is(entity.StatusSky) {
					dmg += 8
				}
				h.TakeHit(dmg)
				s.alreadyHitting = true
				if s.OnBossHit != nil {
					s.OnBossHit(h, dmg)
				}
			}
		} else {
			s.alreadyHitting = false
		}

		if h.Attack != entity.AttackNone && h.Attack != entity.AttackFireSlam && !h.Spastic {
			dmg := 16
			if h.Attack > entity.AttackSwat {
				dmg += 8
			}
			p.AddDamage(dmg)
			knock := s.rng.Intn(3) * 2
			if h.Kind == entity.BossPrimary {
				knock = -knock
			}
			p.XSpeed = knock
			p.YSpeed = p.LaunchSpeed()
			p.Set(entity.StatusParalyzed)
		}
		return
	}
}

// Spastic reports whether any boss is in its death throes
func (s *BossSystem) Spastic() bool {
	for _, h := range s.Bosses() {
		if h.Spastic {
			return true
		}
	}
	return false
}

// FightWon reports whether every boss has been defeated
func (s *BossSystem) FightWon() bool {
	if s.Spastic() {
		return false
	}
	for _, h := range s.Bosses() {
		if !h.Dead {
			return false
		}
	}
	return true
}

type fireSlam struct{}

// Step rises above the target, slides over it and slams down
func (fireSlam) Step(s *BossSystem, h *entity.Boss, target *entity.Fighter) {
	if !h.Dropping {
		if h.Y > -entity.BossSize {
			h.Y -= 4
		}
		if h.Kind == entity.BossPrimary {
			if h.X > target.X {
				h.X -= 2
			} else {
				h.Dropping = true
			}
		} else {
			if h.X < target.X {
				h.X += 2
			} else {
				h.Dropping = true
			}
		}
		return
	}

	h.Frame = entity.BossFireSlam
	if s.canDrop(h) {
		h.Y += 8
	} else {
		h.EndAttack()
	}
}

type grabAttack struct{}

// Step opens the hand. The catch itself is resolved in BossSystem.Update.
func (grabAttack) Step(s *BossSystem, h *entity.Boss, target *entity.Fighter) {
	other := s.other(h)
	if h.Kind == entity.BossSecondary && other.Alive() && other.Holding {
		return
	}
	if !h.Holding {
		h.Marker = h.Counter
		h.Frame = entity.BossPrepGrab
	}
	h.Holding = true
}

type palmSlap struct{}

func (palmSlap) Step(s *BossSystem, h *entity.Boss, target *entity.Fighter) {
	h.Frame = entity.BossPalmSlap
	s.sinkOrSweep(h)
	if s.pastField(h) {
		h.EndAttack()
	}
}

type punch struct{}

func (punch) Step(s *BossSystem, h *entity.Boss, target *entity.Fighter) {
	h.Frame = entity.BossPunch
	s.sinkOrSweep(h)

	other := s.other(h)
	if h.Kind == entity.BossPrimary {
		met := other.Alive() && other.Attack == entity.AttackPunch && other.X+entity.BossSize > h.X
		if h.X-s.originX < BossPunchLimit || met {
			h.EndAttack()
		}
		return
	}
	if h.X+entity.BossSize > other.X {
		h.EndAttack()
	}
}

type swat struct{}

func (swat) Step(s *BossSystem, h *entity.Boss, target *entity.Fighter) {
	s.sinkOrSweep(h)
	switch {
	case h.X&31 == 0:
		h.Frame = entity.BossSwatFrontswing
	case h.X&15 == 0:
		h.Frame = entity.BossSwatBackswing
	}
	if s.pastField(h) {
		h.EndAttack()
	}
}

type teamClap struct{}

// Step sweeps both bosses toward each other until they meet
func (teamClap) Step(s *BossSystem, h *entity.Boss, target *entity.Fighter) {
	h.Frame = entity.BossTeamClap
	s.sinkOrSweep(h)

	other := s.other(h)
	if other == nil {
		h.EndAttack()
		return
	}
	if h.Kind == entity.BossPrimary {
		if other.X+entity.BossSize > h.X {
			h.EndAttack()
		}
		return
	}
	if h.X+entity.BossSize > other.X {
		h.EndAttack()
	}
}

// pastField reports whether a sweeping boss has crossed the far edge of the
// field
func (s *BossSystem) pastField(h *entity.Boss) bool {
	x := h.X - s.originX
	if h.Kind == entity.BossPrimary {
		return x < BossFieldLeft
	}
	return x > BossFieldRight
}
