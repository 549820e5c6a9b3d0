package system

import (
	"github.com/younwookim/legion/internal/domain/entity"
)

// Enemy scan scoring
const (
	nearDistance2 = 2048
	midDistance2  = 4608
	lazyPercent   = 30
)

const (
	scoreProximity = iota
	scoreFatigue
	scoreLaziness
)

// AIController is the rule-based opponent: it picks a target, chases it
// across the tile map and attacks when in contact.
type AIController struct{}

// NewAIController creates an AI controller
func NewAIController() *AIController {
	return &AIController{}
}

// Control runs one tick of a computer-driven fighter
func (c *AIController) Control(m *Match, f *entity.Fighter) {
	ph, cb, t := m.physics, m.combat, m.terrain

	if f.Enemy == nil {
		c.ScanForEnemy(m, f)
	}
	m.beginTick(f)

	knockback := f.XSpeed
	if ph.UpdateParalysis(f, ParalysisFloorAI) {
		return
	}

	ph.StepJump(f)
	if f.Is(entity.StatusHeld) {
		f.JumpValue = 0
	}
	ph.CheckFalling(f)
	if !t.CanFall(f) {
		f.NumJumps = 0
		f.Clear(entity.StatusSky)
	}
	if f.JumpValue == 0 {
		if f.Item == nil {
			m.items.PickUp(f)
		} else {
			m.items.Use(f)
		}
	}

	e := f.Enemy
	if f.Loco == entity.Climbing && e != nil {
		step := m.rules.Physics.ClimbSpeed
		if f.Y > e.Y {
			f.Y -= step
		} else if f.Y < e.Y {
			f.Y += step
		}
		ph.climbFrames(f)
	}

	if e != nil && f.Y > e.Y && e.Y > 0 {
		ph.DoubleJump(f, aiJumpWindow)
	}

	if f.Loco == entity.Falling {
		c.recover(m, f, knockback)
	}

	if e != nil {
		c.evade(m, f, e)
	}

	if f.Loco != entity.Running || f.Landing {
		f.MoveSpeed = m.rules.Physics.WalkSpeed
	}
	if f.Loco == entity.Running {
		f.Loco = entity.Standing
	}

	// don't follow a target that is being launched off the top of the arena
	if e != nil && !f.Collides(e) && !e.Is(entity.StatusParalyzed) &&
		!f.Is(entity.StatusHeld) && e.FootLine() >= 4 {
		c.MoveToEnemy(m, f)
	}

	busy := entity.StatusInvincible | entity.StatusAttacking | entity.StatusGrabbing | entity.StatusHeld
	if e != nil && !f.IsAny(busy) {
		c.AttackEnemy(m, f)
	}

	if f.Is(entity.StatusGrabbing) {
		if m.rng.Intn(4) == 0 {
			cb.Throw(f, 4-m.rng.Intn(2)*8)
		} else {
			cb.ExpireGrab(f, m.rules.Combat.GrabHoldTicks)
		}
	}
	if f.Is(entity.StatusHeld) && f.Captor != nil &&
		f.Captor.Counter-f.Captor.AttackMarker > m.rules.Combat.EscapeTicks {
		f.Release()
	}

	ph.UpdateFrames(f)
	f.Counter++
}

// recover steers a falling fighter with no floor beneath it back toward
// the stage: drift against the knockback, grab a ledge, jump over water
// or the bottom edge.
func (c *AIController) recover(m *Match, f *entity.Fighter, knockback int) {
	ph, t := m.physics, m.terrain
	if t.SolidBeneath(f.X+f.Width/2-f.HalfOdd(), f.FootLine()) {
		return
	}

	if knockback > 0 {
		ph.Move(f, entity.Left)
	} else if knockback < 0 {
		ph.Move(f, entity.Right)
	}

	if !t.CanMove(f, 1, 0) || !t.CanMove(f, -1, 0) {
		f.Loco = entity.Hanging
		f.SetFrames(entity.PoseJumpUp)
	}
	if f.Loco == entity.Hanging {
		ph.StartJump(f)
	}

	water := t.HasAt(f.X+f.Width/2+f.HalfOdd(), f.FootY(), entity.TileWater)
	nearBottom := f.Y > t.Stage().PixelHeight()-32
	if f.NumJumps < 2 && (water || nearBottom) {
		ph.StartJump(f)
		f.NumJumps++
	}
}

// evade sidesteps an enemy projectile closing in at body height
func (c *AIController) evade(m *Match, f, e *entity.Fighter) {
	p := &e.Projectile
	if e.CanFire() || p.Y <= f.Y || p.Y >= f.Y+f.Height-1 {
		return
	}
	switch {
	case p.X < f.X && p.Dir > 0:
		if abs(p.X-f.X) < 10 && m.combat.Chance() {
			m.physics.Dodge(f, entity.Left)
		}
	case p.X > f.X && p.Dir < 0:
		if abs(p.X+entity.ProjectileSize-(f.X+f.Width-1)) < 10 && m.combat.Chance() {
			m.physics.Dodge(f, entity.Right)
		}
	}
}

// ScanForEnemy picks a target. With two fighters it is simply the other
// side; otherwise proximity, fatigue and a lazy human lead are scored and
// the strictly highest score wins.
func (c *AIController) ScanForEnemy(m *Match, f *entity.Fighter) {
	f.Enemy = nil
	lead := m.Lead()

	if len(m.fighters) == 2 {
		for _, o := range m.fighters {
			if f.Opposes(o) {
				f.Enemy = o
				break
			}
		}
	} else {
		var points [3]int
		closest := m.closestEnemy(f)
		fatigued := m.fatiguedEnemy(f)

		if closest != nil {
			switch d := f.Distance2(closest); {
			case d < nearDistance2:
				points[scoreProximity] += 20
			case d < midDistance2:
				points[scoreProximity] += 8
			default:
				points[scoreProximity] += 4
			}
		}
		if fatigued != nil {
			switch {
			case fatigued.Percent > 200:
				points[scoreFatigue] += 6 + m.rng.Intn(5)
			case fatigued.Percent > 100:
				points[scoreFatigue] += 3 + m.rng.Intn(3)
			}
		}
		if m.lazy(lead) && f.Opposes(lead) {
			points[scoreLaziness] += 19 + m.rng.Intn(5)
		}

		best, marker := 0, scoreProximity
		for i, p := range points {
			if p > best {
				best, marker = p, i
			}
		}
		switch marker {
		case scoreProximity:
			f.Enemy = closest
		case scoreFatigue:
			f.Enemy = fatigued
		case scoreLaziness:
			f.Enemy = lead
		}
	}

	if f.Enemy == nil && lead != nil && lead.Alive() && f.Opposes(lead) {
		f.Enemy = lead
	}
}

// MoveToEnemy takes one greedy step toward the target: along the row when
// level with it, jumping when below or blocked, dropping through clouds
// when above.
func (c *AIController) MoveToEnemy(m *Match, f *entity.Fighter) {
	e := f.Enemy
	ph, t := m.physics, m.terrain

	switch {
	case f.X > e.X:
		c.chase(m, f, entity.Left)
	case f.X < e.X:
		c.chase(m, f, entity.Right)
	case f.FootLine() > e.FootLine():
		chaseJump(ph, f, 0)
	case f.FootLine() < e.FootLine() && !t.CanFall(f):
		if !ph.DropThroughCloud(f, false) {
			ph.Move(f, entity.Right)
		}
	}
}

func (c *AIController) chase(m *Match, f *entity.Fighter, dir entity.Direction) {
	e := f.Enemy
	ph, t := m.physics, m.terrain
	halfW, odd := f.Width/2, f.HalfOdd()

	if !t.CanMove(f, int(dir), 0) {
		chaseJump(ph, f, dir)
		return
	}

	switch {
	case f.FootLine() > e.FootLine():
		if e.Loco == entity.Climbing {
			c.chaseUpLadder(m, f, dir)
			return
		}
		aheadX := f.X + halfW - 9 - odd
		if dir == entity.Right {
			aheadX = f.X + halfW + 8 + odd
		}
		ahead := t.FlagsAt(aheadX, f.FootY())
		if e.Loco != entity.Falling || ahead == entity.TileEmpty || ahead == entity.TileWater || ahead == entity.TileHot {
			chaseJump(ph, f, dir)
			ph.Move(f, dir)
		}

	case f.FootLine() < e.FootLine():
		if !t.CanFall(f) && ph.DropThroughCloud(f, false) {
			return
		}
		ph.Move(f, dir)

	default:
		ph.Move(f, dir)
	}
}

// chaseUpLadder follows a climbing target onto the ladder in front of f,
// or jumps toward it when there is none
func (c *AIController) chaseUpLadder(m *Match, f *entity.Fighter, dir entity.Direction) {
	ph, t := m.physics, m.terrain
	halfW, odd := f.Width/2, f.HalfOdd()
	y := f.Y + f.Height - 16

	probeX := f.X + halfW - 8 + odd
	if dir == entity.Right {
		probeX = f.X + halfW + 7
	}
	if !t.HasAt(probeX, y, entity.TileLadder) {
		chaseJump(ph, f, dir)
		ph.Move(f, dir)
		return
	}
	if (f.X+halfW-8+odd)&15 != 0 {
		f.X += int(dir) * m.rules.Physics.ClimbSpeed
	}
	f.Loco = entity.Climbing
}

// chaseJump starts a first jump, turning toward dir when it is set
func chaseJump(ph *PhysicsSystem, f *entity.Fighter, dir entity.Direction) {
	if f.NumJumps != 0 {
		return
	}
	if dir != 0 {
		f.Direction = dir
	}
	ph.StartJump(f)
	f.NumJumps = 1
}

// AttackEnemy chooses between a sky attack, a reactive dodge or grab, and
// a grab, smash or special when in contact
func (c *AIController) AttackEnemy(m *Match, f *entity.Fighter) {
	e := f.Enemy
	ph, cb := m.physics, m.combat

	if f.Loco == entity.Falling && e.Y > f.Y && centerGap(f, e) < 16 && cb.Chance() {
		cb.SkyAttack(f)
		if f.X+f.Width/2 < e.X+e.Width/2 {
			f.Direction = entity.Right
		} else {
			f.Direction = entity.Left
		}
	}

	collided := f.Collides(e)
	if collided && !f.Is(entity.StatusOnStage) && e.Attacking() && cb.Chance() {
		if m.rng.Intn(2) == 0 {
			switch {
			case f.X > e.X && e.Direction > 0:
				ph.Dodge(f, entity.Left)
				f.Direction = f.Direction.Flip()
			case f.X < e.X && e.Direction < 0:
				ph.Dodge(f, entity.Right)
				f.Direction = f.Direction.Flip()
			}
		} else {
			cb.Grab(f, m.fighters)
		}
	}

	if !collided || !cb.Chance() {
		return
	}
	if f.X+f.Width/2-8 < e.X+e.Width/2-8 && f.Direction < 0 {
		f.Direction = entity.Right
	}
	if f.X+f.Width/2+7 >= e.X+e.Width/2+7 && f.Direction > 0 {
		f.Direction = entity.Left
	}

	switch a := m.rng.Intn(24); {
	case a < 9:
		cb.Grab(f, m.fighters)
	case a < 18:
		cb.Smash(f)
	default:
		cb.Special(f)
	}
}

// centerGap returns the horizontal distance between the tile-aligned
// centers of two fighters
func centerGap(a, b *entity.Fighter) int {
	return abs((a.X + a.Width/2 - 8 + a.HalfOdd()) - (b.X + b.Width/2 - 8 + b.HalfOdd()))
}
