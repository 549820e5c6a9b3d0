package system

import (
	"math/rand"

	"github.com/younwookim/legion/internal/domain/entity"
	"github.com/younwookim/legion/internal/infrastructure/config"
)

// Paralysis ends once vertical speed decays to these floors
const (
	ParalysisFloorHuman = -8
	ParalysisFloorAI    = 0
)

// PhysicsSystem moves fighters through the tile map: jumping, falling,
// slopes, ladders, clouds and knockback flight.
type PhysicsSystem struct {
	config  *config.PhysicsConfig
	combat  *config.CombatConfig
	terrain *Terrain
	rng     *rand.Rand
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(rules *config.RulesConfig, terrain *Terrain, rng *rand.Rand) *PhysicsSystem {
	return &PhysicsSystem{
		config:  &rules.Physics,
		combat:  &rules.Combat,
		terrain: terrain,
		rng:     rng,
	}
}

// Terrain returns the terrain the system moves fighters through
func (s *PhysicsSystem) Terrain() *Terrain {
	return s.terrain
}

// UpdateParalysis flies a knocked-back fighter. It returns true while the
// fighter stays paralyzed, in which case the rest of its tick is skipped.
func (s *PhysicsSystem) UpdateParalysis(f *entity.Fighter, floor int) bool {
	if !f.Is(entity.StatusParalyzed) {
		return false
	}

	f.Clear(entity.StatusOnHillLeft | entity.StatusOnHillRight | entity.StatusAttacking)
	f.Release()

	if f.YSpeed <= floor || !s.terrain.CanMove(f, 0, DirUp) || (f.YSpeed < 0 && !s.terrain.CanFall(f)) {
		f.Clear(entity.StatusParalyzed)
		f.XSpeed, f.YSpeed = 0, 0
		return false
	}

	f.Y -= f.YSpeed
	f.YSpeed -= 2
	dir := 1
	if f.XSpeed < 0 {
		dir = -1
	}
	if s.terrain.CanMove(f, dir, 0) {
		f.X += f.XSpeed
	} else {
		f.XSpeed = -f.XSpeed
	}
	f.SetFrames(entity.PoseHurt)
	return true
}

// StartJump begins a full jump
func (s *PhysicsSystem) StartJump(f *entity.Fighter) {
	f.JumpValue = s.config.JumpValue
	f.Loco = entity.Jumping
	f.Clear(entity.StatusOnHillLeft | entity.StatusOnHillRight)
	f.SetFrames(entity.PoseJumpUp)
}

// DoubleJump refills the jump budget of an airborne fighter whose first
// jump is inside the window
func (s *PhysicsSystem) DoubleJump(f *entity.Fighter, window int) bool {
	if f.NumJumps != 1 || f.JumpValue <= 0 || f.JumpValue >= window {
		return false
	}
	f.JumpValue = s.config.JumpValue
	f.NumJumps = 2
	f.Loco = entity.Jumping
	return true
}

// StepJump spends one tick of jump budget and lands the fighter when the
// budget runs out or the way up is blocked.
func (s *PhysicsSystem) StepJump(f *entity.Fighter) {
	if f.JumpValue > 0 {
		f.Y -= s.config.JumpSpeed
		f.JumpValue -= s.config.JumpSpeed
	}
	if f.JumpValue < 0 || !s.terrain.CanMove(f, 0, DirUp) {
		f.JumpValue = 0
	}
	if f.JumpValue == 0 && f.Loco == entity.Jumping {
		f.Loco = entity.Standing
	}
}

// CheckFalling applies gravity, hot and water tiles, and slope landings
func (s *PhysicsSystem) CheckFalling(f *entity.Fighter) {
	t := s.terrain
	drag := 0
	halfW := f.Width / 2
	odd := f.HalfOdd()
	canFall := t.CanFall(f)
	falling := f.Loco == entity.Falling

	switch {
	case !f.Is(entity.StatusOnStage) && f.JumpValue == 0 && canFall &&
		f.Loco != entity.Climbing && f.Loco != entity.Hanging:
		f.Loco = entity.Falling
		if t.HasAt(f.X, f.Y+f.Height, entity.TileHot) {
			f.AddDamage(20 + s.rng.Intn(3))
			f.JumpValue = s.config.JumpValue
			f.Loco = entity.Jumping
		}
		if t.HasAt(f.X, f.Y+f.Height, entity.TileWater) {
			drag = s.config.WaterDrag
		}

	case !canFall && falling && s.hill(f.X+halfW+odd, f.FootY(), entity.TileSlopeRight):
		f.Landing = true
		if (f.X+halfW)&15 == 0 {
			f.Y += 16
		} else {
			f.Y += 16 - ((f.X + halfW) & 15) - odd
		}
		f.Loco = entity.Standing
		f.Set(entity.StatusOnHillRight)

	case !canFall && falling && s.hill(f.X+halfW-1-odd, f.FootY(), entity.TileSlopeLeft):
		f.Landing = true
		if (f.X+halfW-1)&15 == 15 {
			f.Y += 16
		} else {
			f.Y += (f.X + halfW - 2 + odd) & 15
		}
		f.Loco = entity.Standing
		f.Set(entity.StatusOnHillLeft)

	default:
		if f.Loco == entity.Falling {
			f.Loco = entity.Standing
		}
		f.Landing = false
	}

	if f.Loco == entity.Falling {
		f.Y += s.config.FallSpeed + drag
		if drag > 0 {
			f.Loco = entity.Standing
		}
	}
}

func (s *PhysicsSystem) hill(px, py int, slope entity.TileFlag) bool {
	return s.terrain.HasAt(px, py, entity.TileSolid|slope)
}

func (s *PhysicsSystem) onHillAlign(f *entity.Fighter) bool {
	a := (f.X + f.Width/2 - 8) & 15
	return a == 8 || a == 9
}

// Move walks or runs f one step toward dir, following slopes
func (s *PhysicsSystem) Move(f *entity.Fighter, dir entity.Direction) {
	if f.Direction != dir && f.Loco != entity.Falling {
		f.MoveSpeed = s.config.RunSpeed
	}
	f.Direction = dir
	switch f.Loco {
	case entity.Standing, entity.Crouching, entity.Climbing, entity.Hanging, entity.Running:
		f.Loco = entity.Running
	}

	if dir == entity.Left {
		s.moveLeft(f)
	} else {
		s.moveRight(f)
	}

	if f.JumpValue == 0 && f.Loco == entity.Running {
		f.AdvanceRun()
	}
}

func (s *PhysicsSystem) moveLeft(f *entity.Fighter) {
	halfW := f.Width / 2
	odd := f.HalfOdd()
	ms := f.MoveSpeed
	lower := f.Y + f.Height - 16 + f.HeightOdd()
	step := s.config.ClimbSpeed

	switch {
	case s.hill(f.X+halfW-7-ms-odd, lower, entity.TileSlopeLeft) || f.Is(entity.StatusOnHillLeft):
		// up a slope rising to the left
		if s.onHillAlign(f) {
			f.Set(entity.StatusOnHillLeft)
		} else if !f.Is(entity.StatusOnHillLeft) {
			f.X -= step
		}
		if s.onHillAlign(f) && !s.hill(f.X+halfW-6-ms, lower, entity.TileSlopeLeft) {
			f.Clear(entity.StatusOnHillLeft)
		}
		if f.Is(entity.StatusOnHillLeft) {
			f.Y -= step
			f.X -= step
		}

	case s.hill(f.X+halfW-7-ms, f.FootY(), entity.TileSlopeRight) || f.Is(entity.StatusOnHillRight):
		// down a slope rising to the right
		if s.onHillAlign(f) {
			f.Set(entity.StatusOnHillRight)
		}
		if s.onHillAlign(f) && !s.hill(f.X+halfW-6-ms, f.FootY(), entity.TileSlopeRight) {
			f.Clear(entity.StatusOnHillRight)
		}
		if f.Is(entity.StatusOnHillRight) {
			f.X -= step
			f.Y += step
		}
	}

	if !f.IsAny(entity.StatusOnHillLeft|entity.StatusOnHillRight) && s.terrain.CanMove(f, -1, 0) {
		f.X -= f.MoveSpeed
	}
}

func (s *PhysicsSystem) moveRight(f *entity.Fighter) {
	halfW := f.Width / 2
	odd := f.HalfOdd()
	ms := f.MoveSpeed
	lower := f.Y + f.Height - 16 + f.HeightOdd()
	step := s.config.ClimbSpeed

	switch {
	case s.hill(f.X+halfW+6+ms+2*odd, lower, entity.TileSlopeRight) || f.Is(entity.StatusOnHillRight):
		// up a slope rising to the right
		if s.onHillAlign(f) {
			f.Set(entity.StatusOnHillRight)
		} else if !f.Is(entity.StatusOnHillRight) {
			f.X += step
		}
		if s.onHillAlign(f) && !s.hill(f.X+halfW+5+ms, lower, entity.TileSlopeRight) {
			f.Clear(entity.StatusOnHillRight)
		}
		if f.Is(entity.StatusOnHillRight) {
			f.Y -= step
			f.X += step
		}

	case s.hill(f.X+halfW+6+ms, f.FootY(), entity.TileSlopeLeft) || f.Is(entity.StatusOnHillLeft):
		// down a slope rising to the left
		if s.onHillAlign(f) {
			f.Set(entity.StatusOnHillLeft)
		} else if !f.Is(entity.StatusOnHillLeft) {
			f.X += step
		}
		if s.onHillAlign(f) && !s.hill(f.X+halfW+5+ms, f.FootY(), entity.TileSlopeLeft) {
			f.Clear(entity.StatusOnHillLeft)
		}
		if f.Is(entity.StatusOnHillLeft) {
			f.X += step
			f.Y += step
		}

	default:
		if s.terrain.CanMove(f, 1, 0) {
			f.X += f.MoveSpeed
		}
	}
}

// Dodge sidesteps f by the dodge distance, invulnerable while grounded
func (s *PhysicsSystem) Dodge(f *entity.Fighter, dir entity.Direction) {
	if f.Loco != entity.Falling && f.JumpValue == 0 {
		f.Set(entity.StatusInvincible)
	}
	if s.terrain.CanMove(f, int(dir), 0) {
		f.X += int(dir) * s.config.DodgeDistance
		f.Direction = dir
		return
	}
	if f.InvincibleTicks == 0 {
		f.Clear(entity.StatusInvincible)
	}
}

// LadderAt reports whether either foot probe of f touches a ladder
func (s *PhysicsSystem) LadderAt(f *entity.Fighter) (left, right bool) {
	halfW := f.Width / 2
	y := f.Y + f.Height - 16
	left = s.terrain.HasAt(f.X+halfW-8+f.HalfOdd(), y, entity.TileLadder)
	right = s.terrain.HasAt(f.X+halfW+7, y, entity.TileLadder)
	return left, right
}

// ClimbUp moves f up a ladder it stands on. It returns false when there is
// no ladder under f.
func (s *PhysicsSystem) ClimbUp(f *entity.Fighter) bool {
	left, right := s.LadderAt(f)
	if !left && !right {
		return false
	}

	step := s.config.ClimbSpeed
	if (f.X+f.Width/2-8+f.HalfOdd())&15 != 0 {
		if right {
			f.X += step
		} else {
			f.X -= step
		}
	}

	if s.terrain.CanMove(f, 0, DirUp) {
		f.Loco = entity.Climbing
		f.Y -= step
	} else if f.Loco == entity.Climbing {
		f.Loco = entity.Standing
	}
	if f.Loco == entity.Climbing {
		s.climbFrames(f)
	}
	return true
}

// ClimbDown moves a climbing fighter down, stepping off at the bottom
func (s *PhysicsSystem) ClimbDown(f *entity.Fighter) {
	if f.Loco != entity.Climbing {
		return
	}
	if s.terrain.CanFall(f) {
		f.Y += s.config.ClimbSpeed
	} else {
		f.Loco = entity.Standing
		return
	}
	s.climbFrames(f)
}

func (s *PhysicsSystem) climbFrames(f *entity.Fighter) {
	if f.Counter&7 == 0 {
		f.Direction = f.Direction.Flip()
	}
	f.SetFrames(entity.PoseClimb)
}

// DropThroughCloud pushes a grounded fighter into the cloud platform under
// it. It returns false when there is no cloud to drop through.
func (s *PhysicsSystem) DropThroughCloud(f *entity.Fighter, strict bool) bool {
	halfW := f.Width / 2
	odd := f.HalfOdd()
	cloud := entity.TileSolid | entity.TileCloud
	sd := s.terrain.FlagsAt(f.X+halfW-8+odd, f.FootY())
	sd2 := s.terrain.FlagsAt(f.X+halfW+7+odd, f.FootY())

	var ok bool
	if strict {
		ok = (sd == cloud && sd2 != entity.TileSolid) || (sd2 == cloud && sd != entity.TileSolid)
	} else {
		ok = sd == cloud || sd2 == cloud
	}
	if !ok {
		return false
	}
	f.Y += 4
	f.Clear(entity.StatusOnHillLeft | entity.StatusOnHillRight)
	return true
}

// UpdateTimers counts down item-granted statuses
func (s *PhysicsSystem) UpdateTimers(f *entity.Fighter) {
	if f.CloakTicks > 0 {
		f.CloakTicks--
		if f.CloakTicks == 0 {
			f.Clear(entity.StatusCloaked)
		}
	}
	if f.MetalTicks > 0 {
		f.MetalTicks--
		if f.MetalTicks == 0 {
			f.Clear(entity.StatusMetal)
			f.Size -= 5
		}
	}
	if f.InvincibleTicks > 0 {
		f.InvincibleTicks--
		f.Set(entity.StatusInvincible)
	}
}

// UpdateFrames picks the animation frames for the fighter's state and ends
// timed actions.
func (s *PhysicsSystem) UpdateFrames(f *entity.Fighter) {
	delay := s.combat.AttackAnimDelay

	if f.Counter&31 == 0 {
		f.SetTo(entity.StatusBreathing, !f.Is(entity.StatusBreathing))
	}

	switch f.Loco {
	case entity.Running, entity.Climbing, entity.Falling, entity.Jumping:
	default:
		if f.JumpValue == 0 && !f.Is(entity.StatusTaunting) {
			if f.Is(entity.StatusBreathing) {
				f.SetFrames(entity.PoseBreathe)
			} else {
				f.SetFrames(entity.PoseStand)
			}
		}
	}

	if f.Is(entity.StatusSmash) {
		if f.Counter-f.AttackMarker > delay {
			f.SetFrames(entity.PoseStand)
			f.Clear(entity.StatusSmash)
		} else {
			f.SetFrames(entity.PoseSmash)
		}
	}

	if f.Is(entity.StatusSky) {
		f.SetFrames(entity.PoseSky)
	}

	if f.Is(entity.StatusSpecial) {
		if f.Counter-f.AttackMarker > delay {
			f.SetFrames(entity.PoseStand)
			f.Clear(entity.StatusSpecial)
		} else {
			f.SetFrames(entity.PoseSpecial)
		}
		if f.Special == entity.SpecialMissile {
			f.MissileTicks++
			if f.MissileTicks < s.combat.MissileTicks && s.terrain.CanMove(f, int(f.Direction), 0) {
				f.Set(entity.StatusSpecial)
				f.SetFrames(entity.PoseSpecial)
				f.X += int(f.Direction) * 4
			} else {
				f.MissileTicks = 0
				f.Clear(entity.StatusSpecial)
			}
		}
	}

	if f.Is(entity.StatusInvincible) || f.Loco == entity.Crouching {
		f.SetFrames(entity.PoseCrouch)
	}
	if f.Is(entity.StatusHeld) {
		f.SetFrames(entity.PoseHurt)
	}
	if f.Is(entity.StatusTaunting) {
		if f.Counter-f.AttackMarker > delay {
			f.FrameRight = entity.FrameTaunt2
		}
		if f.Counter-f.AttackMarker > 2*delay {
			f.FrameRight = entity.FrameStandRight
			f.Clear(entity.StatusTaunting)
		}
	}
}
