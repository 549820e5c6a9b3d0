package entity

// MaxPercent is the saturation point of accumulated damage
const MaxPercent = 999

// Direction is a horizontal facing
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

// Flip returns the opposite facing
func (d Direction) Flip() Direction {
	return -d
}

// Team groups fighters that never target each other. TeamNone is free-for-all
// and every fighter on it is treated as its own side.
type Team int

const TeamNone Team = 0

// ControllerKind tells who decides a fighter's actions
type ControllerKind int

const (
	ControlHuman ControllerKind = iota
	ControlAI
	ControlRemote
)

func (k ControllerKind) String() string {
	switch k {
	case ControlHuman:
		return "human"
	case ControlAI:
		return "ai"
	case ControlRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Locomotion is the mutually exclusive movement mode of a fighter
type Locomotion int

const (
	Standing Locomotion = iota
	Running
	Crouching
	Climbing
	Hanging
	Falling
	Jumping
)

func (l Locomotion) String() string {
	switch l {
	case Standing:
		return "Standing"
	case Running:
		return "Running"
	case Crouching:
		return "Crouching"
	case Climbing:
		return "Climbing"
	case Hanging:
		return "Hanging"
	case Falling:
		return "Falling"
	case Jumping:
		return "Jumping"
	default:
		return "Unknown"
	}
}

// Status holds the orthogonal action and condition bits of a fighter
type Status uint32

const (
	StatusSmash Status = 1 << iota
	StatusSpecial
	StatusSky
	StatusGrabbing
	StatusHeld
	StatusParalyzed
	StatusInvincible
	StatusCloaked
	StatusMetal
	StatusBreathing
	StatusTaunting
	StatusOnStage
	StatusDead
	StatusOnHillLeft
	StatusOnHillRight
)

// StatusAttacking matches any of the three attack states
const StatusAttacking = StatusSmash | StatusSpecial | StatusSky

// Fighter is a combatant in the arena. Positions are the top-left corner of
// the fighter's box in world units.
type Fighter struct {
	ID         EntityID
	Character  int
	Width      int
	Height     int
	Special    SpecialType
	Team       Team
	Controller ControllerKind

	X, Y      int
	XSpeed    int
	YSpeed    int
	MoveSpeed int
	JumpValue int
	NumJumps  int
	Direction Direction
	Loco      Locomotion
	Status    Status

	Power   int
	Size    int
	Percent int
	Lives   int
	Kills   int
	Deaths  int

	// DamageTaken is the running total of percent received this match
	DamageTaken int

	Item       *Item
	Projectile Projectile

	Enemy     *Fighter
	Captor    *Fighter
	Captive   *Fighter
	LastHitBy *Fighter

	Counter      int
	AttackMarker int
	FrameLeft    Frame
	FrameRight   Frame

	// Per-fighter tick counters
	MissileTicks    int
	DeathTicks      int
	EntryTicks      int
	CloakTicks      int
	MetalTicks      int
	InvincibleTicks int

	// Landing is set for one tick after snapping onto a slope
	Landing bool
}

// NewFighter creates a fighter for a roster character in its pre-match state
func NewFighter(id EntityID, character int, team Team, controller ControllerKind) *Fighter {
	c := Roster[character]
	f := &Fighter{
		ID:         id,
		Character:  character,
		Width:      c.Width,
		Height:     c.Height,
		Special:    c.Special,
		Team:       team,
		Controller: controller,
	}
	f.ResetForMatch()
	return f
}

// ResetForMatch restores the per-match defaults
func (f *Fighter) ResetForMatch() {
	f.Power = 10
	f.Size = 2
	f.Percent = 0
	f.Status = StatusOnStage
	f.Loco = Standing
	f.Direction = Right
	f.XSpeed, f.YSpeed = 0, 0
	f.JumpValue, f.NumJumps = 0, 0
	f.Item = nil
	f.Projectile = Projectile{}
	f.Enemy, f.Captor, f.Captive, f.LastHitBy = nil, nil, nil, nil
	f.FrameLeft, f.FrameRight = FrameStandLeft, FrameStandRight
}

// ResetForRespawn clears the fighter's state after losing a life and puts it
// on the respawn platform
func (f *Fighter) ResetForRespawn() {
	f.Percent = 0
	f.XSpeed, f.YSpeed = 0, 0
	f.JumpValue, f.NumJumps = 0, 0
	f.Loco = Standing
	f.Release()
	f.Clear(StatusParalyzed | StatusCloaked | StatusMetal | StatusOnHillLeft | StatusOnHillRight | StatusAttacking)
	if f.MetalTicks > 0 {
		f.Size -= 5
	}
	f.CloakTicks, f.MetalTicks, f.MissileTicks = 0, 0, 0
	f.Set(StatusOnStage)
	f.EntryTicks = 0
	f.FrameLeft, f.FrameRight = FrameStandLeft, FrameStandRight
}

// ClearEnemyIfGone drops the target when it is dead, respawning or
// paralyzed
func (f *Fighter) ClearEnemyIfGone() {
	if f.Enemy != nil && f.Enemy.IsAny(StatusDead|StatusOnStage|StatusParalyzed) {
		f.Enemy = nil
	}
}

// Is reports whether every bit in s is set
func (f *Fighter) Is(s Status) bool {
	return f.Status&s == s
}

// IsAny reports whether any bit in s is set
func (f *Fighter) IsAny(s Status) bool {
	return f.Status&s != 0
}

// Set raises the given status bits
func (f *Fighter) Set(s Status) {
	f.Status |= s
}

// Clear lowers the given status bits
func (f *Fighter) Clear(s Status) {
	f.Status &^= s
}

// SetTo raises or lowers s
func (f *Fighter) SetTo(s Status, on bool) {
	if on {
		f.Set(s)
	} else {
		f.Clear(s)
	}
}

// Alive reports whether the fighter is still in the match
func (f *Fighter) Alive() bool {
	return !f.Is(StatusDead)
}

// Attacking reports whether any attack is in progress
func (f *Fighter) Attacking() bool {
	return f.IsAny(StatusAttacking)
}

// CanFire reports whether the fighter has no projectile resolving
func (f *Fighter) CanFire() bool {
	return !f.Projectile.Active && !f.Projectile.Exploding
}

// Opposes reports whether f and o are on different sides
func (f *Fighter) Opposes(o *Fighter) bool {
	if f == o {
		return false
	}
	return f.Team == TeamNone || f.Team != o.Team
}

// HalfOdd is the parity correction used by tile probes on odd half-widths
func (f *Fighter) HalfOdd() int {
	return (f.Width / 2) & 1
}

// HeightOdd is the parity correction used by foot probes on odd heights
func (f *Fighter) HeightOdd() int {
	return f.Height & 1
}

// CenterX returns the horizontal center of the fighter box
func (f *Fighter) CenterX() int {
	return f.X + f.Width/2
}

// FootLine returns the y of the tile row the fighter's feet occupy
func (f *Fighter) FootLine() int {
	return f.Y + f.Height - 16 + f.HeightOdd()
}

// FootY returns the y just beneath the fighter box
func (f *Fighter) FootY() int {
	return f.Y + f.Height + f.HeightOdd()
}

// AddDamage raises percent by n, clamping negative damage to zero and
// saturating at MaxPercent.
func (f *Fighter) AddDamage(n int) int {
	if n < 0 {
		n = 0
	}
	f.Percent += n
	if f.Percent > MaxPercent {
		f.Percent = MaxPercent
	}
	f.DamageTaken += n
	return n
}

// Heal lowers percent by n without going below zero
func (f *Fighter) Heal(n int) {
	f.Percent -= n
	if f.Percent < 0 {
		f.Percent = 0
	}
}

// LaunchSpeed returns the vertical launch speed for the current percent
func (f *Fighter) LaunchSpeed() int {
	return (f.Percent/18)*2 + 2
}

// Release breaks any grab the fighter takes part in
func (f *Fighter) Release() {
	if f.Captive != nil {
		f.Captive.Clear(StatusHeld)
		f.Captive.Captor = nil
		f.Captive = nil
	}
	if f.Captor != nil {
		f.Captor.Clear(StatusGrabbing)
		f.Captor.Captive = nil
		f.Captor = nil
	}
	f.Clear(StatusGrabbing | StatusHeld)
}

// Collides reports whether the boxes of f and o overlap
func (f *Fighter) Collides(o *Fighter) bool {
	return !(f.X+f.Width-1 < o.X || f.X > o.X+o.Width-1 ||
		f.Y+f.Height-1 < o.Y || f.Y > o.Y+o.Height-1)
}

// CurrentFrame returns the frame for the current facing
func (f *Fighter) CurrentFrame() Frame {
	if f.Direction == Left {
		return f.FrameLeft
	}
	return f.FrameRight
}

// SetFrames sets both facing cursors to the same pose
func (f *Fighter) SetFrames(pose Pose) {
	f.FrameLeft = pose.Frame(Left)
	f.FrameRight = pose.Frame(Right)
}

// AdvanceRun steps the run cycle for the current facing
func (f *Fighter) AdvanceRun() {
	if f.Direction == Left {
		f.FrameLeft = f.FrameLeft.Next()
	} else {
		f.FrameRight = f.FrameRight.Next()
	}
}

// Distance2 returns the squared distance between box origins
func (f *Fighter) Distance2(o *Fighter) int {
	dx := f.X - o.X
	dy := f.Y - o.Y
	return dx*dx + dy*dy
}

// HorizontalGap returns the distance between box centers
func (f *Fighter) HorizontalGap(o *Fighter) int {
	return abs(f.CenterX() - o.CenterX())
}
