package entity

// BossSize is the edge of a boss's square hit box
const BossSize = 32

// BossKind distinguishes the two cooperating bosses
type BossKind int

const (
	BossPrimary BossKind = iota
	BossSecondary
)

func (k BossKind) String() string {
	if k == BossSecondary {
		return "secondary"
	}
	return "primary"
}

// BossFrame is a boss animation frame
type BossFrame int

const (
	BossIdle BossFrame = iota
	BossHover
	BossHurt1
	BossHurt2
	BossFireSlam
	BossPrepGrab
	BossTryToCatch
	BossMiss
	BossHoldingFighter
	BossPalmSlap
	BossPunch
	BossSwatBackswing
	BossSwatFrontswing
	BossTeamClap
)

// BossAttackID selects one of the six attack routines. Zero means idle.
type BossAttackID int

const (
	AttackNone BossAttackID = iota
	AttackFireSlam
	AttackGrab
	AttackPalmSlap
	AttackPunch
	AttackSwat
	AttackTeamClap
)

func (a BossAttackID) String() string {
	switch a {
	case AttackNone:
		return "none"
	case AttackFireSlam:
		return "fire-slam"
	case AttackGrab:
		return "grab"
	case AttackPalmSlap:
		return "palm-slap"
	case AttackPunch:
		return "punch"
	case AttackSwat:
		return "swat"
	case AttackTeamClap:
		return "team-clap"
	default:
		return "unknown"
	}
}

// Boss home positions
const (
	PrimaryHomeX   = 104
	SecondaryHomeX = 16
	BossHomeY      = 24
)

// Boss is one of the two scripted opponents of a boss fight
type Boss struct {
	Kind      BossKind
	X, Y      int
	HitPoints int
	Attack    BossAttackID
	Frame     BossFrame
	Hovering  bool
	Holding   bool
	Dropping  bool
	Spastic   bool
	Dead      bool
	Marker    int
	Counter   int
}

// NewBoss creates a boss at its home position
func NewBoss(kind BossKind, hp int) *Boss {
	b := &Boss{Kind: kind, HitPoints: hp, Y: BossHomeY}
	b.X = b.HomeX()
	return b
}

// HomeX returns the x the boss drifts back toward between attacks
func (b *Boss) HomeX() int {
	if b.Kind == BossSecondary {
		return SecondaryHomeX
	}
	return PrimaryHomeX
}

// Alive reports whether the boss still takes part in the fight
func (b *Boss) Alive() bool {
	return b != nil && !b.Dead
}

// TakeHit lowers hit points by n, stopping at zero
func (b *Boss) TakeHit(n int) {
	b.HitPoints -= n
	if b.HitPoints < 0 {
		b.HitPoints = 0
	}
}

// EndAttack returns the boss to idle
func (b *Boss) EndAttack() {
	b.Attack = AttackNone
	b.Dropping = false
	b.Holding = false
}

// Collides reports whether a fighter's box overlaps the boss box
func (b *Boss) Collides(f *Fighter) bool {
	return !(f.X+f.Width-1 < b.X || f.X > b.X+BossSize-1 ||
		f.Y > b.Y+BossSize-1 || f.Y+f.Height-1 < b.Y)
}
