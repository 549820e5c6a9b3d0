package config

// RulesConfig is the root config for rules.json
type RulesConfig struct {
	Display DisplayConfig `json:"display"`
	Physics PhysicsConfig `json:"physics"`
	Combat  CombatConfig  `json:"combat"`
	Clock   ClockConfig   `json:"clock"`
	Link    LinkConfig    `json:"link"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
	ViewWidth    int `json:"viewWidth"`  // camera window (world units)
	ViewHeight   int `json:"viewHeight"` // camera window (world units)
}

// PhysicsConfig holds movement constants in world units per tick
type PhysicsConfig struct {
	JumpValue         int `json:"jumpValue"` // rise budget of one jump
	JumpSpeed         int `json:"jumpSpeed"`
	WalkSpeed         int `json:"walkSpeed"`
	RunSpeed          int `json:"runSpeed"`
	FallSpeed         int `json:"fallSpeed"`
	WaterDrag         int `json:"waterDrag"`
	ClimbSpeed        int `json:"climbSpeed"`
	DodgeDistance     int `json:"dodgeDistance"`
	CollapseThreshold int `json:"collapseThreshold"` // ticks of contact before a collapsing tile gives way
}

// CombatConfig holds attack and status timings in ticks
type CombatConfig struct {
	AttackAnimDelay int `json:"attackAnimDelay"`
	GrabHoldTicks   int `json:"grabHoldTicks"`
	EscapeTicks     int `json:"escapeTicks"` // hold time before an AI captive breaks free
	MissileTicks    int `json:"missileTicks"`
	EntryTicks      int `json:"entryTicks"` // respawn-platform invulnerability
	DeathTicks      int `json:"deathTicks"`
	CloakTicks      int `json:"cloakTicks"`
	MetalTicks      int `json:"metalTicks"`
	InvincibleTicks int `json:"invincibleTicks"`
	HitstopFrames   int `json:"hitstopFrames"`
}

// ClockConfig configures the match clock and item spawner
type ClockConfig struct {
	StepsPerSecond int `json:"stepsPerSecond"`
	TicksPerStep   int `json:"ticksPerStep"` // simulation ticks per clock step in synchronous mode
	MaxItems       int `json:"maxItems"`
}

// LinkConfig configures the two-machine link transport
type LinkConfig struct {
	Addr string `json:"addr"`
	Path string `json:"path"`
}

// DefaultRules returns the stock rule set
func DefaultRules() *RulesConfig {
	return &RulesConfig{
		Display: DisplayConfig{
			ScreenWidth:  320,
			ScreenHeight: 200,
			Scale:        3,
			Framerate:    60,
			ViewWidth:    160,
			ViewHeight:   100,
		},
		Physics: PhysicsConfig{
			JumpValue:         36,
			JumpSpeed:         2,
			WalkSpeed:         2,
			RunSpeed:          4,
			FallSpeed:         2,
			WaterDrag:         2,
			ClimbSpeed:        2,
			DodgeDistance:     32,
			CollapseThreshold: 250,
		},
		Combat: CombatConfig{
			AttackAnimDelay: 8,
			GrabHoldTicks:   50,
			EscapeTicks:     32,
			MissileTicks:    15,
			EntryTicks:      30,
			DeathTicks:      16,
			CloakTicks:      80,
			MetalTicks:      300,
			InvincibleTicks: 60,
			HitstopFrames:   3,
		},
		Clock: ClockConfig{
			StepsPerSecond: 20,
			TicksPerStep:   3,
			MaxItems:       16,
		},
		Link: LinkConfig{
			Addr: ":7777",
			Path: "/link",
		},
	}
}
