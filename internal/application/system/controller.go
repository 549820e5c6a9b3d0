package system

import (
	"github.com/younwookim/legion/internal/domain/entity"
)

// Controller decides a fighter's actions for one tick
type Controller interface {
	Control(m *Match, f *entity.Fighter)
}

// EntryController is implemented by controllers that can leave the
// respawn platform early
type EntryController interface {
	WantsEntry(f *entity.Fighter) bool
}

// Double-jump windows: a second jump is accepted while the first one has
// less than this much rise left
const (
	humanJumpWindow = 16
	aiJumpWindow    = 4
)

// HumanController drives a fighter from the keys fed to it each frame
type HumanController struct {
	input InputState

	// latches that require a key to be released before it fires again
	attackHeld  bool
	specialHeld bool
	grabHeld    bool
	dodgeHeld   bool
}

// NewHumanController creates a controller with no keys held
func NewHumanController() *HumanController {
	return &HumanController{}
}

// SetInput sets the keys for the next tick
func (c *HumanController) SetInput(in InputState) {
	c.input = in
}

// Input returns the keys of the current tick
func (c *HumanController) Input() InputState {
	return c.input
}

// WantsEntry reports whether any key is held
func (c *HumanController) WantsEntry(f *entity.Fighter) bool {
	return c.input.Any()
}

// Control runs one tick of a keyboard-driven fighter
func (c *HumanController) Control(m *Match, f *entity.Fighter) {
	ph, cb, t := m.physics, m.combat, m.terrain
	in := c.input

	m.beginTick(f)
	if f.Enemy == nil && m.bosses == nil {
		f.Enemy = m.closestEnemy(f)
	}
	if ph.UpdateParalysis(f, ParalysisFloorHuman) {
		return
	}

	ph.StepJump(f)
	ph.CheckFalling(f)
	if !t.CanFall(f) {
		f.NumJumps = 0
		f.Clear(entity.StatusSky)
	}
	if f.Loco == entity.Falling && (!t.CanMove(f, 1, 0) || !t.CanMove(f, -1, 0)) {
		f.Loco = entity.Hanging
	}

	held := f.Is(entity.StatusHeld)
	if in.Jump && f.NumJumps == 0 && !held {
		ph.StartJump(f)
		f.NumJumps = 1
	}

	if f.Loco != entity.Running || f.Landing {
		f.MoveSpeed = m.rules.Physics.WalkSpeed
	}
	if f.Loco == entity.Running {
		f.Loco = entity.Standing
	}

	if !f.Landing {
		if in.Left {
			c.lateral(m, f, entity.Left, held)
		}
		if in.Right {
			c.lateral(m, f, entity.Right, held)
		}
	}
	if !in.Dodge {
		c.dodgeHeld = false
	}

	attackPressed := in.Attack && !c.attackHeld
	if in.Attack && held {
		c.struggle(m, f)
	}
	if f.Item == nil {
		m.items.PickUp(f)
	} else if attackPressed {
		m.items.Use(f)
	}
	if attackPressed && !f.IsAny(entity.StatusSmash|entity.StatusSpecial|entity.StatusHeld) {
		cb.Smash(f)
	}
	c.attackHeld = in.Attack

	if in.Special && !held {
		if !f.IsAny(entity.StatusSmash|entity.StatusSpecial) && !c.specialHeld {
			cb.Special(f)
		}
		c.specialHeld = true
	} else {
		c.specialHeld = false
	}

	if in.Up && !held {
		c.up(m, f)
	}

	if in.Down && !held {
		if f.Loco == entity.Hanging {
			f.Loco = entity.Standing
		}
		ph.ClimbDown(f)
		if f.Loco == entity.Falling {
			cb.SkyAttack(f)
		}
		ph.DropThroughCloud(f, true)
		if !t.CanFall(f) && f.Loco != entity.Climbing {
			f.Loco = entity.Crouching
		}
	} else if f.Loco == entity.Crouching {
		f.Loco = entity.Standing
	}

	if in.Grab && !held {
		if !c.grabHeld && !f.Is(entity.StatusGrabbing) {
			cb.Grab(f, m.fighters)
		}
		c.grabHeld = true
	} else if !in.Grab {
		c.grabHeld = false
	}

	cb.ExpireGrab(f, m.rules.Combat.GrabHoldTicks)
	ph.UpdateFrames(f)
	f.Counter++
}

// lateral handles a held direction key: a throw when grabbing, then a dodge
// or a walk
func (c *HumanController) lateral(m *Match, f *entity.Fighter, dir entity.Direction, held bool) {
	if f.Is(entity.StatusGrabbing) && m.bosses == nil {
		m.combat.Throw(f, int(dir)*4)
	}
	if c.input.Dodge {
		if !c.dodgeHeld && !held {
			m.physics.Dodge(f, dir)
			c.dodgeHeld = true
			f.Direction = f.Direction.Flip()
		}
		return
	}
	if !held {
		m.physics.Move(f, dir)
	}
}

// struggle shortens the hold on a captive fighter
func (c *HumanController) struggle(m *Match, f *entity.Fighter) {
	if m.bosses != nil {
		for _, h := range m.bosses.Bosses() {
			h.Marker -= 2
		}
		return
	}
	if f.Captor != nil {
		f.Captor.AttackMarker -= 2
	}
}

// up climbs, leaves a ledge, double jumps or taunts
func (c *HumanController) up(m *Match, f *entity.Fighter) {
	ph := m.physics
	if f.Loco == entity.Crouching {
		f.Loco = entity.Standing
	}
	ph.ClimbUp(f)
	if f.Loco == entity.Hanging {
		ph.StartJump(f)
	}
	ph.DoubleJump(f, humanJumpWindow)

	switch f.Loco {
	case entity.Falling, entity.Climbing, entity.Hanging:
		return
	}
	if f.JumpValue == 0 {
		f.Direction = entity.Right
		f.Set(entity.StatusTaunting)
		f.AttackMarker = f.Counter
		f.FrameRight = entity.FrameTaunt1
	}
}

// RemoteController leaves the fighter alone. Its state arrives through
// link snapshots.
type RemoteController struct{}

// Control does nothing
func (RemoteController) Control(m *Match, f *entity.Fighter) {}
