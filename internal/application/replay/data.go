package replay

import "github.com/younwookim/legion/internal/application/system"

// FormatVersion is written into every new replay file
const FormatVersion = "2.0"

// FrameInput records the fighting keys held during a single tick
type FrameInput struct {
	F int  `json:"f"`           // Tick number
	L bool `json:"l,omitempty"` // Left
	R bool `json:"r,omitempty"` // Right
	U bool `json:"u,omitempty"` // Up
	D bool `json:"d,omitempty"` // Down
	J bool `json:"j,omitempty"` // Jump
	A bool `json:"a,omitempty"` // Attack, also fires a held item
	S bool `json:"s,omitempty"` // Special
	G bool `json:"g,omitempty"` // Grab
	X bool `json:"x,omitempty"` // Dodge
}

// NewFrameInput packs the keys of tick f
func NewFrameInput(f int, in system.InputState) FrameInput {
	return FrameInput{
		F: f,
		L: in.Left,
		R: in.Right,
		U: in.Up,
		D: in.Down,
		J: in.Jump,
		A: in.Attack,
		S: in.Special,
		G: in.Grab,
		X: in.Dodge,
	}
}

// State unpacks the keys
func (fi FrameInput) State() system.InputState {
	return system.InputState{
		Left:    fi.L,
		Right:   fi.R,
		Up:      fi.U,
		Down:    fi.D,
		Jump:    fi.J,
		Attack:  fi.A,
		Special: fi.S,
		Grab:    fi.G,
		Dodge:   fi.X,
	}
}

// ReplayData contains all data needed to replay a match. The seed and match
// name rebuild the same match; the frames drive slot Slot.
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Stage     string       `json:"stage"`
	Match     string       `json:"match"`
	Slot      int          `json:"slot"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
