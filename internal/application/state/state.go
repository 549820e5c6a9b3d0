package state

import "github.com/younwookim/legion/internal/application/system"

// Phase is the stage a match is in as seen by the front end
type Phase int

const (
	PhaseReady Phase = iota
	PhaseFighting
	PhaseSuddenDeath
	PhasePaused
	PhaseFinished
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "Ready"
	case PhaseFighting:
		return "Fighting"
	case PhaseSuddenDeath:
		return "SuddenDeath"
	case PhasePaused:
		return "Paused"
	case PhaseFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Running reports whether the match ticks in this phase
func (p Phase) Running() bool {
	return p == PhaseFighting || p == PhaseSuddenDeath
}

// Of derives the phase of a match. counting is true while the pre-fight
// countdown runs.
func Of(m *system.Match, counting, paused bool) Phase {
	switch {
	case m.Finished():
		return PhaseFinished
	case paused:
		return PhasePaused
	case counting:
		return PhaseReady
	case m.SuddenDeath():
		return PhaseSuddenDeath
	default:
		return PhaseFighting
	}
}
