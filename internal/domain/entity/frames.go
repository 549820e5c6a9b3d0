package entity

// Frame is an animation frame identifier. Frames come in left/right pairs
// plus three direction-less poses.
type Frame int

const (
	FrameStandRight Frame = iota
	FrameBreatheRight
	FrameRun1Right
	FrameRun2Right
	FrameClimbRight
	FrameJumpUpRight
	FrameHurtRight
	FrameSmashRight
	FrameSkyRight
	FrameSpecialRight
	FrameStandLeft
	FrameBreatheLeft
	FrameRun1Left
	FrameRun2Left
	FrameClimbLeft
	FrameJumpUpLeft
	FrameHurtLeft
	FrameSmashLeft
	FrameSkyLeft
	FrameSpecialLeft
	FrameCrouch
	FrameTaunt1
	FrameTaunt2
	NumFrames
)

// frameNext is the run-cycle successor table
var frameNext = [NumFrames]Frame{
	FrameStandRight:   FrameRun1Right,
	FrameBreatheRight: FrameRun1Right,
	FrameRun1Right:    FrameRun2Right,
	FrameRun2Right:    FrameRun1Right,
	FrameClimbRight:   FrameRun1Right,
	FrameJumpUpRight:  FrameRun1Right,
	FrameHurtRight:    FrameRun1Right,
	FrameSmashRight:   FrameSmashRight,
	FrameSkyRight:     FrameSkyRight,
	FrameSpecialRight: FrameSpecialRight,
	FrameStandLeft:    FrameRun1Left,
	FrameBreatheLeft:  FrameRun1Left,
	FrameRun1Left:     FrameRun2Left,
	FrameRun2Left:     FrameRun1Left,
	FrameClimbLeft:    FrameRun1Left,
	FrameJumpUpLeft:   FrameRun1Left,
	FrameHurtLeft:     FrameRun1Left,
	FrameSmashLeft:    FrameSmashLeft,
	FrameSkyLeft:      FrameSkyLeft,
	FrameSpecialLeft:  FrameSpecialLeft,
	FrameCrouch:       FrameCrouch,
	FrameTaunt1:       FrameTaunt2,
	FrameTaunt2:       FrameTaunt1,
}

// Next returns the successor frame in the run cycle
func (f Frame) Next() Frame {
	if f < 0 || f >= NumFrames {
		return f
	}
	return frameNext[f]
}

// Facing returns the direction a frame is drawn for. Shared poses face right.
func (f Frame) Facing() Direction {
	if f >= FrameStandLeft && f <= FrameSpecialLeft {
		return Left
	}
	return Right
}

// Pose is a direction-independent animation pose
type Pose int

const (
	PoseStand Pose = iota
	PoseBreathe
	PoseRun1
	PoseRun2
	PoseClimb
	PoseJumpUp
	PoseHurt
	PoseSmash
	PoseSky
	PoseSpecial
	PoseCrouch
	PoseTaunt1
	PoseTaunt2
)

// Frame resolves a pose to the frame for a facing
func (p Pose) Frame(d Direction) Frame {
	switch p {
	case PoseCrouch:
		return FrameCrouch
	case PoseTaunt1:
		return FrameTaunt1
	case PoseTaunt2:
		return FrameTaunt2
	}
	if d == Left {
		return FrameStandLeft + Frame(p)
	}
	return FrameStandRight + Frame(p)
}
