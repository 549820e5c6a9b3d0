package link

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/younwookim/legion/internal/domain/entity"
)

// noRef marks an empty enemy or item slot in a snapshot
const noRef = -1

// Snapshot is the per-fighter record exchanged between linked machines
type Snapshot struct {
	Index      int    `msgpack:"i"`
	Character  int    `msgpack:"c"`
	Team       int    `msgpack:"t"`
	Controller int    `msgpack:"k"`
	X          int    `msgpack:"x"`
	Y          int    `msgpack:"y"`
	XSpeed     int    `msgpack:"xs"`
	YSpeed     int    `msgpack:"ys"`
	MoveSpeed  int    `msgpack:"ms"`
	JumpValue  int    `msgpack:"jv"`
	NumJumps   int    `msgpack:"nj"`
	Direction  int    `msgpack:"d"`
	Loco       int    `msgpack:"l"`
	Status     uint32 `msgpack:"s"`
	Power      int    `msgpack:"pw"`
	Size       int    `msgpack:"sz"`
	Percent    int    `msgpack:"p"`
	Lives      int    `msgpack:"lv"`
	Kills      int    `msgpack:"ki"`
	Deaths     int    `msgpack:"de"`
	Damage     int    `msgpack:"dt"`
	Counter    int    `msgpack:"ct"`
	Marker     int    `msgpack:"am"`
	FrameLeft  int    `msgpack:"fl"`
	FrameRight int    `msgpack:"fr"`
	Enemy      int    `msgpack:"e"`
	Item       int    `msgpack:"it"`

	Shot Shot `msgpack:"sh"`
}

// Shot is the projectile slot of a snapshot
type Shot struct {
	X         int  `msgpack:"x"`
	Y         int  `msgpack:"y"`
	Dir       int  `msgpack:"d"`
	Distance  int  `msgpack:"n"`
	Active    bool `msgpack:"a"`
	Exploding bool `msgpack:"e"`
	Tick      int  `msgpack:"t"`
}

// Packet carries the snapshots one machine owns for a tick
type Packet struct {
	Tick      int        `msgpack:"tick"`
	Snapshots []Snapshot `msgpack:"snaps"`
}

// Encode serializes a packet
func Encode(p *Packet) ([]byte, error) {
	data, err := msgpack.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode packet: %w", err)
	}
	return data, nil
}

// Decode parses a packet
func Decode(data []byte) (*Packet, error) {
	var p Packet
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode packet: %w", err)
	}
	return &p, nil
}

// Capture records fighter f sitting in slot index. The enemy reference is
// stored as a slot index into fighters.
func Capture(f *entity.Fighter, index int, fighters []*entity.Fighter) Snapshot {
	s := Snapshot{
		Index:      index,
		Character:  f.Character,
		Team:       int(f.Team),
		Controller: int(f.Controller),
		X:          f.X,
		Y:          f.Y,
		XSpeed:     f.XSpeed,
		YSpeed:     f.YSpeed,
		MoveSpeed:  f.MoveSpeed,
		JumpValue:  f.JumpValue,
		NumJumps:   f.NumJumps,
		Direction:  int(f.Direction),
		Loco:       int(f.Loco),
		Status:     uint32(f.Status),
		Power:      f.Power,
		Size:       f.Size,
		Percent:    f.Percent,
		Lives:      f.Lives,
		Kills:      f.Kills,
		Deaths:     f.Deaths,
		Damage:     f.DamageTaken,
		Counter:    f.Counter,
		Marker:     f.AttackMarker,
		FrameLeft:  int(f.FrameLeft),
		FrameRight: int(f.FrameRight),
		Enemy:      noRef,
		Item:       noRef,
		Shot: Shot{
			X:         f.Projectile.X,
			Y:         f.Projectile.Y,
			Dir:       int(f.Projectile.Dir),
			Distance:  f.Projectile.Distance,
			Active:    f.Projectile.Active,
			Exploding: f.Projectile.Exploding,
			Tick:      f.Projectile.Tick,
		},
	}
	for i, o := range fighters {
		if o == f.Enemy && o != nil {
			s.Enemy = i
			break
		}
	}
	if f.Item != nil {
		s.Item = int(f.Item.Kind)
	}
	return s
}

// Apply overwrites fighter f with a snapshot. The controller kind stays
// local since each machine decides who drives which slot.
func Apply(f *entity.Fighter, s Snapshot, fighters []*entity.Fighter) {
	f.Character = s.Character
	f.Team = entity.Team(s.Team)
	f.X, f.Y = s.X, s.Y
	f.XSpeed, f.YSpeed = s.XSpeed, s.YSpeed
	f.MoveSpeed = s.MoveSpeed
	f.JumpValue = s.JumpValue
	f.NumJumps = s.NumJumps
	f.Direction = entity.Direction(s.Direction)
	f.Loco = entity.Locomotion(s.Loco)
	f.Status = entity.Status(s.Status)
	f.Power = s.Power
	f.Size = s.Size
	f.Percent = s.Percent
	f.Lives = s.Lives
	f.Kills = s.Kills
	f.Deaths = s.Deaths
	f.DamageTaken = s.Damage
	f.Counter = s.Counter
	f.AttackMarker = s.Marker
	f.FrameLeft = entity.Frame(s.FrameLeft)
	f.FrameRight = entity.Frame(s.FrameRight)

	f.Projectile.X, f.Projectile.Y = s.Shot.X, s.Shot.Y
	f.Projectile.Dir = entity.Direction(s.Shot.Dir)
	f.Projectile.Distance = s.Shot.Distance
	f.Projectile.Active = s.Shot.Active
	f.Projectile.Exploding = s.Shot.Exploding
	f.Projectile.Tick = s.Shot.Tick

	f.Enemy = nil
	if s.Enemy >= 0 && s.Enemy < len(fighters) {
		f.Enemy = fighters[s.Enemy]
	}

	switch {
	case s.Item == noRef:
		f.Item = nil
	case f.Item == nil || int(f.Item.Kind) != s.Item:
		f.Item = &entity.Item{Kind: entity.ItemKind(s.Item), Held: true}
	}
}
