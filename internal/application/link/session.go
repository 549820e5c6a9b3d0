package link

import (
	"log"

	"github.com/younwookim/legion/internal/application/system"
)

// Role says which side of the link a machine is on
type Role int

const (
	RoleHost Role = iota
	RoleJoin
)

func (r Role) String() string {
	if r == RoleJoin {
		return "join"
	}
	return "host"
}

// Session mirrors a match across a link. The host simulates every fighter
// but the remote one; the joining side simulates only its own.
type Session struct {
	t     Transport
	m     *system.Match
	role  Role
	owned []bool

	sent     int
	received int
	lastTick int
}

// NewHostSession hands slot remote to the peer
func NewHostSession(t Transport, m *system.Match, remote int) *Session {
	s := &Session{t: t, m: m, role: RoleHost, owned: make([]bool, len(m.Fighters()))}
	for i := range s.owned {
		s.owned[i] = i != remote
	}
	m.SetController(remote, system.RemoteController{})
	return s
}

// NewJoinSession keeps slot local and mirrors everyone else from the host
func NewJoinSession(t Transport, m *system.Match, local int) *Session {
	s := &Session{t: t, m: m, role: RoleJoin, owned: make([]bool, len(m.Fighters()))}
	for i := range s.owned {
		s.owned[i] = i == local
		if i != local {
			m.SetController(i, system.RemoteController{})
		}
	}
	return s
}

// Role returns the side of this session
func (s *Session) Role() Role { return s.role }

// Owns reports whether slot i is simulated locally
func (s *Session) Owns(i int) bool {
	return i >= 0 && i < len(s.owned) && s.owned[i]
}

// Stats returns the number of packets sent and applied
func (s *Session) Stats() (sent, received int) {
	return s.sent, s.received
}

// Exchange sends the local fighters and applies every pending remote packet.
// Call it once per tick after the match has stepped.
func (s *Session) Exchange() error {
	fighters := s.m.Fighters()
	p := &Packet{Tick: s.m.Ticks()}
	for i, f := range fighters {
		if s.owned[i] {
			p.Snapshots = append(p.Snapshots, Capture(f, i, fighters))
		}
	}

	data, err := Encode(p)
	if err != nil {
		return err
	}
	if err := s.t.Send(data); err != nil {
		return err
	}
	s.sent++

	for {
		data, ok := s.t.Receive()
		if !ok {
			return nil
		}
		in, err := Decode(data)
		if err != nil {
			log.Printf("[Link] dropping packet: %v", err)
			continue
		}
		s.apply(in)
	}
}

func (s *Session) apply(p *Packet) {
	fighters := s.m.Fighters()
	for _, snap := range p.Snapshots {
		// the peer never overrides a slot simulated here
		if snap.Index < 0 || snap.Index >= len(fighters) || s.owned[snap.Index] {
			continue
		}
		Apply(fighters[snap.Index], snap, fighters)
	}
	s.lastTick = p.Tick
	s.received++
}

// PeerTick returns the tick of the last applied packet
func (s *Session) PeerTick() int {
	return s.lastTick
}

// Close ends the link
func (s *Session) Close() error {
	return s.t.Close()
}
