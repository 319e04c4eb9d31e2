package session

import (
	"sync"
	"time"

	"github.com/tubebridge/server/pkg/ytplayer"
)

// Snapshot is the host-side view of one player, maintained from observer
// callbacks so REST reads never touch player internals across goroutines.
type Snapshot struct {
	State       ytplayer.PlayerState
	Quality     ytplayer.PlaybackQuality
	Ready       bool
	LastEventAt time.Time
}

// Session is one embedded player slot. The runtime (player plus surface) is
// attached when the page client connects and detached when it goes away.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.RWMutex
	player   *ytplayer.Player
	snapshot Snapshot
}

func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		snapshot: Snapshot{
			State:   ytplayer.StateUnstarted,
			Quality: ytplayer.QualitySmall,
		},
	}
}

// AttachPlayer installs the runtime. Only one surface may drive a session at
// a time.
func (s *Session) AttachPlayer(player *ytplayer.Player) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player != nil {
		return false
	}
	s.player = player

	return true
}

func (s *Session) DetachPlayer() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.player = nil
}

// Player reports the attached runtime, or false when no surface is
// connected.
func (s *Session) Player() (*ytplayer.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.player, s.player != nil
}

func (s *Session) SetState(state ytplayer.PlayerState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.State = state
	s.snapshot.LastEventAt = time.Now()
}

func (s *Session) SetQuality(quality ytplayer.PlaybackQuality) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Quality = quality
	s.snapshot.LastEventAt = time.Now()
}

func (s *Session) SetReady() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Ready = true
	s.snapshot.LastEventAt = time.Now()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot
}
