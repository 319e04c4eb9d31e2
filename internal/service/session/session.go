package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tubebridge/server/internal/repository/session"
	"github.com/tubebridge/server/pkg/wsbridge"
	"github.com/tubebridge/server/pkg/ytplayer"
)

type CreateSessionResponse struct {
	SessionID string
}

func (s *service) CreateSession(ctx context.Context) (CreateSessionResponse, error) {
	if s.sessionRepo.Count() >= s.cfg.SessionsLimit {
		return CreateSessionResponse{}, ErrSessionsLimitReached
	}

	sess := session.NewSession(uuid.NewString())
	if err := s.sessionRepo.Add(sess); err != nil {
		return CreateSessionResponse{}, fmt.Errorf("failed to add session: %w", err)
	}

	s.logger.Info("session created", "sessionID", sess.ID)

	return CreateSessionResponse{SessionID: sess.ID}, nil
}

func (s *service) RemoveSession(ctx context.Context, sessionID string) error {
	if _, err := s.sessionRepo.Remove(sessionID); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}

	s.logger.Info("session removed", "sessionID", sessionID)

	return nil
}

func (s *service) Snapshot(ctx context.Context, sessionID string) (session.Snapshot, error) {
	sess, err := s.sessionRepo.Get(sessionID)
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("failed to get session: %w", err)
	}

	return sess.Snapshot(), nil
}

type AttachSurfaceParams struct {
	SessionID string
	Conn      *websocket.Conn
}

// AttachSurface builds the runtime for a freshly connected page surface: a
// websocket bridge and a player wired to the session snapshot. The returned
// bridge must be served by the caller; DetachSurface runs when it exits.
func (s *service) AttachSurface(ctx context.Context, params *AttachSurfaceParams) (*wsbridge.Bridge, error) {
	sess, err := s.sessionRepo.Get(params.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	bridge := wsbridge.New(params.Conn, s.logger)
	player := s.newPlayer(sess, bridge)

	if !sess.AttachPlayer(player) {
		return nil, ErrSurfaceBusy
	}

	bridge.OnNavigate(player.InterceptNavigation)
	bridge.OnLifecycle(func(event string) {
		s.handleLifecycle(sess, player, event)
	})

	s.logger.Info("surface attached", "sessionID", sess.ID)

	return bridge, nil
}

// newPlayer wires a player to the session snapshot so REST reads never cross
// into the surface goroutine.
func (s *service) newPlayer(sess *session.Session, surface ytplayer.Surface) *ytplayer.Player {
	return ytplayer.New(surface, &ytplayer.Config{
		OriginURL: s.cfg.OriginURL,
		Logger:    s.logger,
		Events: ytplayer.Events{
			OnReady: func() {
				s.logger.Info("player ready", "sessionID", sess.ID)
				sess.SetReady()
			},
			OnStateChange: func(state ytplayer.PlayerState) {
				s.logger.Info("player state changed", "sessionID", sess.ID, "state", state.String())
				sess.SetState(state)
			},
			OnQualityChange: func(quality ytplayer.PlaybackQuality) {
				s.logger.Info("playback quality changed", "sessionID", sess.ID, "quality", quality.String())
				sess.SetQuality(quality)
			},
		},
	})
}

func (s *service) DetachSurface(ctx context.Context, sessionID string) error {
	sess, err := s.sessionRepo.Get(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	sess.DetachPlayer()
	s.logger.Info("surface detached", "sessionID", sessionID)

	return nil
}

// handleLifecycle reacts to page visibility transitions. Returning to the
// foreground reissues the keep-alive audio element so the page's audio
// session survives platform backgrounding quirks.
func (s *service) handleLifecycle(sess *session.Session, player *ytplayer.Player, event string) {
	switch event {
	case "foreground":
		s.logger.Debug("surface foregrounded", "sessionID", sess.ID)
		player.RefreshAudioKeepalive()
	case "background":
		s.logger.Debug("surface backgrounded", "sessionID", sess.ID)
	default:
		s.logger.Debug("unknown lifecycle event", "sessionID", sess.ID, "event", event)
	}
}
