// Package session manages embedded player sessions: one session per page
// surface, driven over REST while the surface stays connected via websocket.
package session

import (
	"errors"
	"log/slog"

	"github.com/tubebridge/server/internal/repository/session"
)

var (
	ErrSessionsLimitReached = errors.New("sessions limit reached")
	ErrNotAttached          = errors.New("no surface attached to session")
	ErrSurfaceBusy          = errors.New("session already has a surface attached")
	ErrNoPlayerResult       = errors.New("player reported no result")
)

type iSessionRepo interface {
	Add(*session.Session) error
	Remove(sessionID string) (*session.Session, error)
	Get(sessionID string) (*session.Session, error)
	Count() int
}

type Config struct {
	// SessionsLimit caps concurrently existing sessions.
	SessionsLimit int

	// OriginURL is handed to every player as the document base URL.
	OriginURL string
}

type service struct {
	sessionRepo iSessionRepo
	cfg         *Config
	logger      *slog.Logger
}

func NewService(sessionRepo iSessionRepo, cfg *Config, logger *slog.Logger) *service {
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		sessionRepo: sessionRepo,
		cfg:         cfg,
		logger:      logger,
	}
}
