package inmemory

import (
	"log/slog"
	"sync"

	"github.com/tubebridge/server/internal/repository/session"
)

type repo struct {
	sessions map[string]*session.Session
	mu       sync.RWMutex
	logger   *slog.Logger
}

func NewRepo(logger *slog.Logger) *repo {
	if logger == nil {
		logger = slog.Default()
	}

	return &repo{
		sessions: make(map[string]*session.Session),
		logger:   logger,
	}
}

func (r *repo) Add(s *session.Session) error {
	funcName := "session.inmemory.Add"
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug(funcName, "sessionID", s.ID)
	if _, ok := r.sessions[s.ID]; ok {
		r.logger.Info(funcName, "error", session.ErrAlreadyExists)
		return session.ErrAlreadyExists
	}

	r.sessions[s.ID] = s

	return nil
}

func (r *repo) Remove(sessionID string) (*session.Session, error) {
	funcName := "session.inmemory.Remove"
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug(funcName, "sessionID", sessionID)
	s, ok := r.sessions[sessionID]
	if !ok {
		r.logger.Info(funcName, "error", session.ErrNotFound)
		return nil, session.ErrNotFound
	}

	delete(r.sessions, sessionID)

	return s, nil
}

func (r *repo) Get(sessionID string) (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, session.ErrNotFound
	}

	return s, nil
}

func (r *repo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
