package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"github.com/tokopos/checkout-api/internal/config"
	"github.com/tokopos/checkout-api/internal/domain/checkout"
	"github.com/tokopos/checkout-api/pkg/apperror"
)

// Session is one cashier's checkout session. It owns the session's
// checkout state and the session context: the opaque backend credential
// and the caller's role. No state crosses session boundaries.
type Session struct {
	ID         uuid.UUID
	Role       string
	Credential string

	mu         sync.Mutex
	state      checkout.State
	submitting bool
	lastSeen   time.Time
}

// SessionService is the in-memory registry of active checkout sessions.
// Sessions idle past the TTL are swept by a background loop.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	logger   *zap.Logger
}

// NewSessionService creates the registry and starts the TTL sweep.
func NewSessionService(cfg *config.SessionConfig, logger *zap.Logger) *SessionService {
	s := &SessionService{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      cfg.TTL,
		logger:   logger,
	}
	go s.cleanupLoop(cfg.CleanupInterval)
	return s
}

// Create registers a new session holding the caller's credential and role.
func (s *SessionService) Create(credential, role string) *Session {
	sess := &Session{
		ID:         uuid.New(),
		Role:       role,
		Credential: credential,
		state:      checkout.NewState(),
		lastSeen:   time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("checkout session created",
		zap.String("session_id", sess.ID.String()),
		zap.String("role", role))
	return sess
}

// Get returns an active session and refreshes its last-seen time.
func (s *SessionService) Get(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	sess.mu.Lock()
	sess.lastSeen = time.Now()
	sess.mu.Unlock()
	return sess, nil
}

// Delete removes a session. Absent sessions are a no-op.
func (s *SessionService) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *SessionService) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		s.cleanup()
	}
}

func (s *SessionService) cleanup() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.mu.Lock()
		stale := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if stale {
			delete(s.sessions, id)
			s.logger.Info("checkout session expired", zap.String("session_id", id.String()))
		}
	}
}
