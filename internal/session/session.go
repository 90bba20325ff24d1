// Package session implements the sign-in lifecycle: a session is acquired at
// login, resolved from its bearer token on every protected request, and
// invalidated at logout.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"klinik-sentosa-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrSessionNotFound is returned for unknown, expired or invalidated sessions.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidToken is returned when a bearer token fails verification.
	ErrInvalidToken = errors.New("invalid session token")
)

// Session is an authenticated identity for the lifetime of a sign-in.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store persists sessions by id.
type Store interface {
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Manager issues and verifies session tokens.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewManager(store Store, secret string, ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Acquire starts a session for user and returns its bearer token.
func (m *Manager) Acquire(ctx context.Context, user *models.User) (string, *Session, error) {
	issued := m.now()
	s := &Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Email:     user.Email,
		IssuedAt:  issued,
		ExpiresAt: issued.Add(m.ttl),
	}

	token, err := signToken(s, m.secret)
	if err != nil {
		return "", nil, err
	}
	if err := m.store.Save(ctx, s, m.ttl); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}

	m.logger.Debug("session acquired", zap.String("session_id", s.ID), zap.String("user_id", s.UserID))
	return token, s, nil
}

// Resolve verifies the token and loads the live session it names.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := parseToken(token, m.secret)
	if err != nil {
		return nil, err
	}

	s, err := m.store.Load(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if s.UserID != claims.UserID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Invalidate ends the session. Invalidating twice is not an error.
func (m *Manager) Invalidate(ctx context.Context, s *Session) error {
	if s == nil {
		return nil
	}
	if err := m.store.Delete(ctx, s.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	m.logger.Debug("session invalidated", zap.String("session_id", s.ID))
	return nil
}
