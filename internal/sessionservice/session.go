package sessionservice

import (
	"context"
	"errors"
	"time"
)

// DefaultTTL is the rolling session lifetime; every authenticated request
// resets the clock.
const DefaultTTL = 24 * time.Hour

var ErrSessionNotFound = errors.New("session not found")

// Session is the identity bound at login. The opaque cookie token is never
// stored; the store is keyed by its sha256 hash.
type Session struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Store is the server-side session backend. Implementations must treat keys
// as opaque and expire entries after their TTL.
type Store interface {
	Set(ctx context.Context, key string, session *Session, ttl time.Duration) error
	Get(ctx context.Context, key string) (*Session, error)
	Renew(ctx context.Context, key string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type SessionService struct {
	store Store
	ttl   time.Duration
}

func NewSessionService(store Store) *SessionService {
	return &SessionService{store: store, ttl: DefaultTTL}
}

// Create establishes a new session and returns the plaintext token to be
// carried by the cookie.
func (s *SessionService) Create(ctx context.Context, session *Session) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	if err := s.store.Set(ctx, hashToken(token), session, s.ttl); err != nil {
		return "", err
	}

	return token, nil
}

// Get looks up the session bound to the token and renews its expiry. A token
// with no server-side entry is invalid regardless of its content.
func (s *SessionService) Get(ctx context.Context, token string) (*Session, error) {
	key := hashToken(token)

	session, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := s.store.Renew(ctx, key, s.ttl); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return nil, err
	}

	return session, nil
}

// Destroy removes the session. Destroying an already-absent session is not an
// error.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	return s.store.Delete(ctx, hashToken(token))
}
