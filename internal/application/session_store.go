package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/bnema/seckill-cli/internal/domain"
	"github.com/bnema/seckill-cli/internal/ports"
)

const DefaultSessionKey = "sessions/default.json"

// SessionStore persists the single credential blob of this tool through a
// secret backend. It never touches the network.
type SessionStore struct {
	store ports.SecretStore
	key   string
	clock ports.Clock

	mu      sync.RWMutex
	current domain.Session
}

func NewSessionStore(store ports.SecretStore, key string, clock ports.Clock) *SessionStore {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultSessionKey
	}

	return &SessionStore{store: store, key: key, clock: clock}
}

// Load reads the persisted blob. A missing blob is not an error.
func (s *SessionStore) Load(ctx context.Context) (domain.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.Get(ctx, s.key)
	if err != nil {
		if isMissingSecret(err) {
			return domain.Session{}, false, nil
		}
		return domain.Session{}, false, fmt.Errorf("read session %q: %w", s.key, err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return domain.Session{}, false, fmt.Errorf("decode session %q: %w", s.key, err)
	}

	session = session.Live(s.clock.Now())
	s.current = session
	return session, true, nil
}

func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	if session.SavedAt.IsZero() {
		session.SavedAt = s.clock.Now()
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Put(ctx, s.key, string(payload)); err != nil {
		return fmt.Errorf("write session %q: %w", s.key, err)
	}
	s.current = session
	return nil
}

func (s *SessionStore) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *SessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, s.key); err != nil && !isMissingSecret(err) {
		return fmt.Errorf("delete session %q: %w", s.key, err)
	}
	s.current = domain.Session{}
	return nil
}

func isMissingSecret(err error) bool {
	return errors.Is(err, domain.ErrSecretNotFound) || errors.Is(err, os.ErrNotExist)
}
