package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"pminternship/internship-ai/internal/models"
	"pminternship/internship-ai/internal/navigation"
)

const maxSweepInterval = time.Minute

// SessionStore persists portal sessions. Get returns ErrSessionNotFound for
// unknown or expired ids.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

type memorySessionStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	sessions  map[string]memoryEntry
	nextSweep time.Time
	now       func() time.Time
}

// NewMemorySessionStore keeps sessions in process. Entries are stored
// encoded so callers never share a *Session. Expired entries are swept
// from Save at most once per min(ttl, one minute).
func NewMemorySessionStore(ttl time.Duration) SessionStore {
	return &memorySessionStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

// Get implements SessionStore.
func (m *memorySessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	m.mu.Lock()
	entry, ok := m.sessions[id]
	if ok && m.ttl > 0 && m.now().After(entry.expiresAt) {
		delete(m.sessions, id)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return decodeSession(entry.payload)
}

// Save implements SessionStore.
func (m *memorySessionStore) Save(ctx context.Context, session *models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.sweep(now)
	m.sessions[session.ID] = memoryEntry{payload: payload, expiresAt: now.Add(m.ttl)}
	return nil
}

// sweep drops expired entries. Callers hold m.mu.
func (m *memorySessionStore) sweep(now time.Time) {
	if m.ttl <= 0 || now.Before(m.nextSweep) {
		return
	}
	for id, entry := range m.sessions {
		if now.After(entry.expiresAt) {
			delete(m.sessions, id)
		}
	}
	m.nextSweep = now.Add(min(m.ttl, maxSweepInterval))
}

type redisSessionStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisSessionStore shares sessions between portal instances.
func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{rdb: rdb, ttl: ttl, prefix: "portal:session:"}
}

// Get implements SessionStore.
func (r *redisSessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	payload, err := r.rdb.Get(ctx, r.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return decodeSession(payload)
}

// Save implements SessionStore.
func (r *redisSessionStore) Save(ctx context.Context, session *models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, r.prefix+session.ID, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func decodeSession(payload []byte) (*models.Session, error) {
	var s models.Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	// a session from an incompatible release starts over
	if _, err := navigation.ParseView(string(s.Nav.View)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	if s.Saved == nil {
		s.Saved = models.SavedSet{}
	}
	return &s, nil
}
