package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Domenick1991/flightdesk/internal/domain"
)

// MemoryCache keeps sessions in process memory when Redis is not configured.
// Sessions are stored encoded so callers never share offer slices.
type MemoryCache struct {
	mu         sync.Mutex
	sessionTTL time.Duration
	sessions   map[string]memoryEntry
	locks      map[string]memoryLock
	now        func() time.Time
}

type memoryLock struct {
	token string
	until time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryCache(sessionTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		sessionTTL: sessionTTL,
		sessions:   make(map[string]memoryEntry),
		locks:      make(map[string]memoryLock),
		now:        time.Now,
	}
}

func (c *MemoryCache) GetSession(ctx context.Context, id string) (*domain.SearchSession, error) {
	c.mu.Lock()
	entry, ok := c.sessions[id]
	if ok && !c.now().Before(entry.expiresAt) {
		delete(c.sessions, id)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return nil, nil
	}

	var session domain.SearchSession
	if err := json.Unmarshal(entry.data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *MemoryCache) SaveSession(ctx context.Context, session *domain.SearchSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[session.ID] = memoryEntry{data: data, expiresAt: c.now().Add(c.sessionTTL)}
	return nil
}

func (c *MemoryCache) AcquireSessionLock(ctx context.Context, id, token string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l, held := c.locks[id]; held && c.now().Before(l.until) {
		return false, nil
	}
	c.locks[id] = memoryLock{token: token, until: c.now().Add(ttl)}
	return true, nil
}

// ReleaseSessionLock is a no-op unless token still owns the lock.
func (c *MemoryCache) ReleaseSessionLock(ctx context.Context, id, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l, held := c.locks[id]; held && l.token == token {
		delete(c.locks, id)
	}
	return nil
}
