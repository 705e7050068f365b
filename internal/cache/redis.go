package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/domain"
)

// releaseLock deletes the lock only while it still holds the caller's token,
// so a holder whose TTL ran out cannot free a lock someone else now owns.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisCache struct {
	client     *redis.Client
	sessionTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, sessionTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		sessionTTL: sessionTTL,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// GetSession returns nil, nil when the session expired or never existed.
func (c *RedisCache) GetSession(ctx context.Context, id string) (*domain.SearchSession, error) {
	data, err := c.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var session domain.SearchSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

// SaveSession rewrites the whole session and restarts its TTL.
func (c *RedisCache) SaveSession(ctx context.Context, session *domain.SearchSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, sessionKey(session.ID), payload, c.sessionTTL).Err()
}

// AcquireSessionLock stores token as the lock value; the same token must be
// passed to ReleaseSessionLock.
func (c *RedisCache) AcquireSessionLock(ctx context.Context, id, token string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, sessionLockKey(id), token, ttl).Result()
}

func (c *RedisCache) ReleaseSessionLock(ctx context.Context, id, token string) error {
	return releaseLock.Run(ctx, c.client, []string{sessionLockKey(id)}, token).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func sessionKey(id string) string {
	return "cache:search:" + id
}

func sessionLockKey(id string) string {
	return fmt.Sprintf("lock:search:%s", id)
}
