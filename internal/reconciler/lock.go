package reconciler

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLock is a best-effort leader lock for the sweep, built on SET NX with
// a TTL. Losing the lock mid-sweep is harmless - the sweep is idempotent and
// only tightens - so there is no fencing; the TTL just keeps a crashed
// instance from blocking sweeps forever.
type RedisLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	token  string
}

// NewRedisLock constructs a sweep lock. ttl should comfortably exceed one
// sweep duration.
func NewRedisLock(client *redis.Client, key string, ttl time.Duration) *RedisLock {
	return &RedisLock{
		client: client,
		key:    key,
		ttl:    ttl,
		token:  fmt.Sprintf("%d", time.Now().UnixNano()),
	}
}

func (l *RedisLock) TryAcquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire sweep lock: %w", err)
	}
	return ok, nil
}

// Release deletes the lock only if this instance still holds it.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	end
	return 0
`)

func (l *RedisLock) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("release sweep lock: %w", err)
	}
	return nil
}
