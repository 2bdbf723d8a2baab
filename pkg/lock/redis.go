package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "lock:partition:"

// deletes the key only while the holder's token is still in place
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisManager is a Manager for deployments where several instances share the
// booking store. The lock is a SetNX key with a TTL so a crashed holder
// cannot wedge its partition forever; waiters poll until ctx is done.
type RedisManager struct {
	client        *redis.Client
	ttl           time.Duration
	retryInterval time.Duration
}

func NewRedisManager(client *redis.Client, ttl time.Duration) *RedisManager {
	return &RedisManager{
		client:        client,
		ttl:           ttl,
		retryInterval: 25 * time.Millisecond,
	}
}

func (m *RedisManager) Acquire(ctx context.Context, key string) (func(), error) {
	rkey := lockKeyPrefix + key
	token := uuid.NewString()

	for {
		ok, err := m.client.SetNX(ctx, rkey, token, m.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ErrNotAcquired
			}
			return nil, err
		}
		if ok {
			return func() {
				relCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				_, _ = releaseScript.Run(relCtx, m.client, []string{rkey}, token).Result()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ErrNotAcquired
		case <-time.After(m.retryInterval):
		}
	}
}

var _ Manager = (*RedisManager)(nil)
