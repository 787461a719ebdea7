package sweeper

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Locker elects one replica per sweep tick.
type Locker interface {
	// TryLock returns ok=false when another holder owns name.
	TryLock(ctx context.Context, name string, ttl time.Duration) (release func(), ok bool, err error)
}

// NoopLocker always grants the lock. Used for single-replica deployments.
type NoopLocker struct{}

func (NoopLocker) TryLock(context.Context, string, time.Duration) (func(), bool, error) {
	return func() {}, true, nil
}

var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
  return redis.call('DEL', KEYS[1])
end
return 0
`)

// RedisLocker takes a SETNX lock that expires after ttl. Release only
// deletes the key while this locker still owns it.
type RedisLocker struct {
	client redis.Cmdable
	owner  string
}

func NewRedisLocker(client redis.Cmdable) *RedisLocker {
	return &RedisLocker{client: client, owner: uuid.NewString()}
}

func (l *RedisLocker) TryLock(ctx context.Context, name string, ttl time.Duration) (func(), bool, error) {
	key := "lock:" + name
	ok, err := l.client.SetNX(ctx, key, l.owner, ttl).Result()
	if err != nil || !ok {
		return func() {}, false, err
	}
	release := func() {
		_ = releaseScript.Run(context.Background(), l.client, []string{key}, l.owner).Err()
	}
	return release, true, nil
}
