package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
)

// PositionAllocator hands out the next queue position for a (barber, date).
// Positions are strictly increasing and never reused.
type PositionAllocator interface {
	Next(ctx context.Context, tx booking.QueueRepository, key booking.QueueKey) (int, error)
}

// StoreAllocator derives the next position from the stored maximum. It is
// only correct while the caller holds the queue lock.
type StoreAllocator struct{}

func (StoreAllocator) Next(ctx context.Context, tx booking.QueueRepository, key booking.QueueKey) (int, error) {
	highest, err := tx.MaxPosition(ctx, key.BarberID, key.Date)
	if err != nil {
		return 0, fmt.Errorf("max position: %w", err)
	}
	return highest + 1, nil
}

const DefaultPositionTTL = 48 * time.Hour

// nextPosition increments the counter, first lifting it to the stored
// maximum so a fresh or evicted key never hands out a used position.
var nextPosition = redis.NewScript(`
local cur = tonumber(redis.call('GET', KEYS[1]) or '0')
local floor = tonumber(ARGV[1])
if cur < floor then
  redis.call('SET', KEYS[1], floor)
end
local n = redis.call('INCR', KEYS[1])
redis.call('PEXPIRE', KEYS[1], ARGV[2])
return n
`)

// RedisAllocator keeps one atomic counter per queue in Redis, seeded from
// the store maximum. A rolled-back enqueue leaves a gap.
type RedisAllocator struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisAllocator(client redis.Cmdable, ttl time.Duration) *RedisAllocator {
	if ttl <= 0 {
		ttl = DefaultPositionTTL
	}
	return &RedisAllocator{client: client, ttl: ttl}
}

func PositionKey(key booking.QueueKey) string {
	return fmt.Sprintf("queue:pos:%d:%s", key.BarberID, key.Date)
}

func (a *RedisAllocator) Next(ctx context.Context, tx booking.QueueRepository, key booking.QueueKey) (int, error) {
	highest, err := tx.MaxPosition(ctx, key.BarberID, key.Date)
	if err != nil {
		return 0, fmt.Errorf("max position: %w", err)
	}
	n, err := nextPosition.Run(ctx, a.client, []string{PositionKey(key)}, highest, a.ttl.Milliseconds()).Int()
	if err != nil {
		return 0, fmt.Errorf("redis position: %w", err)
	}
	return n, nil
}
