package billing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisEventLog keeps processed event ids in Redis with a TTL, shared by all replicas.
type RedisEventLog struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
}

func NewRedisEventLog(client redis.UniversalClient, cfg EventLogConfig) *RedisEventLog {
	return &RedisEventLog{client: client, ttl: cfg.TTL, prefix: cfg.KeyPrefix}
}

func (l *RedisEventLog) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := l.client.Exists(ctx, l.prefix+eventID).Result()
	if err != nil {
		return false, fmt.Errorf("check event %s: %w", eventID, err)
	}
	return n > 0, nil
}

func (l *RedisEventLog) Mark(ctx context.Context, eventID string) error {
	if err := l.client.SetNX(ctx, l.prefix+eventID, time.Now().UTC().Unix(), l.ttl).Err(); err != nil {
		return fmt.Errorf("mark event %s: %w", eventID, err)
	}
	return nil
}

// MemoryEventLog is the single-process EventLog.
type MemoryEventLog struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	seen map[string]time.Time
}

func NewMemoryEventLog(ttl time.Duration) *MemoryEventLog {
	return &MemoryEventLog{ttl: ttl, now: time.Now, seen: make(map[string]time.Time)}
}

func (l *MemoryEventLog) Seen(_ context.Context, eventID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	at, ok := l.seen[eventID]
	if !ok {
		return false, nil
	}
	if l.ttl > 0 && l.now().Sub(at) > l.ttl {
		delete(l.seen, eventID)
		return false, nil
	}
	return true, nil
}

func (l *MemoryEventLog) Mark(_ context.Context, eventID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if l.ttl > 0 {
		for id, at := range l.seen {
			if now.Sub(at) > l.ttl {
				delete(l.seen, id)
			}
		}
	}
	l.seen[eventID] = now
	return nil
}
