package dialogue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps conversation state in Redis with a per-key idle TTL,
// so state survives process restarts and can be shared by replicas.
//
// Lock is still a process-local mutex: it serializes turns from the same
// user hitting the same instance, which is where the double-send race
// actually appears. Cross-instance serialization would need a distributed
// lock and is out of scope for a single webhook deployment.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to Redis at the given URL and verifies the
// connection before returning.
func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{
		client: client,
		ttl:    ttl,
		locks:  make(map[string]*sync.Mutex),
	}, nil
}

func (s *RedisStore) key(userID string) string {
	return "conv:" + userID
}

// Lock serializes turns for a single user on this instance.
func (s *RedisStore) Lock(userID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// Get loads the user's conversation state. A missing or expired key
// yields a fresh idle manager, never an error.
func (s *RedisStore) Get(ctx context.Context, userID string) (*Manager, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Result()
	if err == redis.Nil {
		return NewManager(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load conversation %s: %w", userID, err)
	}

	var m Manager
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		// Corrupt state is unrecoverable; start the user over rather
		// than failing every subsequent turn.
		return NewManager(), nil
	}
	if m.FilledSlots == nil {
		m.FilledSlots = make(map[string]string)
	}
	return &m, nil
}

// Put saves the state and refreshes the idle TTL.
func (s *RedisStore) Put(ctx context.Context, userID string, m *Manager) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal conversation %s: %w", userID, err)
	}
	if err := s.client.Set(ctx, s.key(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save conversation %s: %w", userID, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping reports whether the Redis connection is alive.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
