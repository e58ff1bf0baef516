package auth

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ClaimsStore persists claims server-side keyed by an opaque session id.
// It backs the opaque token strategy; the core issuance and authorization
// logic is unaffected by the choice of store.
type ClaimsStore interface {
	Put(ctx context.Context, id string, claims Claims, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Claims, error)
	Delete(ctx context.Context, id string) error
}

const sessionKeyPrefix = "session:"

// RedisClaimsStore stores claims as JSON in Redis with a TTL matching the
// token validity window.
type RedisClaimsStore struct {
	client *redis.Client
}

// NewRedisClaimsStore wraps a connected client.
func NewRedisClaimsStore(client *redis.Client) *RedisClaimsStore {
	return &RedisClaimsStore{client: client}
}

func (s *RedisClaimsStore) Put(ctx context.Context, id string, claims Claims, ttl time.Duration) error {
	payload, err := json.Marshal(claims)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+id, payload, ttl).Err()
}

func (s *RedisClaimsStore) Get(ctx context.Context, id string) (*Claims, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (s *RedisClaimsStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKeyPrefix+id).Err()
}

// MemoryClaimsStore is an in-process store for tests and redis-less
// development. Entries past their deadline are treated as absent.
type MemoryClaimsStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	claims   Claims
	deadline time.Time
}

// NewMemoryClaimsStore builds an empty store. Pass nil for wall-clock time.
func NewMemoryClaimsStore(now func() time.Time) *MemoryClaimsStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryClaimsStore{entries: make(map[string]memoryEntry), now: now}
}

func (s *MemoryClaimsStore) Put(_ context.Context, id string, claims Claims, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry{claims: claims, deadline: s.now().Add(ttl)}
	return nil
}

func (s *MemoryClaimsStore) Get(_ context.Context, id string) (*Claims, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok || !s.now().Before(entry.deadline) {
		return nil, ErrTokenNotFound
	}
	claims := entry.claims
	return &claims, nil
}

func (s *MemoryClaimsStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
