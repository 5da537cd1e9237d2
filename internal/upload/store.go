package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store persists flow snapshots so any instance can answer status polls.
// Get returns nil without error when the user has no flow.
type Store interface {
	Get(ctx context.Context, userID uuid.UUID) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func flowKey(userID uuid.UUID) string {
	return "upload-flow:" + userID.String()
}

func (s *redisStore) Get(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	raw, err := s.client.Get(ctx, flowKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read upload flow: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode upload flow: %w", err)
	}
	return &snap, nil
}

func (s *redisStore) Save(ctx context.Context, snap *Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode upload flow: %w", err)
	}
	if err := s.client.Set(ctx, flowKey(snap.UserID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save upload flow: %w", err)
	}
	return nil
}

type memoryStore struct {
	mu    sync.RWMutex
	flows map[uuid.UUID]*Snapshot
}

func NewMemoryStore() Store {
	return &memoryStore{flows: map[uuid.UUID]*Snapshot{}}
}

func (s *memoryStore) Get(_ context.Context, userID uuid.UUID) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.flows[userID]
	if !ok {
		return nil, nil
	}
	return snap.clone(), nil
}

func (s *memoryStore) Save(_ context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flows[snap.UserID] = snap.clone()
	return nil
}

// NewStore uses redis when a client is available.
func NewStore(client *redis.Client, ttl time.Duration) Store {
	if client == nil {
		return NewMemoryStore()
	}
	return NewRedisStore(client, ttl)
}
