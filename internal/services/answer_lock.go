package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const answerLockTTL = 30 * 24 * time.Hour

// AnswerLock records the first answer a user gives to a question. Acquire
// reports false when the question was already answered.
type AnswerLock interface {
	Acquire(ctx context.Context, userID, mcqID uuid.UUID) (bool, error)
}

func answerLockKey(userID, mcqID uuid.UUID) string {
	return fmt.Sprintf("mcq-answer:%s:%s", userID, mcqID)
}

type redisAnswerLock struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAnswerLock(client *redis.Client) AnswerLock {
	return &redisAnswerLock{client: client, ttl: answerLockTTL}
}

func (l *redisAnswerLock) Acquire(ctx context.Context, userID, mcqID uuid.UUID) (bool, error) {
	ok, err := l.client.SetNX(ctx, answerLockKey(userID, mcqID), time.Now().Unix(), l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to lock answer: %w", err)
	}
	return ok, nil
}

type memoryAnswerLock struct {
	answered sync.Map
}

func NewMemoryAnswerLock() AnswerLock {
	return &memoryAnswerLock{}
}

func (l *memoryAnswerLock) Acquire(_ context.Context, userID, mcqID uuid.UUID) (bool, error) {
	_, loaded := l.answered.LoadOrStore(answerLockKey(userID, mcqID), struct{}{})
	return !loaded, nil
}

// NewAnswerLock uses redis when a client is available.
func NewAnswerLock(client *redis.Client) AnswerLock {
	if client == nil {
		return NewMemoryAnswerLock()
	}
	return NewRedisAnswerLock(client)
}
