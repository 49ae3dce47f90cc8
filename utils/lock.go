// File: utils/lock.go
package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// BookingLock serializes the commit section of a booking. Availability shown
// to a client can be stale by the time they submit; holding the lock across
// the re-fetch and the event creation keeps two requests for the same slot
// from both passing the re-check.
type BookingLock interface {
	// Acquire blocks until the lock is held or ctx expires, and returns the
	// release function.
	Acquire(ctx context.Context) (func(), error)
}

// LocalLock is a process-wide mutex. Sufficient for a single replica.
type LocalLock struct {
	mu sync.Mutex
}

func (l *LocalLock) Acquire(ctx context.Context) (func(), error) {
	l.mu.Lock()
	return func() { l.mu.Unlock() }, nil
}

// RedisLock serializes booking commits across replicas with a short
// SET NX lease.
type RedisLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	retry  time.Duration
}

// NewRedisLock connects to Redis and returns a lock keyed for the single
// owner this service books for.
func NewRedisLock(addr, password string, db int) (*RedisLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis (booking lock): %w", err)
	}
	return &RedisLock{
		client: client,
		key:    "booking:commit",
		ttl:    15 * time.Second,
		retry:  100 * time.Millisecond,
	}, nil
}

func (l *RedisLock) Acquire(ctx context.Context) (func(), error) {
	token := uuid.New().String()
	for {
		ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("booking lock acquire: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		// Only delete the lease if it is still ours; an expired lease may
		// already belong to another request.
		val, err := l.client.Get(ctx, l.key).Result()
		if err == nil && val == token {
			l.client.Del(ctx, l.key)
		}
	}
	return release, nil
}
