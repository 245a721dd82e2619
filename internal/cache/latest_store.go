package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LatestStore keeps the most recent serialized reading per operator so a
// dashboard joining mid-stream has a position to draw immediately.
type LatestStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLatestStore returns redis-backed store.
func NewLatestStore(client *redis.Client, ttl time.Duration) *LatestStore {
	return &LatestStore{client: client, ttl: ttl}
}

func (s *LatestStore) key(operatorKey string) string {
	return fmt.Sprintf("gps:operator:%s:latest", operatorKey)
}

// SetLatest overwrites the cached reading for the operator.
func (s *LatestStore) SetLatest(ctx context.Context, operatorKey string, payload []byte) error {
	return s.client.Set(ctx, s.key(operatorKey), payload, s.ttl).Err()
}

// GetLatest returns the cached reading, or redis.Nil when none exists.
func (s *LatestStore) GetLatest(ctx context.Context, operatorKey string) ([]byte, error) {
	result, err := s.client.Get(ctx, s.key(operatorKey)).Bytes()
	if err != nil {
		return nil, err
	}
	return result, nil
}
