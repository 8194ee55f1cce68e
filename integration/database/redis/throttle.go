package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AferriDaniel/coaster/pkg/notify"
)

// ThrottleStore persists notification claims in Redis, so duplicate
// suppression holds across every process sharing the instance. Claims use
// SET NX with the window as expiry; Redis evicts them on its own.
type ThrottleStore struct {
	client *redis.Client
	prefix string
}

var _ notify.ThrottleStore = (*ThrottleStore)(nil)

// ThrottleStoreOption configures a ThrottleStore.
type ThrottleStoreOption func(*ThrottleStore)

// WithKeyPrefix overrides the key prefix. Default is "notify:throttle:".
func WithKeyPrefix(prefix string) ThrottleStoreOption {
	return func(s *ThrottleStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewThrottleStore builds a store over the given client.
func NewThrottleStore(client *redis.Client, opts ...ThrottleStoreOption) *ThrottleStore {
	s := &ThrottleStore{
		client: client,
		prefix: "notify:throttle:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Claim attempts to claim key for the window. It returns true when the key
// was free, false when a live claim exists.
func (s *ThrottleStore) Claim(ctx context.Context, key string, window time.Duration) (bool, error) {
	if window <= 0 {
		return true, nil
	}
	return s.client.SetNX(ctx, s.prefix+key, 1, window).Result()
}
