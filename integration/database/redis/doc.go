// Package redis provides Redis client initialization with retry logic,
// health checking, and a Redis-backed claim store for notification
// throttling.
//
// Connect validates the Redis URL, attempts connection with exponential
// backoff, and verifies connectivity with a ping before returning the
// client. Both redis:// and rediss:// (TLS) URL schemes are supported.
//
//	cfg := redis.Config{ConnectionURL: "redis://localhost:6379/0"}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// # Throttle Store
//
// ThrottleStore persists notification claims in Redis with SET NX PX, so
// duplicate failure reports from one origin are suppressed across all
// processes sharing the Redis instance:
//
//	throttle := notify.NewThrottle(notify.WithThrottleStore(redis.NewThrottleStore(client)))
package redis
