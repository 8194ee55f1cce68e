package notify

import (
	"context"
	"sync"
	"time"
)

// DefaultThrottleWindow suppresses duplicate reports from one origin for
// this long.
const DefaultThrottleWindow = 5 * time.Minute

// ThrottleStore persists claim timestamps for duplicate suppression.
// Claim returns true when the key was free and is now claimed for the
// window, false when a claim inside the window already exists.
type ThrottleStore interface {
	Claim(ctx context.Context, key string, window time.Duration) (bool, error)
}

// Throttle suppresses duplicate reports per key within a window.
type Throttle struct {
	store  ThrottleStore
	window time.Duration
}

// ThrottleOption configures a Throttle.
type ThrottleOption func(*Throttle)

// WithThrottleWindow overrides the suppression window.
func WithThrottleWindow(window time.Duration) ThrottleOption {
	return func(t *Throttle) {
		if window > 0 {
			t.window = window
		}
	}
}

// WithThrottleStore replaces the in-memory claim store.
func WithThrottleStore(store ThrottleStore) ThrottleOption {
	return func(t *Throttle) {
		if store != nil {
			t.store = store
		}
	}
}

// NewThrottle builds a throttle backed by an in-memory store unless
// another is supplied.
func NewThrottle(opts ...ThrottleOption) *Throttle {
	t := &Throttle{
		store:  NewMemoryThrottleStore(),
		window: DefaultThrottleWindow,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Allow reports whether a notification for key should be sent now. Store
// failures allow the notification through: losing duplicate suppression is
// better than losing the report.
func (t *Throttle) Allow(ctx context.Context, key string) bool {
	ok, err := t.store.Claim(ctx, key, t.window)
	if err != nil {
		return true
	}
	return ok
}

// MemoryThrottleStore keeps claim timestamps in a map. Expired entries are
// evicted during claims, so the map is bounded by the set of origins seen
// within one window.
type MemoryThrottleStore struct {
	mu      sync.Mutex
	claims  map[string]time.Time
	now     func() time.Time
	sweepAt int
}

// NewMemoryThrottleStore returns an empty in-memory claim store.
func NewMemoryThrottleStore() *MemoryThrottleStore {
	return &MemoryThrottleStore{
		claims: make(map[string]time.Time),
		now:    time.Now,
	}
}

const sweepEvery = 64

func (m *MemoryThrottleStore) Claim(_ context.Context, key string, window time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if at, ok := m.claims[key]; ok && now.Sub(at) < window {
		return false, nil
	}
	m.claims[key] = now

	m.sweepAt++
	if m.sweepAt >= sweepEvery {
		m.sweepAt = 0
		for k, at := range m.claims {
			if now.Sub(at) >= window {
				delete(m.claims, k)
			}
		}
	}
	return true, nil
}
