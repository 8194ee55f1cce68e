package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParseFailure indicates the environment could not be parsed into the
// configuration struct.
var ErrParseFailure = errors.New("failed to parse environment configuration")

var (
	dotenvOnce sync.Once

	// cache maps the configuration struct type to its loaded value.
	cache sync.Map
)

// Load parses environment variables into cfg. The first load of each
// configuration type reads the environment; later loads return the cached
// value. A .env file in the working directory is loaded once, before the
// first parse, and silently skipped when absent.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	key := reflect.TypeOf(*cfg)
	if cached, ok := cache.Load(key); ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParseFailure, fmt.Errorf("type %T: %w", *cfg, err))
	}

	// Concurrent first loads of one type keep whichever value landed first.
	cached, _ := cache.LoadOrStore(key, *cfg)
	*cfg = cached.(T)
	return nil
}

// MustLoad is Load that panics on failure, for application startup paths.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
