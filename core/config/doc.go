// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/AferriDaniel/coaster/core/config"
//
//	type LoggerConfig struct {
//		File  string `env:"LOGFILE"`
//		Level string `env:"LOGFILE_LEVEL" envDefault:"info"`
//	}
//
//	func main() {
//		var cfg LoggerConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 LoggerConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 LoggerConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently, so every subsystem can declare
// its own configuration struct and load it on demand.
package config
