// Package logger builds application loggers on Go's standard slog package.
// It wires together the output handler, file rotation, diagnostic report
// generation, and best-effort failure notification, and provides a small
// set of nil-safe attribute helpers.
//
// # Basic Usage
//
//	import "github.com/AferriDaniel/coaster/core/logger"
//
//	log := logger.New(
//		logger.WithAppName("myapp"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("server starting", logger.Component("server"))
//
// # Environment Configuration
//
// NewFromConfig assembles the full stack from environment variables: a
// rotating log file when LOGFILE is set, and Slack, Telegram, and email
// failure reporters when their credentials are present.
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log, err := logger.NewFromConfig(cfg)
//
// Records at or above the report level that carry an error produce a full
// diagnostic report (see the diagnostic package) which is attached to the
// record and fanned out to the configured notification channels.
package logger
