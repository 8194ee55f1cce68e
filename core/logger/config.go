package logger

import (
	"log/slog"

	"github.com/AferriDaniel/coaster/pkg/notify"
)

// Config carries the logging stack's environment configuration.
// SLACK_LOGGING_WEBHOOKS is a JSON array of webhook objects, for example
// [{"url":"https://hooks.slack.com/...","levels":["WARN","ERROR"]}].
type Config struct {
	AppName string     `env:"APP_NAME" envDefault:"app"`
	Level   slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	JSON    bool       `env:"LOG_JSON" envDefault:"false"`

	// File enables a rotating log file when set.
	File           string     `env:"LOGFILE"`
	FileLevel      slog.Level `env:"LOGFILE_LEVEL" envDefault:"WARN"`
	FileMaxSizeMB  int        `env:"LOGFILE_MAX_SIZE_MB" envDefault:"100"`
	FileBackups    int        `env:"LOGFILE_BACKUPS" envDefault:"3"`
	FileMaxAgeDays int        `env:"LOGFILE_MAX_AGE_DAYS" envDefault:"28"`

	// ReportLevel is the minimum level that produces a diagnostic report.
	ReportLevel slog.Level `env:"LOG_REPORT_LEVEL" envDefault:"ERROR"`

	SlackWebhooks  notify.SlackWebhooks `env:"SLACK_LOGGING_WEBHOOKS"`
	TelegramChatID string               `env:"TELEGRAM_ERROR_CHATID"`
	TelegramAPIKey string               `env:"TELEGRAM_ERROR_APIKEY"`

	// Admins receive failure reports by email when an email sender is
	// supplied through WithEmailSender.
	Admins []string `env:"ADMINS"`
}
