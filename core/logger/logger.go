package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/AferriDaniel/coaster/core/diagnostic"
	"github.com/AferriDaniel/coaster/core/email"
	"github.com/AferriDaniel/coaster/pkg/notify"
)

type options struct {
	appName     string
	level       slog.Leveler
	output      io.Writer
	json        bool
	attrs       []slog.Attr
	reportLevel slog.Leveler
	formatter   *diagnostic.Formatter
	reporters   notify.Multi
	emailSender email.EmailSender
}

// Option configures a logger built by New or NewFromConfig.
type Option func(*options)

// WithAppName sets the application name used in failure notifications.
func WithAppName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.appName = name
		}
	}
}

// WithLevel sets the minimum logged level.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) {
		if level != nil {
			o.level = level
		}
	}
}

// WithOutput replaces the output writer. Default is stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithJSONFormatter switches output from text to JSON.
func WithJSONFormatter() Option {
	return func(o *options) {
		o.json = true
	}
}

// WithAttr attaches attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// WithReportLevel sets the minimum level that produces a diagnostic report.
func WithReportLevel(level slog.Leveler) Option {
	return func(o *options) {
		if level != nil {
			o.reportLevel = level
		}
	}
}

// WithFormatter replaces the diagnostic report formatter.
func WithFormatter(f *diagnostic.Formatter) Option {
	return func(o *options) {
		o.formatter = f
	}
}

// WithReporters adds failure notification channels.
func WithReporters(reporters ...notify.Reporter) Option {
	return func(o *options) {
		o.reporters = append(o.reporters, reporters...)
	}
}

// WithEmailSender supplies the sender used to mail failure reports to the
// configured admin addresses. Without it NewFromConfig skips the email
// channel.
func WithEmailSender(sender email.EmailSender) Option {
	return func(o *options) {
		o.emailSender = sender
	}
}

func newOptions(opts ...Option) options {
	o := options{
		appName:     "app",
		level:       slog.LevelInfo,
		output:      os.Stderr,
		reportLevel: slog.LevelError,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New builds a logger whose records at or above the report level carry a
// formatted diagnostic report when they include an error.
func New(opts ...Option) *slog.Logger {
	o := newOptions(opts...)
	return slog.New(decorate(baseHandler(o.output, o.level, o), o))
}

// NewFromConfig assembles the logging stack from environment configuration:
// console output, an optional rotating log file, and Slack, Telegram, and
// email reporters for whichever credentials are present.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	opts = append([]Option{
		WithAppName(cfg.AppName),
		WithLevel(cfg.Level),
		WithReportLevel(cfg.ReportLevel),
	}, opts...)
	if cfg.JSON {
		opts = append(opts, WithJSONFormatter())
	}
	o := newOptions(opts...)

	if len(cfg.SlackWebhooks) > 0 {
		o.reporters = append(o.reporters, notify.NewSlackReporter(o.appName, cfg.SlackWebhooks))
	}
	if cfg.TelegramChatID != "" && cfg.TelegramAPIKey != "" {
		o.reporters = append(o.reporters, notify.NewTelegramReporter(o.appName, cfg.TelegramChatID, cfg.TelegramAPIKey))
	}
	if o.emailSender != nil && len(cfg.Admins) > 0 {
		o.reporters = append(o.reporters, notify.NewEmailReporter(o.emailSender, cfg.Admins))
	}

	handlers := []slog.Handler{baseHandler(o.output, o.level, o)}
	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.FileMaxSizeMB,
			MaxBackups: cfg.FileBackups,
			MaxAge:     cfg.FileMaxAgeDays,
		}
		handlers = append(handlers, baseHandler(rotating, cfg.FileLevel, o))
	}

	var base slog.Handler = handlers[0]
	if len(handlers) > 1 {
		base = multiHandler(handlers)
	}
	return slog.New(decorate(base, o))
}

// SetAsDefault installs log as the process-wide default slog logger.
func SetAsDefault(log *slog.Logger) {
	slog.SetDefault(log)
}

func baseHandler(w io.Writer, level slog.Leveler, o options) slog.Handler {
	ho := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if o.json {
		h = slog.NewJSONHandler(w, ho)
	} else {
		h = slog.NewTextHandler(w, ho)
	}
	if len(o.attrs) > 0 {
		h = h.WithAttrs(o.attrs)
	}
	return h
}

// decorate wraps the base handler with diagnostic report generation and,
// when reporters are configured, best-effort delivery.
func decorate(base slog.Handler, o options) slog.Handler {
	hopts := []diagnostic.HandlerOption{
		diagnostic.WithReportLevel(o.reportLevel),
	}
	if o.formatter != nil {
		hopts = append(hopts, diagnostic.WithFormatter(o.formatter))
	}
	if len(o.reporters) > 0 {
		reporters := o.reporters
		app := o.appName
		hopts = append(hopts, diagnostic.WithReportFunc(func(ctx context.Context, rec slog.Record, report string) {
			_ = reporters.Report(ctx, notify.Report{
				App:     app,
				Level:   rec.Level,
				Message: rec.Message,
				Origin:  recordOrigin(rec),
				Text:    report,
			})
		}))
	}
	return diagnostic.NewHandler(base, hopts...)
}

// recordOrigin resolves the record's program counter to file:line. It keys
// duplicate suppression, so two failures on one line count as one origin.
func recordOrigin(rec slog.Record) string {
	if rec.PC == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{rec.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	return filepath.Base(frame.File) + ":" + strconv.Itoa(frame.Line)
}

// multiHandler fans records out to several handlers with independent levels.
type multiHandler []slog.Handler

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, rec slog.Record) error {
	var err error
	for _, h := range m {
		if h.Enabled(ctx, rec.Level) {
			if e := h.Handle(ctx, rec.Clone()); e != nil {
				err = e
			}
		}
	}
	return err
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(multiHandler, len(m))
	for i, h := range m {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	next := make(multiHandler, len(m))
	for i, h := range m {
		next[i] = h.WithGroup(name)
	}
	return next
}
