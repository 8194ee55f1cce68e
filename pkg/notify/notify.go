package notify

import (
	"context"
	"log/slog"
)

// Report is one failure notification ready for delivery.
type Report struct {
	// App identifies the application in channel messages.
	App string
	// Level is the severity of the originating log record.
	Level slog.Level
	// Message is the log record's message.
	Message string
	// Origin identifies the failure site (file:line) and keys duplicate
	// suppression.
	Origin string
	// Text is the full formatted diagnostic report.
	Text string
}

// Reporter delivers a report to one channel. Implementations are
// fire-and-forget: they return an error for observability but callers are
// expected to discard it.
type Reporter interface {
	Report(ctx context.Context, r Report) error
}

// Multi fans a report out to several reporters, ignoring individual
// failures.
type Multi []Reporter

func (m Multi) Report(ctx context.Context, r Report) error {
	for _, reporter := range m {
		_ = reporter.Report(ctx, r)
	}
	return nil
}
