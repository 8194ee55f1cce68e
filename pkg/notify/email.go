package notify

import (
	"context"
	"log/slog"

	"github.com/AferriDaniel/coaster/core/email"
)

// EmailReporter mails failure reports to a list of administrators.
// Like the chat reporters it is best-effort and throttled per origin;
// only records at or above the minimum level are mailed.
type EmailReporter struct {
	sender   email.EmailSender
	admins   []string
	minLevel slog.Level
	throttle *Throttle
}

// EmailOption configures an EmailReporter.
type EmailOption func(*EmailReporter)

// WithEmailMinLevel overrides the minimum mailed level (default ERROR).
func WithEmailMinLevel(level slog.Level) EmailOption {
	return func(e *EmailReporter) {
		e.minLevel = level
	}
}

// WithEmailThrottle replaces the default throttle.
func WithEmailThrottle(t *Throttle) EmailOption {
	return func(e *EmailReporter) {
		if t != nil {
			e.throttle = t
		}
	}
}

// NewEmailReporter builds a reporter mailing to the given admin
// addresses.
func NewEmailReporter(sender email.EmailSender, admins []string, opts ...EmailOption) *EmailReporter {
	e := &EmailReporter{
		sender:   sender,
		admins:   admins,
		minLevel: slog.LevelError,
		throttle: NewThrottle(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Report mails the full report text to every admin. Individual send
// failures are discarded.
func (e *EmailReporter) Report(ctx context.Context, r Report) error {
	if r.Level < e.minLevel || len(e.admins) == 0 {
		return nil
	}
	if !e.throttle.Allow(ctx, "email:"+r.Origin) {
		return nil
	}

	subject := r.App + " failure"
	body := r.Message + "\n\n" + r.Text
	for _, admin := range e.admins {
		_ = e.sender.SendEmail(ctx, email.SendEmailParams{
			SendTo:   admin,
			Subject:  subject,
			BodyText: body,
			Tag:      "failure_report",
		})
	}
	return nil
}
