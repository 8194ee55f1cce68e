package email

import (
	"context"
	"fmt"
	"regexp"
)

// EmailSender delivers one message. Implementations must be safe for
// concurrent use.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams carries one outbound message. Diagnostic reports are
// plain text; BodyHTML is optional and used by providers that support an
// HTML alternative.
type SendEmailParams struct {
	SendTo   string
	Subject  string
	BodyText string
	BodyHTML string
	// Tag classifies the message for provider-side analytics and for
	// file naming in development mode.
	Tag string
}

var addressRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidAddress reports whether s looks like an email address. A simple
// pattern is deliberate; the mail server is the real validator.
func ValidAddress(s string) bool {
	return addressRegex.MatchString(s)
}

// Validate checks the parameters before handing them to a provider.
func (p SendEmailParams) Validate() error {
	if p.SendTo == "" || !ValidAddress(p.SendTo) {
		return fmt.Errorf("%w: SendTo must be a valid email address", ErrInvalidParams)
	}
	if p.Subject == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if p.BodyText == "" && p.BodyHTML == "" {
		return fmt.Errorf("%w: a text or HTML body is required", ErrInvalidParams)
	}
	return nil
}
