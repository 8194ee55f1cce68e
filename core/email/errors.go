package email

import "errors"

// Sentinel errors returned by senders. Implementations join these with the
// provider failure so callers can match on the category with errors.Is.
var (
	ErrFailedToSendEmail = errors.New("failed to send email")
	ErrInvalidConfig     = errors.New("invalid email configuration")
	ErrInvalidParams     = errors.New("invalid email parameters")
)
