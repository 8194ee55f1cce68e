package smtp

// Config holds SMTP server configuration. Credentials are optional so
// unauthenticated relays work; everything else must be explicit to avoid
// silent failures in production.
type Config struct {
	Host     string `env:"MAIL_SERVER,required"`
	Port     int    `env:"MAIL_PORT" envDefault:"587"`
	Username string `env:"MAIL_USERNAME"`
	Password string `env:"MAIL_PASSWORD"`
	TLSMode  string `env:"MAIL_TLS_MODE" envDefault:"starttls"` // starttls, tls, or plain

	// Sender is the From address on outgoing mail.
	Sender string `env:"MAIL_DEFAULT_SENDER,required"`

	// ReplyTo is set on outgoing mail when non-empty.
	ReplyTo string `env:"MAIL_REPLY_TO"`
}
