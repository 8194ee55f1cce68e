// Package smtp implements the EmailSender interface over standard SMTP,
// for mailing diagnostic failure reports to admin addresses.
//
// The client supports STARTTLS (default), direct TLS, and plain
// connections. Credentials are optional, so unauthenticated relays inside
// a private network work without configuration tricks.
//
//	var cfg smtp.Config
//	config.MustLoad(&cfg)
//	sender := smtp.MustNewClient(cfg)
//
//	reporter := notify.NewEmailReporter(sender, admins)
package smtp
