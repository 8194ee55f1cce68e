// Package postmark implements the EmailSender interface over Postmark's
// transactional API, for mailing diagnostic failure reports.
//
//	var cfg postmark.Config
//	config.MustLoad(&cfg)
//	sender := postmark.MustNewClient(cfg)
//
//	reporter := notify.NewEmailReporter(sender, admins)
package postmark
