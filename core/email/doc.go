// Package email defines the sender abstraction used to mail diagnostic
// reports to administrators.
//
// The EmailSender interface is implemented by integration/email/smtp and
// integration/email/postmark for real delivery, and by DevSender, which
// writes messages to disk for local development:
//
//	sender := email.NewDevSender("./dev_emails")
//	err := sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "admin@example.com",
//		Subject:  "myapp failure",
//		BodyText: report,
//	})
package email
