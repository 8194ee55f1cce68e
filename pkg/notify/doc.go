// Package notify delivers diagnostic reports to external channels: Slack
// webhooks, Telegram chats, and email recipients.
//
// Delivery is strictly best-effort. Reporters swallow transport errors and
// non-2xx responses; the logger that feeds them must never crash the
// process it monitors, so a failed notification is an accepted monitoring
// gap. Duplicate reports from the same origin are suppressed for a
// throttle window (default five minutes) with state owned by the throttle
// itself, not package globals; a Redis-backed Store is available in
// integration/database/redis for multi-process deployments.
//
// Messages are capped per channel (Telegram at 4096 bytes) and truncated
// without leaving unbalanced markup.
package notify
