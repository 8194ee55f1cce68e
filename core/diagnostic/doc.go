// Package diagnostic renders failure reports: a stack snapshot with the
// variable state attached to the failure, sensitive values redacted, and
// request/session/application context appended when available.
//
// A report is a single-pass transformation of one failure. Rendering never
// fails as a whole: a value that cannot be printed is replaced with a
// placeholder and the walk continues. Values repeated across frames render
// as a back-reference to their first occurrence, which bounds output size
// and keeps sensitive data from leaking twice through different keys.
//
// Handler wraps a slog.Handler and appends the formatted report to records
// that carry an error or snapshot at or above a threshold level, forwarding
// the text to an optional report hook for external delivery.
//
//	logger := slog.New(diagnostic.NewHandler(base))
//	err = diagnostic.WithVars(err, "account", id, "api_key", key)
//	logger.Error("import failed", "error", err)
//
// The api_key value above renders as "[Filtered]" in the report.
package diagnostic
