package diagnostic

import (
	"context"
	"log/slog"
	"strings"
)

// ReportFunc receives the formatted report for external delivery. It is
// called best-effort after the record has been written; it must not panic
// the process it is monitoring, so implementations should swallow their
// own failures.
type ReportFunc func(ctx context.Context, rec slog.Record, report string)

// Handler decorates a slog.Handler: records at or above the report level
// that carry an error or a *Snapshot get the formatted diagnostic report
// attached as a "report" attribute and forwarded to the report hook.
type Handler struct {
	inner     slog.Handler
	level     slog.Leveler
	formatter *Formatter
	report    ReportFunc
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithReportLevel sets the minimum level that triggers report generation.
// Default is slog.LevelError.
func WithReportLevel(level slog.Leveler) HandlerOption {
	return func(h *Handler) {
		if level != nil {
			h.level = level
		}
	}
}

// WithFormatter replaces the default formatter.
func WithFormatter(f *Formatter) HandlerOption {
	return func(h *Handler) {
		if f != nil {
			h.formatter = f
		}
	}
}

// WithReportFunc installs the delivery hook.
func WithReportFunc(fn ReportFunc) HandlerOption {
	return func(h *Handler) {
		h.report = fn
	}
}

// NewHandler wraps inner with diagnostic report generation.
func NewHandler(inner slog.Handler, opts ...HandlerOption) *Handler {
	h := &Handler{
		inner:     inner,
		level:     slog.LevelError,
		formatter: NewFormatter(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.inner = h.inner.WithAttrs(attrs)
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.inner = h.inner.WithGroup(name)
	return &clone
}

func (h *Handler) Handle(ctx context.Context, rec slog.Record) error {
	if rec.Level < h.level.Level() {
		return h.inner.Handle(ctx, rec)
	}

	snap := h.findSnapshot(rec)
	if snap == nil {
		return h.inner.Handle(ctx, rec)
	}

	report := h.formatter.Format(snap)
	rec = rec.Clone()
	rec.AddAttrs(slog.String("report", report))
	err := h.inner.Handle(ctx, rec)
	if h.report != nil {
		h.report(ctx, rec, report)
	}
	return err
}

// findSnapshot looks for a prepared *Snapshot attribute, falling back to
// capturing one from the first error attribute. The fallback stack starts
// at the logging call site; the failure site's state still arrives via the
// error chain's attached vars.
func (h *Handler) findSnapshot(rec slog.Record) *Snapshot {
	var snap *Snapshot
	rec.Attrs(func(a slog.Attr) bool {
		switch v := a.Value.Any().(type) {
		case *Snapshot:
			snap = v
			return false
		case error:
			snap = captureAtLogSite(v)
			return false
		}
		return true
	})
	return snap
}

// captureAtLogSite snapshots the current stack and trims the leading
// frames belonging to this package and to slog's dispatch machinery, so
// the innermost frame is the site that logged the failure. Trimming by
// function prefix instead of a fixed count survives the varying depth of
// the slog entry points (Error vs ErrorContext vs Log).
func captureAtLogSite(err error) *Snapshot {
	snap := Capture(err)
	trimmed := 0
	for trimmed < len(snap.Frames) && logInfrastructure(snap.Frames[trimmed].Function) {
		trimmed++
	}
	if trimmed > 0 && trimmed < len(snap.Frames) {
		vars := snap.Frames[0].Vars
		snap.Frames = snap.Frames[trimmed:]
		snap.Frames[0].Vars = append(vars, snap.Frames[0].Vars...)
	}
	return snap
}

func logInfrastructure(function string) bool {
	return strings.HasPrefix(function, "log/slog.") ||
		strings.HasPrefix(function, "github.com/AferriDaniel/coaster/core/diagnostic.")
}
