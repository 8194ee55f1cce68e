package diagnostic

import (
	"fmt"
	"runtime"
	"strings"
)

// Frame is one call site in a captured stack, innermost first in the
// snapshot's frame list.
type Frame struct {
	Function string
	File     string
	Line     int
	Vars     []Var
}

// Snapshot is the immutable record of one failure: the stack at capture
// time, the variable state carried by the failure, and whatever contextual
// maps the caller had available. It is built once per failure and
// discarded after formatting.
type Snapshot struct {
	Err        error
	PanicValue any
	Frames     []Frame
	Request    map[string]any
	Session    map[string]any
	App        map[string]any
}

type captureConfig struct {
	skip     int
	request  map[string]any
	session  map[string]any
	app      map[string]any
	extraVar []Var
}

// CaptureOption configures snapshot capture.
type CaptureOption func(*captureConfig)

// RequestContext attaches a filtered dump of the current request to the
// report. Absence of request context is not an error; the section is
// simply skipped.
func RequestContext(m map[string]any) CaptureOption {
	return func(c *captureConfig) { c.request = m }
}

// SessionContext attaches the session contents to the report.
func SessionContext(m map[string]any) CaptureOption {
	return func(c *captureConfig) { c.session = m }
}

// AppContext attaches application-scoped state to the report.
func AppContext(m map[string]any) CaptureOption {
	return func(c *captureConfig) { c.app = m }
}

// Skip drops additional stack frames above the capture site, for wrappers
// that capture on behalf of their caller.
func Skip(n int) CaptureOption {
	return func(c *captureConfig) {
		if n > 0 {
			c.skip = n
		}
	}
}

// ExtraVars adds bindings to the innermost frame beyond those carried on
// the error chain.
func ExtraVars(vars ...Var) CaptureOption {
	return func(c *captureConfig) { c.extraVar = vars }
}

// Capture walks the current stack and builds a snapshot for err. Variable
// bindings attached with WithVars anywhere along the error chain are
// placed on the innermost frame.
func Capture(err error, opts ...CaptureOption) *Snapshot {
	snap := capture(2, opts, Vars(err))
	snap.Err = err
	return snap
}

// CapturePanic builds a snapshot for a recovered panic value. When the
// value is an error its chain is inspected like in Capture.
func CapturePanic(recovered any, opts ...CaptureOption) *Snapshot {
	var vars []Var
	var err error
	if e, ok := recovered.(error); ok {
		err = e
		vars = Vars(e)
	}
	snap := capture(2, opts, vars)
	snap.Err = err
	snap.PanicValue = recovered
	return snap
}

func capture(skip int, opts []CaptureOption, vars []Var) *Snapshot {
	var cfg captureConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	// skip counts the exported wrapper's frames; +1 drops runtime.Callers
	// itself, so the first collected frame is the wrapper's call site.
	var pcs [64]uintptr
	n := runtime.Callers(skip+1, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	snap := &Snapshot{
		Request: cfg.request,
		Session: cfg.session,
		App:     cfg.app,
	}
	skipped := cfg.skip
	for {
		fr, more := frames.Next()
		if skipped > 0 {
			skipped--
			if !more {
				break
			}
			continue
		}
		if !strings.HasPrefix(fr.Function, "runtime.") {
			snap.Frames = append(snap.Frames, Frame{
				Function: fr.Function,
				File:     fr.File,
				Line:     fr.Line,
			})
		}
		if !more {
			break
		}
	}

	if len(snap.Frames) > 0 {
		inner := &snap.Frames[0]
		inner.Vars = append(inner.Vars, vars...)
		inner.Vars = append(inner.Vars, cfg.extraVar...)
	}
	return snap
}

// Headline is the first line of the report: the error text or the panic
// value.
func (s *Snapshot) Headline() string {
	switch {
	case s.PanicValue != nil && s.Err == nil:
		return fmt.Sprintf("panic: %v", s.PanicValue)
	case s.Err != nil:
		return s.Err.Error()
	default:
		return "(no error)"
	}
}
