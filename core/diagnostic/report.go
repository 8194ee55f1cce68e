package diagnostic

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Formatter renders snapshots as labeled plain-text reports.
type Formatter struct {
	redactor *Redactor
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithRedactor replaces the default redaction rules.
func WithRedactor(r *Redactor) FormatterOption {
	return func(f *Formatter) {
		if r != nil {
			f.redactor = r
		}
	}
}

// NewFormatter builds a report formatter with the default redactor.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{redactor: NewRedactor()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// sectionBreak separates report sections; frameBreak separates frames
// within the stack section. Chat reporters split on these to build their
// payloads.
const (
	sectionBreak = "\n----------\n"
	frameBreak   = "\n----\n"
)

// identity keys the repeat-value cache. Only reference kinds have a stable
// identity worth caching.
type identity struct {
	kind reflect.Kind
	ptr  uintptr
}

func identityOf(v any) (identity, bool) {
	if v == nil {
		return identity{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return identity{kind: rv.Kind(), ptr: rv.Pointer()}, true
	default:
		return identity{}, false
	}
}

// Format renders a snapshot as text. Rendering holds the package render
// lock and forces config rendering to RenderFiltered for its duration,
// restoring the previous policy on every exit path.
func (f *Formatter) Format(snap *Snapshot) string {
	renderMu.Lock()
	prev := SetConfigRendering(RenderFiltered)
	defer func() {
		SetConfigRendering(prev)
		renderMu.Unlock()
	}()

	var b strings.Builder
	b.WriteString(snap.Headline())
	b.WriteString("\n")
	b.WriteString(sectionBreak)
	b.WriteString("\nStack frames (most recent call first):\n")

	seen := make(map[identity]string)
	for _, frame := range snap.Frames {
		b.WriteString(frameBreak)
		fmt.Fprintf(&b, "\nFrame %s in %s at line %d\n", frame.Function, frame.File, frame.Line)
		for _, v := range frame.Vars {
			rendered := f.renderVar(seen, frame.Function, v)
			fmt.Fprintf(&b, "\t%20s = %s\n", v.Key, rendered)
		}
	}

	f.section(&b, "Request context:", snap.Request)
	f.section(&b, "Session cookie contents:", snap.Session)
	f.section(&b, "App context:", snap.App)

	return strings.TrimRight(b.String(), "\n")
}

// renderVar redacts and renders one binding, substituting a back-reference
// when the identical value appeared in an earlier frame.
func (f *Formatter) renderVar(seen map[identity]string, function string, v Var) string {
	if id, ok := identityOf(v.Value); ok {
		if label, dup := seen[id]; dup {
			return fmt.Sprintf("<same as prior %q>", label)
		}
		seen[id] = shortFunc(function) + "." + v.Key
	}
	return f.render(v.Key, v.Value)
}

// section appends a labeled, key-sorted, redacted dump of a context map.
// Nil or empty maps are skipped silently.
func (f *Formatter) section(b *strings.Builder, label string, m map[string]any) {
	if len(m) == 0 {
		return
	}
	b.WriteString(sectionBreak)
	b.WriteString("\n")
	b.WriteString(label)
	b.WriteString("\n")
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "    %s = %s\n", k, f.render(k, m[k]))
	}
}

// render redacts and prints a single value. A panic while printing yields
// the error marker instead of aborting the report.
func (f *Formatter) render(key string, value any) (out string) {
	defer func() {
		if recover() != nil {
			out = ErrorMarker
		}
	}()
	return renderValue(f.redactor.Redact(key, value))
}

func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case filteredValue:
		return FilteredMarker
	case string:
		return strconv.Quote(val)
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%#v", v)
	}
}

// shortFunc trims the package path from a fully qualified function name:
// "example.com/pkg.(*T).Method" → "(*T).Method".
func shortFunc(function string) string {
	if i := strings.LastIndex(function, "/"); i >= 0 {
		function = function[i+1:]
	}
	if i := strings.Index(function, "."); i >= 0 {
		return function[i+1:]
	}
	return function
}
