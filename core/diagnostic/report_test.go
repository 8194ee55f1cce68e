package diagnostic_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AferriDaniel/coaster/core/diagnostic"
)

func TestWithVars(t *testing.T) {
	t.Parallel()

	base := errors.New("boom")
	err := diagnostic.WithVars(base, "account", 7, "api_key", "sk-12345")

	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, base)

	vars := diagnostic.Vars(err)
	require.Len(t, vars, 2)
	assert.Equal(t, "account", vars[0].Key)
	assert.Equal(t, 7, vars[0].Value)

	assert.Nil(t, diagnostic.WithVars(nil, "k", "v"))
}

func TestWithVars_ChainCollection(t *testing.T) {
	t.Parallel()

	err := diagnostic.WithVars(errors.New("inner"), "depth", 2)
	err = fmt.Errorf("wrapped: %w", err)
	err = diagnostic.WithVars(err, "depth", 1)

	vars := diagnostic.Vars(err)
	require.Len(t, vars, 2)
	// Outermost wrap first.
	assert.Equal(t, 1, vars[0].Value)
	assert.Equal(t, 2, vars[1].Value)
}

// captureInside stands in for application code capturing at the failure
// site.
func captureInside() *diagnostic.Snapshot {
	return diagnostic.Capture(errors.New("boom"))
}

// captureForCaller captures on behalf of its caller, like a wrapper would.
func captureForCaller() *diagnostic.Snapshot {
	return diagnostic.Capture(errors.New("boom"), diagnostic.Skip(1))
}

func TestCapture_InnermostFrame(t *testing.T) {
	t.Parallel()

	snap := captureInside()
	require.NotEmpty(t, snap.Frames)
	assert.Contains(t, snap.Frames[0].Function, "captureInside")

	snap = captureForCaller()
	require.NotEmpty(t, snap.Frames)
	assert.Contains(t, snap.Frames[0].Function, "TestCapture_InnermostFrame")
}

func TestCapturePanic_InnermostFrame(t *testing.T) {
	t.Parallel()

	snap := diagnostic.CapturePanic("kaboom")
	require.NotEmpty(t, snap.Frames)
	assert.Contains(t, snap.Frames[0].Function, "TestCapturePanic_InnermostFrame")
}

func TestFormat_Report(t *testing.T) {
	t.Parallel()

	err := diagnostic.WithVars(errors.New("import failed"),
		"record_count", 12,
		"api_key", "sk-12345",
	)
	snap := diagnostic.Capture(err,
		diagnostic.RequestContext(map[string]any{
			"method": "POST",
			"path":   "/imports",
			"email":  "user@example.com",
		}),
		diagnostic.SessionContext(map[string]any{"user_id": 99}),
	)

	report := diagnostic.NewFormatter().Format(snap)

	assert.Contains(t, report, "import failed")
	assert.Contains(t, report, "Stack frames (most recent call first):")
	assert.Contains(t, report, "TestFormat_Report")
	assert.Contains(t, report, "record_count")
	assert.Contains(t, report, "12")

	// Sensitive bindings never leak.
	assert.Contains(t, report, diagnostic.FilteredMarker)
	assert.NotContains(t, report, "sk-12345")
	assert.NotContains(t, report, "user@example.com")

	assert.Contains(t, report, "Request context:")
	assert.Contains(t, report, "Session cookie contents:")
	assert.NotContains(t, report, "App context:")
}

func TestFormat_RepeatedValueBackReference(t *testing.T) {
	t.Parallel()

	shared := &struct{ N int }{N: 1}
	snap := &diagnostic.Snapshot{
		Err: errors.New("boom"),
		Frames: []diagnostic.Frame{
			{Function: "pkg.inner", File: "inner.go", Line: 10, Vars: []diagnostic.Var{
				{Key: "payload", Value: shared},
			}},
			{Function: "pkg.outer", File: "outer.go", Line: 20, Vars: []diagnostic.Var{
				{Key: "payload", Value: shared},
			}},
		},
	}

	report := diagnostic.NewFormatter().Format(snap)
	assert.Contains(t, report, `<same as prior "inner.payload">`)
	assert.Equal(t, 1, strings.Count(report, "N:1"), report)
}

func TestFormat_PanicValue(t *testing.T) {
	t.Parallel()

	snap := diagnostic.CapturePanic("index out of range")
	report := diagnostic.NewFormatter().Format(snap)
	assert.Contains(t, report, "panic: index out of range")
}

type explodingStringer struct{}

func (explodingStringer) String() string { panic("cannot render") }

func TestFormat_ValueRenderFailure(t *testing.T) {
	t.Parallel()

	snap := &diagnostic.Snapshot{
		Err: errors.New("boom"),
		Frames: []diagnostic.Frame{
			{Function: "pkg.fn", File: "f.go", Line: 1, Vars: []diagnostic.Var{
				{Key: "bad", Value: explodingStringer{}},
				{Key: "good", Value: "still here"},
			}},
		},
	}

	report := diagnostic.NewFormatter().Format(snap)
	assert.Contains(t, report, diagnostic.ErrorMarker)
	assert.Contains(t, report, `"still here"`)
}

func TestFormat_ConfigPolicyRestored(t *testing.T) {
	// Not parallel: observes the process-wide rendering policy.
	cfg := diagnostic.ConfigMap{"db_host": "localhost", "db_password": "hunter2"}

	// Outside a render, full policy prints contents.
	require.Equal(t, diagnostic.RenderFull, diagnostic.ConfigRendering())
	assert.Contains(t, cfg.String(), "db_host")

	snap := &diagnostic.Snapshot{
		Err: errors.New("boom"),
		Frames: []diagnostic.Frame{
			{Function: "pkg.fn", File: "f.go", Line: 1, Vars: []diagnostic.Var{
				{Key: "conf", Value: cfg},
			}},
		},
	}
	report := diagnostic.NewFormatter().Format(snap)

	// Inside the render the override was active...
	assert.Contains(t, report, "<Config [FILTERED]>")
	assert.NotContains(t, report, "hunter2")
	// ...and restored afterwards.
	assert.Equal(t, diagnostic.RenderFull, diagnostic.ConfigRendering())
}
