package diagnostic

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// RenderPolicy controls how configuration-like objects print themselves.
type RenderPolicy int32

const (
	// RenderFull prints configuration contents normally.
	RenderFull RenderPolicy = iota
	// RenderFiltered replaces configuration dumps with a marker, so a
	// stack dump that reaches an application config cannot leak its
	// secrets wholesale.
	RenderFiltered
)

var configPolicy atomic.Int32

// renderMu serializes report rendering. The formatter overrides the
// process-wide policy to RenderFiltered for the duration of one render;
// without the lock a concurrent dump could observe or clobber the
// override.
var renderMu sync.Mutex

// ConfigRendering returns the current process-wide policy.
func ConfigRendering() RenderPolicy {
	return RenderPolicy(configPolicy.Load())
}

// SetConfigRendering sets the process-wide policy and returns the previous
// one.
func SetConfigRendering(p RenderPolicy) RenderPolicy {
	return RenderPolicy(configPolicy.Swap(int32(p)))
}

// ConfigMap is a configuration mapping that honors the rendering policy:
// under RenderFiltered it prints as "<Config [FILTERED]>" instead of its
// contents.
type ConfigMap map[string]any

func (c ConfigMap) String() string {
	if ConfigRendering() == RenderFiltered {
		return "<Config [FILTERED]>"
	}
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", k, c[k]))
	}
	return "<Config " + strings.Join(parts, " ") + ">"
}
