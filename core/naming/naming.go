package naming

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/AferriDaniel/coaster/pkg/slug"
	"github.com/AferriDaniel/coaster/pkg/urlid"
)

var (
	// ErrBlankName is returned when a title normalizes to nothing and the
	// strategy does not allow blank names.
	ErrBlankName = errors.New("naming: title produces a blank name")
	// ErrNameConflict is surfaced by stores when a uniqueness constraint
	// rejects a name that passed the optimistic check.
	ErrNameConflict = errors.New("naming: name already exists in scope")
	// ErrScopeRequired is returned when a scoped strategy is called
	// without a scope.
	ErrScopeRequired = errors.New("naming: scoped strategy requires a scope")
)

// ScopeKey identifies the parent container a name must be unique within.
// The zero value is the global scope.
type ScopeKey string

// GlobalScope is the scope of records without a parent container.
const GlobalScope ScopeKey = ""

// Checker reports whether a name is already taken within a scope,
// typically by querying the persistent store. Implementations that need to
// exclude the record being renamed should close over its key.
type Checker interface {
	NameTaken(ctx context.Context, scope ScopeKey, name string) (bool, error)
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, scope ScopeKey, name string) (bool, error)

func (f CheckerFunc) NameTaken(ctx context.Context, scope ScopeKey, name string) (bool, error) {
	return f(ctx, scope, name)
}

// DefaultMaxLength caps generated names at the conventional column width.
const DefaultMaxLength = 250

// Strategy generates unique names for one family of records.
type Strategy struct {
	kind       urlid.Kind
	scoped     bool
	checker    Checker
	reserved   map[string]struct{}
	maxLength  int
	allowBlank bool
	slugOpts   []slug.Option
}

// StrategyOption configures a Strategy.
type StrategyOption func(*Strategy)

// Scoped makes names unique per parent scope instead of globally.
func Scoped() StrategyOption {
	return func(s *Strategy) {
		s.scoped = true
	}
}

// WithChecker installs the persistent-store lookup. Without one, only
// reserved names and pending siblings are checked.
func WithChecker(c Checker) StrategyOption {
	return func(s *Strategy) {
		s.checker = c
	}
}

// ReserveNames registers names the strategy must never produce.
func ReserveNames(names ...string) StrategyOption {
	return func(s *Strategy) {
		for _, n := range names {
			s.reserved[n] = struct{}{}
		}
	}
}

// MaxLength overrides the default name length cap.
func MaxLength(n int) StrategyOption {
	return func(s *Strategy) {
		s.maxLength = n
	}
}

// Unlimited removes the name length cap.
func Unlimited() StrategyOption {
	return func(s *Strategy) {
		s.maxLength = 0
	}
}

// AllowBlank lets a title that normalizes to nothing produce an empty name
// instead of ErrBlankName.
func AllowBlank() StrategyOption {
	return func(s *Strategy) {
		s.allowBlank = true
	}
}

// SlugOptions passes extra options through to the slugifier.
func SlugOptions(opts ...slug.Option) StrategyOption {
	return func(s *Strategy) {
		s.slugOpts = opts
	}
}

// NewStrategy builds a naming strategy for records addressed by the given
// identifier kind.
func NewStrategy(kind urlid.Kind, opts ...StrategyOption) *Strategy {
	s := &Strategy{
		kind:      kind,
		reserved:  make(map[string]struct{}),
		maxLength: DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind reports what the strategy's URL identifiers are built from.
func (s *Strategy) Kind() urlid.Kind { return s.kind }

// IsScoped reports whether uniqueness is relative to a parent scope.
func (s *Strategy) IsScoped() bool { return s.scoped }

type nameRequest struct {
	scope    ScopeKey
	hasScope bool
	reserved []string
	current  string
	pending  *Pending
}

// NameOption configures one MakeName call.
type NameOption func(*nameRequest)

// InScope restricts the uniqueness check to the given parent scope.
func InScope(scope ScopeKey) NameOption {
	return func(r *nameRequest) {
		r.scope = scope
		r.hasScope = true
	}
}

// Reserved excludes additional names for this call only.
func Reserved(names ...string) NameOption {
	return func(r *nameRequest) {
		r.reserved = append(r.reserved, names...)
	}
}

// KeepCurrent marks the entity's own stored name, so renaming back to the
// same title keeps it instead of suffixing against itself.
func KeepCurrent(name string) NameOption {
	return func(r *nameRequest) {
		r.current = name
	}
}

// WithPending consults and updates the unit-of-work claim set, so sibling
// records created in the same transaction cannot take the same name.
func WithPending(p *Pending) NameOption {
	return func(r *nameRequest) {
		r.pending = p
	}
}

// MakeName derives a unique name from a title. When the slugified title
// collides with the store, a reserved name, or a pending sibling, integer
// suffixes starting at 2 are tried until a free name is found; the base is
// re-truncated so the suffixed name still fits the length cap. The chosen
// name is claimed in the pending set when one is supplied.
func (s *Strategy) MakeName(ctx context.Context, title string, opts ...NameOption) (string, error) {
	var req nameRequest
	for _, opt := range opts {
		opt(&req)
	}
	if s.scoped && !req.hasScope {
		return "", ErrScopeRequired
	}

	slugOpts := s.slugOpts
	if s.maxLength > 0 {
		slugOpts = append(slugOpts[:len(slugOpts):len(slugOpts)], slug.MaxLength(s.maxLength))
	}
	base := slug.Make(title, slugOpts...)
	if base == "" {
		if s.allowBlank {
			return "", nil
		}
		return "", ErrBlankName
	}

	sep := slug.SeparatorOf(s.slugOpts...)
	candidate := base
	for counter := 2; ; counter++ {
		taken, err := s.taken(ctx, req, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			if req.pending != nil {
				req.pending.Claim(req.scope, candidate)
			}
			return candidate, nil
		}

		suffix := strconv.Itoa(counter)
		head := base
		if s.maxLength > 0 && len(head)+len(suffix) > s.maxLength {
			head = slug.Truncate(head, s.maxLength-len(suffix), sep)
			if head == "" {
				return "", fmt.Errorf("naming: length cap %d leaves no room for %q", s.maxLength, base)
			}
		}
		candidate = head + suffix
	}
}

func (s *Strategy) taken(ctx context.Context, req nameRequest, name string) (bool, error) {
	if req.current != "" && name == req.current {
		return false, nil
	}
	if _, ok := s.reserved[name]; ok {
		return true, nil
	}
	for _, r := range req.reserved {
		if r == name {
			return true, nil
		}
	}
	if req.pending != nil && req.pending.Has(req.scope, name) {
		return true, nil
	}
	if s.checker != nil {
		return s.checker.NameTaken(ctx, req.scope, name)
	}
	return false, nil
}
