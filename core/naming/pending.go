package naming

import "sync"

// Pending tracks names claimed by records that have not been persisted
// yet. A unit of work (one transaction, one batch import) shares a single
// Pending so its records cannot collide with each other before the store's
// constraint can see them.
type Pending struct {
	mu    sync.Mutex
	names map[ScopeKey]map[string]struct{}
}

// NewPending returns an empty claim set.
func NewPending() *Pending {
	return &Pending{names: make(map[ScopeKey]map[string]struct{})}
}

// Claim records a name as taken within a scope.
func (p *Pending) Claim(scope ScopeKey, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	scoped, ok := p.names[scope]
	if !ok {
		scoped = make(map[string]struct{})
		p.names[scope] = scoped
	}
	scoped[name] = struct{}{}
}

// Has reports whether a name is already claimed within a scope.
func (p *Pending) Has(scope ScopeKey, name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.names[scope][name]
	return ok
}

// Release drops a claim, typically after a rollback.
func (p *Pending) Release(scope ScopeKey, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.names[scope], name)
}
