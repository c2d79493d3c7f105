package grapht

import (
	"reflect"
	"sync"
)

// Registry is a qualifier-aware type -> Satisfaction binding table. It
// implements BindingFunction via AsBindingFunction, giving hosts a
// concrete, ready-to-use binding function without writing one by hand —
// spec.md §4.2 specifies only the BindingFunction protocol, not a
// default implementation.
//
// Registry is adapted from the teacher's registry (type/name -> value,
// guarded by a sync.RWMutex, with a clone()) fused with values.go's
// parent-chain fallback: a lookup that misses locally falls through to
// parent, mirroring Values.getParent's scoped lookup.
type Registry struct {
	parent *Registry
	m      *sync.RWMutex
	byType map[reflect.Type][]registration
}

type registration struct {
	qualifier    Qualifier
	satisfaction Satisfaction
}

// NewRegistry creates an empty, unscoped Registry.
func NewRegistry() *Registry {
	return &Registry{
		m:      new(sync.RWMutex),
		byType: make(map[reflect.Type][]registration),
	}
}

// NewScopedRegistry creates a Registry that falls back to parent for any
// type not bound locally.
func NewScopedRegistry(parent *Registry) *Registry {
	r := NewRegistry()
	r.parent = parent
	return r
}

// Bind registers satisfaction as the binding for typ under qualifier
// (nil for the default qualifier). A later Bind for the same
// (typ, qualifier) pair replaces the earlier one.
func (r *Registry) Bind(typ reflect.Type, qualifier Qualifier, satisfaction Satisfaction) {
	r.m.Lock()
	defer r.m.Unlock()
	regs := r.byType[typ]
	for i, reg := range regs {
		if qualifierEqual(reg.qualifier, qualifier) {
			regs[i].satisfaction = satisfaction
			return
		}
	}
	r.byType[typ] = append(regs, registration{qualifier, satisfaction})
}

// Lookup finds the satisfaction bound to typ whose qualifier most
// closely inherits from the requested qualifier (spec.md §4.1's
// Distance breaks ties in favor of the closest match), checking parent
// registries on a local miss.
func (r *Registry) Lookup(typ reflect.Type, qualifier Qualifier) (Satisfaction, bool) {
	r.m.RLock()
	regs := r.byType[typ]
	var best Satisfaction
	bestDist := -1
	for _, reg := range regs {
		d := Distance(reg.qualifier, qualifier)
		if d < 0 {
			continue
		}
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = reg.satisfaction
		}
	}
	r.m.RUnlock()
	if best != nil {
		return best, true
	}
	if r.parent != nil {
		return r.parent.Lookup(typ, qualifier)
	}
	return nil, false
}

// Clone returns an independent copy of r's own bindings (not its
// parent's), the same "copy, don't share, the mutable state" shape as
// the teacher's registry.clone().
func (r *Registry) Clone() *Registry {
	r.m.RLock()
	defer r.m.RUnlock()
	clone := NewRegistry()
	clone.parent = r.parent
	for typ, regs := range r.byType {
		copied := make([]registration, len(regs))
		copy(copied, regs)
		clone.byType[typ] = copied
	}
	return clone
}

// AsBindingFunction returns a BindingFunction that terminates resolution
// of any desire it has a registered satisfaction for; it has no opinion
// (returns nil, nil) otherwise.
func (r *Registry) AsBindingFunction() BindingFunction {
	return func(ctx *InjectionContext, desire Desire) (*BindingResult, error) {
		sat, ok := r.Lookup(desire.Type(), desire.Qualifier())
		if !ok {
			return nil, nil
		}
		return Terminal(desire.WithSatisfaction(sat)), nil
	}
}
