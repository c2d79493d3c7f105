package grapht

// contextFrame pairs a satisfaction with the attributes of the
// injection point that chose it, one per ancestor in the resolution
// path.
type contextFrame struct {
	satisfaction Satisfaction
	attributes   map[string]interface{}
}

// InjectionContext is the contextual stack of (satisfaction, attributes)
// frames from root to current parent, plus the chain of desires already
// visited while resolving the current injection point (the "prior
// desires"). It is immutable under Push: Push returns a new context with
// one more frame and a freshly reset prior-desires list.
type InjectionContext struct {
	frames       []contextFrame
	priorDesires []Desire
}

// NewInjectionContext creates the root InjectionContext, with an empty
// frame stack and no prior desires.
func NewInjectionContext() *InjectionContext {
	return &InjectionContext{}
}

// Push returns a new context with one more frame appended and a freshly
// reset prior-desires list, the context a dependency of satisfaction is
// resolved under.
func (c *InjectionContext) Push(satisfaction Satisfaction, attributes map[string]interface{}) *InjectionContext {
	frames := make([]contextFrame, len(c.frames)+1)
	copy(frames, c.frames)
	frames[len(c.frames)] = contextFrame{satisfaction, attributes}
	return &InjectionContext{frames: frames}
}

// RecordDesire returns a new context with d appended to the current
// frame's prior-desires list.
func (c *InjectionContext) RecordDesire(d Desire) *InjectionContext {
	prior := make([]Desire, len(c.priorDesires)+1)
	copy(prior, c.priorDesires)
	prior[len(c.priorDesires)] = d
	return &InjectionContext{frames: c.frames, priorDesires: prior}
}

// PriorDesires returns the desires already visited while resolving the
// current injection point.
func (c *InjectionContext) PriorDesires() []Desire {
	return c.priorDesires
}

// HasVisited reports whether d has already been visited in this
// context's prior-desires list (spec.md §4.2/§4.3).
func (c *InjectionContext) HasVisited(d Desire) bool {
	for _, prior := range c.priorDesires {
		if prior.Equal(d) {
			return true
		}
	}
	return false
}

// TypePath returns the erased types of the satisfactions in the current
// injection context, root to current parent.
func (c *InjectionContext) TypePath() []string {
	path := make([]string, len(c.frames))
	for i, f := range c.frames {
		if f.satisfaction == nil {
			path[i] = "<root>"
			continue
		}
		path[i] = typeKey(f.satisfaction.ErasedType())
	}
	return path
}

// Depth reports the length of the current type path, the proxy spec.md
// §4.4 uses for conservative cycle detection instead of identity-based
// cycle detection.
func (c *InjectionContext) Depth() int {
	return len(c.frames)
}
