package grapht

import "fmt"

// Qualifier is an opaque tag attached to a Desire that refines the
// meaning of a type-based request. Qualifiers may declare a parent,
// forming a shallow inheritance chain, and may be marked as matching an
// absent (nil) qualifier on the other side of a request.
//
// A nil Qualifier means "no qualifier" (the default).
type Qualifier interface {
	// Name identifies the qualifier for equality and formatting.
	Name() string
	// Parent returns the qualifier this one inherits from, if any.
	Parent() (Qualifier, bool)
	// InheritsDefault reports whether this qualifier matches a request
	// for the nil (default) qualifier.
	InheritsDefault() bool
}

type qualifier struct {
	name            string
	parent          Qualifier
	inheritsDefault bool
}

// QualifierOption configures a Qualifier built with NewQualifier.
type QualifierOption func(*qualifier)

// WithParent declares the qualifier q inherits from.
func WithParent(q Qualifier) QualifierOption {
	return func(t *qualifier) { t.parent = q }
}

// InheritsDefault marks the qualifier as matching a request for the nil
// qualifier.
func InheritsDefault() QualifierOption {
	return func(t *qualifier) { t.inheritsDefault = true }
}

// NewQualifier creates a new Qualifier tagged with name.
func NewQualifier(name string, opts ...QualifierOption) Qualifier {
	q := &qualifier{name: name}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *qualifier) Name() string { return q.name }

func (q *qualifier) Parent() (Qualifier, bool) {
	if q.parent == nil {
		return nil, false
	}
	return q.parent, true
}

func (q *qualifier) InheritsDefault() bool { return q.inheritsDefault }

func (q *qualifier) String() string { return q.name }

// IsQualifier reports whether t is usable as a qualifier, i.e. non-nil
// and implements Qualifier.
func IsQualifier(t interface{}) bool {
	if t == nil {
		return false
	}
	_, ok := t.(Qualifier)
	return ok
}

// Inherits reports whether qualifier a can satisfy a request for
// qualifier b:
//   - a == b (by Name, including both nil)
//   - a's declared parent, transitively, equals b
//   - b is nil and a is marked InheritsDefault
func Inherits(a, b Qualifier) bool {
	return distance(a, b) >= 0
}

// Distance returns the number of parent hops from a to b, or -1 if a
// does not inherit from b. Identity distance is 0. A default-inheriting
// qualifier has distance 1 to the nil qualifier. Nil-to-nil is 0.
func Distance(a, b Qualifier) int {
	return distance(a, b)
}

func distance(a, b Qualifier) int {
	if qualifierEqual(a, b) {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil && a.InheritsDefault() {
		return 1
	}
	hops := 0
	cur := a
	for {
		parent, ok := cur.Parent()
		if !ok {
			return -1
		}
		hops++
		if qualifierEqual(parent, b) {
			return hops
		}
		cur = parent
	}
}

func qualifierEqual(a, b Qualifier) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Name() == b.Name()
}

func formatQualifier(q Qualifier) string {
	if q == nil {
		return ""
	}
	return fmt.Sprintf("%s:", q.Name())
}
