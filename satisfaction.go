package grapht

import (
	"fmt"
	"reflect"
)

// Satisfaction is a chosen way to produce a value for a Desire. Equality
// is structural: two satisfactions are equal iff they would instantiate
// identically given identical dependencies, which Key() captures as a
// comparable string.
type Satisfaction interface {
	// ErasedType is the type this satisfaction produces.
	ErasedType() reflect.Type
	// Dependencies lists the desires this satisfaction's own
	// instantiation induces.
	Dependencies() []Desire
	// Instantiable reports whether this satisfaction can be used
	// directly, without further binding.
	Instantiable() bool
	// Key is a structural-equality key, stable across equal
	// satisfactions regardless of identity.
	Key() string
}

// classSatisfaction constructs a value via a registered constructor,
// whose parameters are its Dependencies.
type classSatisfaction struct {
	typ  reflect.Type
	deps []Desire
}

// NewClassSatisfaction creates a Satisfaction that constructs typ from
// deps.
func NewClassSatisfaction(typ reflect.Type, deps []Desire) Satisfaction {
	return &classSatisfaction{typ: typ, deps: deps}
}

func (s *classSatisfaction) ErasedType() reflect.Type  { return s.typ }
func (s *classSatisfaction) Dependencies() []Desire    { return s.deps }
func (s *classSatisfaction) Instantiable() bool        { return true }
func (s *classSatisfaction) Key() string {
	return fmt.Sprintf("class:%s", typeKey(s.typ))
}

// instanceSatisfaction is a pre-made value; it has no dependencies.
type instanceSatisfaction struct {
	typ   reflect.Type
	value interface{}
}

// NewInstanceSatisfaction creates a Satisfaction wrapping a pre-made
// value.
func NewInstanceSatisfaction(typ reflect.Type, value interface{}) Satisfaction {
	return &instanceSatisfaction{typ: typ, value: value}
}

func (s *instanceSatisfaction) ErasedType() reflect.Type { return s.typ }
func (s *instanceSatisfaction) Dependencies() []Desire   { return nil }
func (s *instanceSatisfaction) Instantiable() bool       { return true }
func (s *instanceSatisfaction) Key() string {
	return fmt.Sprintf("instance:%s:%p", typeKey(s.typ), s.value)
}

// Value returns the wrapped instance.
func (s *instanceSatisfaction) Value() interface{} { return s.value }

// providerSatisfaction delegates construction to a factory, itself
// resolved as a dependency.
type providerSatisfaction struct {
	typ      reflect.Type
	provider Desire
}

// NewProviderSatisfaction creates a Satisfaction that delegates to a
// factory reached via the provider desire.
func NewProviderSatisfaction(typ reflect.Type, provider Desire) Satisfaction {
	return &providerSatisfaction{typ: typ, provider: provider}
}

func (s *providerSatisfaction) ErasedType() reflect.Type { return s.typ }
func (s *providerSatisfaction) Dependencies() []Desire   { return []Desire{s.provider} }
func (s *providerSatisfaction) Instantiable() bool       { return true }
func (s *providerSatisfaction) Key() string {
	return fmt.Sprintf("provider:%s:%s", typeKey(s.typ), s.provider.Format())
}

// nullSatisfaction represents a legally absent value.
type nullSatisfaction struct {
	typ reflect.Type
}

// NullSatisfaction creates a Satisfaction for a legally absent value of
// typ.
func NullSatisfaction(typ reflect.Type) Satisfaction {
	return &nullSatisfaction{typ: typ}
}

func (s *nullSatisfaction) ErasedType() reflect.Type { return s.typ }
func (s *nullSatisfaction) Dependencies() []Desire   { return nil }
func (s *nullSatisfaction) Instantiable() bool       { return true }
func (s *nullSatisfaction) Key() string {
	return fmt.Sprintf("null:%s", typeKey(s.typ))
}

func typeKey(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
