package grapht

import (
	"reflect"
)

// Desire is a typed, possibly-qualified request for a value to be
// injected at a specific InjectionPoint. It is immutable; a Desire that
// has already been matched to a concrete Satisfaction carries it, making
// it "instantiable".
type Desire struct {
	typ          reflect.Type
	qualifier    Qualifier
	point        InjectionPoint
	satisfaction Satisfaction
}

// NewDesire creates a Desire for typ, optionally qualified, at point.
func NewDesire(typ reflect.Type, qualifier Qualifier, point InjectionPoint) Desire {
	return Desire{typ: typ, qualifier: qualifier, point: point}
}

// DesireFor builds a root Desire from a nil-pointer example value, the
// same ergonomic the teacher's Register/RegisterNamed calls use for
// implementation types (e.g. DesireFor((*Engine)(nil), nil)).
func DesireFor(v interface{}, qualifier Qualifier) (Desire, error) {
	typ, err := typeOfPointee(v)
	if err != nil {
		return Desire{}, err
	}
	point := NewInjectionPoint(NoArgumentPoint, typ, qualifier, false, nil)
	return NewDesire(typ, qualifier, point), nil
}

// WithSatisfaction returns a copy of d with its satisfaction attached,
// i.e. the terminal step of the resolver fixpoint loop (spec.md §4.3).
func (d Desire) WithSatisfaction(s Satisfaction) Desire {
	d.satisfaction = s
	return d
}

// Type is the desired type.
func (d Desire) Type() reflect.Type { return d.typ }

// Qualifier is the desired qualifier, or nil for the default.
func (d Desire) Qualifier() Qualifier { return d.qualifier }

// InjectionPoint is where this value is needed.
func (d Desire) InjectionPoint() InjectionPoint { return d.point }

// Satisfaction returns the chosen satisfaction, if any.
func (d Desire) Satisfaction() (Satisfaction, bool) {
	if d.satisfaction == nil {
		return nil, false
	}
	return d.satisfaction, true
}

// Instantiable reports whether d already carries a concrete
// satisfaction.
func (d Desire) Instantiable() bool {
	return d.satisfaction != nil && d.satisfaction.Instantiable()
}

// Equal reports structural equality: same type, same qualifier identity,
// same injection-point kind and nullability. Two desires that differ
// only by attached satisfaction (one resolved, one not) are still equal
// for the purposes of the prior-desires visited check (spec.md §4.2).
func (d Desire) Equal(other Desire) bool {
	return d.typ == other.typ &&
		qualifierEqual(d.qualifier, other.qualifier) &&
		d.point.kind == other.point.kind &&
		d.point.nullable == other.point.nullable
}

// Format renders the desire's injection point as "[qualifier:]type",
// the format spec.md §7 requires for user-visible failure messages.
func (d Desire) Format() string {
	typeName := "<nil>"
	if d.typ != nil {
		typeName = d.typ.String()
	}
	return formatQualifier(d.qualifier) + typeName
}
