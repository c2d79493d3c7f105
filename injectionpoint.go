package grapht

import (
	"fmt"
	"reflect"
)

// PointKind identifies the shape of an InjectionPoint.
type PointKind int

const (
	// FieldPoint is a value injected directly into a struct field.
	FieldPoint PointKind = iota
	// ConstructorParamPoint is a value injected as a constructor argument.
	ConstructorParamPoint
	// SetterParamPoint is a value injected as a setter method argument.
	SetterParamPoint
	// NoArgumentPoint is used for the root desire of a resolve call,
	// which has no real injection point.
	NoArgumentPoint
)

func (k PointKind) String() string {
	switch k {
	case FieldPoint:
		return "field"
	case ConstructorParamPoint:
		return "constructor parameter"
	case SetterParamPoint:
		return "setter parameter"
	case NoArgumentPoint:
		return "no-argument"
	default:
		return fmt.Sprintf("%+v", int(k))
	}
}

// InjectionPoint is a location into which a value is placed: a
// constructor parameter, a setter parameter, or a field. It is
// immutable.
type InjectionPoint struct {
	kind       PointKind
	typ        reflect.Type
	qualifier  Qualifier
	nullable   bool
	attributes map[string]interface{}
}

// NewInjectionPoint creates an InjectionPoint. attrs may be nil.
func NewInjectionPoint(
	kind PointKind,
	typ reflect.Type,
	qualifier Qualifier,
	nullable bool,
	attrs map[string]interface{},
) InjectionPoint {
	return InjectionPoint{
		kind:       kind,
		typ:        typ,
		qualifier:  qualifier,
		nullable:   nullable,
		attributes: attrs,
	}
}

// Kind reports the shape of this injection point.
func (p InjectionPoint) Kind() PointKind { return p.kind }

// Type is the requested type.
func (p InjectionPoint) Type() reflect.Type { return p.typ }

// Qualifier is the requested qualifier, or nil for the default.
func (p InjectionPoint) Qualifier() Qualifier { return p.qualifier }

// Nullable reports whether an absent (null) satisfaction is legal here.
func (p InjectionPoint) Nullable() bool { return p.nullable }

// Attributes returns the attributes carried by this injection point,
// pushed onto the InjectionContext frame created when a satisfaction for
// it is chosen.
func (p InjectionPoint) Attributes() map[string]interface{} { return p.attributes }
