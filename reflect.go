package grapht

import "reflect"

// typeOfPointee returns the non-pointer reflect.Type of v, the
// pointer-unwrapping half of the teacher's GetNamedType, repurposed to
// extract a Desire's type from a nil-pointer example value (e.g.
// DesireFor((*Engine)(nil), nil)) instead of from a registration target.
//
// Returns an error when:
//   - v's type is nil (v was passed as untyped nil)
//   - v isn't a pointer
func typeOfPointee(v interface{}) (reflect.Type, error) {
	typ := reflect.TypeOf(v)
	if typ == nil {
		return nil, newInvalidBindingError("value has no type information (nil)", Desire{})
	}
	if typ.Kind() != reflect.Ptr {
		return nil, newInvalidBindingError("value must be a pointer, e.g. (*T)(nil)", Desire{})
	}
	for typ.Elem().Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	return typ.Elem(), nil
}
