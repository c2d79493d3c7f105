package grapht

import (
	"reflect"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registry", func() {
	var r *Registry

	BeforeEach(func() {
		r = NewRegistry()
	})

	It("returns the bound satisfaction for an unqualified type", func() {
		sat := NewClassSatisfaction(reflect.TypeOf(engine{}), nil)
		r.Bind(reflect.TypeOf(engine{}), nil, sat)

		got, ok := r.Lookup(reflect.TypeOf(engine{}), nil)
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(sat))
	})

	It("reports a miss for an unbound type", func() {
		_, ok := r.Lookup(reflect.TypeOf(engine{}), nil)
		Expect(ok).To(BeFalse())
	})

	It("replaces a prior binding for the same (type, qualifier)", func() {
		sat1 := NewClassSatisfaction(reflect.TypeOf(engine{}), nil)
		sat2 := NewClassSatisfaction(reflect.TypeOf(engine{}), nil)
		r.Bind(reflect.TypeOf(engine{}), nil, sat1)
		r.Bind(reflect.TypeOf(engine{}), nil, sat2)

		got, ok := r.Lookup(reflect.TypeOf(engine{}), nil)
		Expect(ok).To(BeTrue())
		Expect(got).To(BeIdenticalTo(sat2))
	})

	It("picks the closest-inheriting qualifier binding", func() {
		primary := NewQualifier("primary")
		exact := NewClassSatisfaction(reflect.TypeOf(engine{}), nil)
		def := NewClassSatisfaction(reflect.TypeOf(engine{}), nil)
		r.Bind(reflect.TypeOf(engine{}), primary, exact)
		r.Bind(reflect.TypeOf(engine{}), nil, def)

		got, ok := r.Lookup(reflect.TypeOf(engine{}), primary)
		Expect(ok).To(BeTrue())
		Expect(got).To(BeIdenticalTo(exact))
	})

	It("falls back to the parent registry on a local miss", func() {
		parent := NewRegistry()
		sat := NewClassSatisfaction(reflect.TypeOf(engine{}), nil)
		parent.Bind(reflect.TypeOf(engine{}), nil, sat)

		scoped := NewScopedRegistry(parent)
		got, ok := scoped.Lookup(reflect.TypeOf(engine{}), nil)
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(sat))
	})

	It("prefers a local binding over the parent's", func() {
		parent := NewRegistry()
		parentSat := NewClassSatisfaction(reflect.TypeOf(engine{}), nil)
		parent.Bind(reflect.TypeOf(engine{}), nil, parentSat)

		scoped := NewScopedRegistry(parent)
		localSat := NewClassSatisfaction(reflect.TypeOf(engine{}), nil)
		scoped.Bind(reflect.TypeOf(engine{}), nil, localSat)

		got, ok := scoped.Lookup(reflect.TypeOf(engine{}), nil)
		Expect(ok).To(BeTrue())
		Expect(got).To(BeIdenticalTo(localSat))
	})

	It("clones its own bindings independently of the original", func() {
		sat := NewClassSatisfaction(reflect.TypeOf(engine{}), nil)
		r.Bind(reflect.TypeOf(engine{}), nil, sat)
		clone := r.Clone()

		newSat := NewClassSatisfaction(reflect.TypeOf(engine{}), nil)
		clone.Bind(reflect.TypeOf(engine{}), nil, newSat)

		got, _ := r.Lookup(reflect.TypeOf(engine{}), nil)
		Expect(got).To(BeIdenticalTo(sat), "mutating the clone must not affect the original")
	})

	It("exposes itself as a terminal BindingFunction", func() {
		sat := NewClassSatisfaction(reflect.TypeOf(engine{}), nil)
		r.Bind(reflect.TypeOf(engine{}), nil, sat)
		fn := r.AsBindingFunction()

		d, _ := DesireFor((*engine)(nil), nil)
		result, err := fn(NewInjectionContext(), d)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).NotTo(BeNil())
		Expect(result.Terminate).To(BeTrue())
		got, ok := result.Desire.Satisfaction()
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(sat))
	})

	It("has no opinion as a BindingFunction when nothing is bound", func() {
		fn := r.AsBindingFunction()
		d, _ := DesireFor((*engine)(nil), nil)
		result, err := fn(NewInjectionContext(), d)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(BeNil())
	})
})
