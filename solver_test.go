package grapht

import (
	"errors"
	"reflect"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type ifaceI struct{}
type implI struct{}

func terminalBinding(typ reflect.Type, sat Satisfaction) BindingFunction {
	return func(ctx *InjectionContext, desire Desire) (*BindingResult, error) {
		if desire.Type() != typ {
			return nil, nil
		}
		return Terminal(desire.WithSatisfaction(sat)), nil
	}
}

var _ = Describe("Solver construction", func() {
	It("rejects a max_depth below 1", func() {
		_, err := NewSolver([]BindingFunction{terminalBinding(reflect.TypeOf(implI{}), NewClassSatisfaction(reflect.TypeOf(implI{}), nil))}, 0)
		Expect(err).To(HaveOccurred())
	})

	It("rejects an empty binding-function list", func() {
		_, err := NewSolver(nil, 10)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Solver end-to-end scenarios", func() {
	It("scenario 1: trivial — I bound to Impl with no dependencies", func() {
		implSat := NewClassSatisfaction(reflect.TypeOf(implI{}), nil)
		solver, err := NewSolver([]BindingFunction{terminalBinding(reflect.TypeOf(ifaceI{}), implSat)}, 10)
		Expect(err).NotTo(HaveOccurred())

		iDesire, _ := DesireFor((*ifaceI)(nil), nil)
		Expect(solver.Resolve(iDesire)).To(Succeed())

		Expect(solver.Graph().Nodes()).To(HaveLen(2), "root and one Impl node")
		edges := solver.Graph().OutgoingEdges(solver.RootNode())
		Expect(edges).To(HaveLen(1))
		Expect(edges[0].Tail.Satisfaction()).To(Equal(implSat))
	})

	It("scenario 2: a shared dependency reached via two paths collapses to one node", func() {
		zDesire, _ := DesireFor((*depZ)(nil), nil)
		xDesire, _ := DesireFor((*depX)(nil), nil)
		yDesire, _ := DesireFor((*depY)(nil), nil)
		aDesire, _ := DesireFor((*depA)(nil), nil)

		zSat := NewClassSatisfaction(reflect.TypeOf(depZ{}), nil)
		xSat := NewClassSatisfaction(reflect.TypeOf(depX{}), []Desire{zDesire})
		ySat := NewClassSatisfaction(reflect.TypeOf(depY{}), []Desire{zDesire})
		aSat := NewClassSatisfaction(reflect.TypeOf(depA{}), []Desire{xDesire, yDesire})

		fns := []BindingFunction{
			terminalBinding(reflect.TypeOf(depA{}), aSat),
			terminalBinding(reflect.TypeOf(depX{}), xSat),
			terminalBinding(reflect.TypeOf(depY{}), ySat),
			terminalBinding(reflect.TypeOf(depZ{}), zSat),
		}
		solver, err := NewSolver(fns, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(solver.Resolve(aDesire)).To(Succeed())

		Expect(solver.Graph().Nodes()).To(HaveLen(5), "root, A, X, Y, Z")
	})

	It("scenario 3: a context-sensitive binding for Q produces two distinct nodes", func() {
		qDesire, _ := DesireFor((*q)(nil), nil)
		xDesire, _ := DesireFor((*ctxX)(nil), nil)
		yDesire, _ := DesireFor((*ctxY)(nil), nil)
		rootDesire, _ := DesireFor((*rootXY)(nil), nil)

		qaSat := NewClassSatisfaction(reflect.TypeOf(qa{}), nil)
		qbSat := NewClassSatisfaction(reflect.TypeOf(qb{}), nil)
		xSat := NewClassSatisfaction(reflect.TypeOf(ctxX{}), []Desire{qDesire})
		ySat := NewClassSatisfaction(reflect.TypeOf(ctxY{}), []Desire{qDesire})
		rootSat := NewClassSatisfaction(reflect.TypeOf(rootXY{}), []Desire{xDesire, yDesire})

		xType := reflect.TypeOf(ctxX{})
		qFn := func(ctx *InjectionContext, desire Desire) (*BindingResult, error) {
			if desire.Type() != reflect.TypeOf(q{}) {
				return nil, nil
			}
			path := ctx.TypePath()
			if len(path) > 0 && path[len(path)-1] == typeKey(xType) {
				return Terminal(desire.WithSatisfaction(qaSat)), nil
			}
			return Terminal(desire.WithSatisfaction(qbSat)), nil
		}

		fns := []BindingFunction{
			terminalBinding(reflect.TypeOf(rootXY{}), rootSat),
			terminalBinding(reflect.TypeOf(ctxX{}), xSat),
			terminalBinding(reflect.TypeOf(ctxY{}), ySat),
			qFn,
		}
		solver, err := NewSolver(fns, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(solver.Resolve(rootDesire)).To(Succeed())

		var qaNodes, qbNodes int
		for _, n := range solver.Graph().Nodes() {
			if n.Satisfaction() == nil {
				continue
			}
			switch n.Satisfaction().ErasedType() {
			case reflect.TypeOf(qa{}):
				qaNodes++
			case reflect.TypeOf(qb{}):
				qbNodes++
			}
		}
		Expect(qaNodes).To(Equal(1))
		Expect(qbNodes).To(Equal(1))
	})

	It("scenario 4: a skippable default resolves when its own dependency is satisfied", func() {
		innerDesire, _ := DesireFor((*inner)(nil), nil)
		svcDesire, _ := DesireFor((*svc)(nil), nil)
		innerSat := NewClassSatisfaction(reflect.TypeOf(inner{}), nil)
		svcImplSat := NewClassSatisfaction(reflect.TypeOf(svcImpl{}), []Desire{innerDesire})

		fns := []BindingFunction{
			terminalOn(reflect.TypeOf(svc{}), svcImplSat, true),
			terminalBinding(reflect.TypeOf(inner{}), innerSat),
		}
		solver, err := NewSolver(fns, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(solver.Resolve(svcDesire)).To(Succeed())

		edges := solver.Graph().OutgoingEdges(solver.RootNode())
		Expect(edges).To(HaveLen(1))
		Expect(edges[0].Tail.Satisfaction()).To(Equal(svcImplSat))
	})

	It("scenario 5: a skippable default is skipped when its dependency is missing", func() {
		innerDesire, _ := DesireFor((*inner)(nil), nil)
		svcImplSat := NewClassSatisfaction(reflect.TypeOf(svcImpl{}), []Desire{innerDesire})

		fns := []BindingFunction{terminalOn(reflect.TypeOf(svc{}), svcImplSat, true)}
		solver, err := NewSolver(fns, 10)
		Expect(err).NotTo(HaveOccurred())

		svcDesire, _ := DesireFor((*svc)(nil), nil)
		Expect(solver.Resolve(svcDesire)).To(HaveOccurred())

		trySolver, err := NewSolver(fns, 10)
		Expect(err).NotTo(HaveOccurred())
		sat, err := trySolver.TryResolve(svcDesire)
		Expect(err).NotTo(HaveOccurred())
		Expect(sat.Instantiable()).To(BeTrue())
		Expect(sat.Key()).To(HavePrefix("null:"))
	})

	It("scenario 6: a cycle fails with CyclicDependency once max_depth is exceeded", func() {
		aDesire, _ := DesireFor((*aT)(nil), nil)
		bDesire, _ := DesireFor((*bT)(nil), nil)
		aSat := NewClassSatisfaction(reflect.TypeOf(aT{}), []Desire{bDesire})
		bSat := NewClassSatisfaction(reflect.TypeOf(bT{}), []Desire{aDesire})

		fns := []BindingFunction{
			terminalBinding(reflect.TypeOf(aT{}), aSat),
			terminalBinding(reflect.TypeOf(bT{}), bSat),
		}
		solver, err := NewSolver(fns, 10)
		Expect(err).NotTo(HaveOccurred())

		err = solver.Resolve(aDesire)
		Expect(err).To(HaveOccurred())
		var solverErr *SolverError
		Expect(errors.As(err, &solverErr)).To(BeTrue())
		Expect(solverErr.Code).To(Equal(ErrCyclicDependency))
	})

	It("is idempotent: resolving the same desire twice adds no new nodes or edges", func() {
		implSat := NewClassSatisfaction(reflect.TypeOf(implI{}), nil)
		solver, err := NewSolver([]BindingFunction{terminalBinding(reflect.TypeOf(ifaceI{}), implSat)}, 10)
		Expect(err).NotTo(HaveOccurred())

		iDesire, _ := DesireFor((*ifaceI)(nil), nil)
		Expect(solver.Resolve(iDesire)).To(Succeed())
		nodeCount := len(solver.Graph().Nodes())
		edgeCount := len(solver.Graph().OutgoingEdges(solver.RootNode()))

		Expect(solver.Resolve(iDesire)).To(Succeed())
		Expect(solver.Graph().Nodes()).To(HaveLen(nodeCount))
		Expect(solver.Graph().OutgoingEdges(solver.RootNode())).To(HaveLen(edgeCount))
	})

	It("boundary: max_depth = 1 accepts a chain of one level and rejects a longer one", func() {
		aDesire, _ := DesireFor((*aT)(nil), nil)
		bDesire, _ := DesireFor((*bT)(nil), nil)
		// A -> B, B has no further dependencies: exactly one level deep.
		aSatShallow := NewClassSatisfaction(reflect.TypeOf(aT{}), []Desire{bDesire})
		bSatLeaf := NewClassSatisfaction(reflect.TypeOf(bT{}), nil)

		shallow, err := NewSolver([]BindingFunction{
			terminalBinding(reflect.TypeOf(aT{}), aSatShallow),
			terminalBinding(reflect.TypeOf(bT{}), bSatLeaf),
		}, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(shallow.Resolve(aDesire)).To(Succeed())

		// A -> B -> A: two levels deep, must be rejected at max_depth=1.
		aSatDeep := NewClassSatisfaction(reflect.TypeOf(aT{}), []Desire{bDesire})
		bSatDeep := NewClassSatisfaction(reflect.TypeOf(bT{}), []Desire{aDesire})
		deep, err := NewSolver([]BindingFunction{
			terminalBinding(reflect.TypeOf(aT{}), aSatDeep),
			terminalBinding(reflect.TypeOf(bT{}), bSatDeep),
		}, 1)
		Expect(err).NotTo(HaveOccurred())
		err = deep.Resolve(aDesire)
		Expect(err).To(HaveOccurred())
		var solverErr *SolverError
		Expect(errors.As(err, &solverErr)).To(BeTrue())
		Expect(solverErr.Code).To(Equal(ErrCyclicDependency))
	})
})

type ctxX struct{}
type ctxY struct{}
type q struct{}
type qa struct{}
type qb struct{}
type rootXY struct{}
