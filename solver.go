package grapht

import (
	"fmt"
	"log/slog"
)

// Solver is the resolution engine (spec.md §6): it owns the shared
// output graph and the ordered list of binding functions consulted for
// every desire.
//
// A Solver is not safe for concurrent resolution (spec.md §5). Callers
// resolving concurrently must use separate instances or external
// locking; the shared output graph is mutated only inside Resolve and
// TryResolve.
type Solver struct {
	bindingFunctions []BindingFunction
	maxDepth         int
	logger           *slog.Logger
	graph            *Graph[Desire]
}

// SolverOption configures a Solver at construction time.
type SolverOption func(*Solver)

// WithLogger attaches the structured logger a Solver uses to trace, at
// Debug level, the start, failure and result of each resolve call.
// Individual binding attempts, skip-discards and merge decisions are not
// logged. The default is slog.Default().
func WithLogger(logger *slog.Logger) SolverOption {
	return func(s *Solver) { s.logger = logger }
}

// NewSolver creates a Solver that consults bindingFunctions, in order,
// for every desire, bounding any single resolution chain to maxDepth
// context-path entries.
//
// It rejects maxDepth < 1 and a missing or empty binding-function list
// (spec.md §6's constructor contract).
func NewSolver(bindingFunctions []BindingFunction, maxDepth int, opts ...SolverOption) (*Solver, error) {
	if maxDepth < 1 {
		return nil, newInvalidBindingError(fmt.Sprintf("max_depth must be >= 1, got %d", maxDepth), Desire{})
	}
	if len(bindingFunctions) == 0 {
		return nil, newInvalidBindingError("at least one binding function is required", Desire{})
	}
	s := &Solver{
		bindingFunctions: bindingFunctions,
		maxDepth:         maxDepth,
		logger:           slog.Default(),
		graph:            NewGraph[Desire](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Graph returns the shared output graph accumulated across every
// Resolve/TryResolve call so far.
func (s *Solver) Graph() *Graph[Desire] { return s.graph }

// RootNode returns the shared output graph's root.
func (s *Solver) RootNode() *Node { return s.graph.Root() }

// Resolve resolves desire against the shared graph, adding whatever new
// nodes and edges the request requires. It returns nil on success, or
// one of the *SolverError kinds on failure; the graph is left in
// whatever partial state the failed attempt produced (spec.md §7).
func (s *Solver) Resolve(desire Desire) error {
	_, err := s.resolve(desire)
	return err
}

// TryResolve resolves desire the same way Resolve does, except its
// injection point is treated as nullable: a failure that would
// otherwise be UnresolvableDependency resolves to a null Satisfaction
// instead (spec.md §8 scenario 5). Other failure kinds — CyclicDependency,
// InvalidBinding, MultipleBindings — still propagate as errors.
func (s *Solver) TryResolve(desire Desire) (Satisfaction, error) {
	return s.resolve(withNullablePoint(desire))
}

func (s *Solver) resolve(desire Desire) (Satisfaction, error) {
	tree := NewTree()
	ctx := NewInjectionContext()
	s.logger.Debug("grapht: resolving", "desire", desire.Format())

	if err := resolveFully(s.bindingFunctions, desire, tree.Root(), tree, ctx, s.maxDepth); err != nil {
		s.logger.Debug("grapht: resolution failed", "desire", desire.Format(), "error", err)
		return nil, err
	}
	if err := merge(tree, s.graph); err != nil {
		return nil, err
	}

	edge, ok := s.graph.OutgoingEdge(s.graph.Root(), func(d Desire) bool { return d.Equal(desire) })
	if !ok {
		// Unreachable in practice: resolveFully having succeeded means
		// merge always produces (or already had) a matching root edge.
		return nil, newUnresolvableDependencyError(desire, ctx)
	}
	s.logger.Debug("grapht: resolved", "desire", desire.Format(), "satisfaction", edge.Tail.Satisfaction().Key())
	return edge.Tail.Satisfaction(), nil
}

func withNullablePoint(d Desire) Desire {
	p := d.InjectionPoint()
	nullable := NewInjectionPoint(p.Kind(), p.Type(), p.Qualifier(), true, p.Attributes())
	return NewDesire(d.Type(), d.Qualifier(), nullable)
}

// MustResolve is Resolve, panicking on failure: a convenience for
// startup wiring code where a failed resolution is a program defect
// rather than a recoverable condition (adapted from the teacher's
// Container.MustResolve).
func (s *Solver) MustResolve(desire Desire) {
	if err := s.Resolve(desire); err != nil {
		panic(err)
	}
}

// MustTryResolve is TryResolve, panicking on any error other than an
// absent optional value.
func (s *Solver) MustTryResolve(desire Desire) Satisfaction {
	sat, err := s.TryResolve(desire)
	if err != nil {
		panic(err)
	}
	return sat
}
