/*
Package grapht provides the resolution engine of a dependency solver:
given an ordered chain of binding functions, it resolves a typed,
qualified Desire into a tree of Satisfactions and folds that tree into a
shared, deduplicated output Graph.

Basics

A Desire names a type, an optional Qualifier, and the InjectionPoint it
would be placed into. A Solver asks its BindingFunctions, in priority
order, what the next step towards a concrete Satisfaction for that
Desire is; a BindingFunction may rewrite the Desire and continue, or
terminate the search. The loop that drives this is the fixpoint
resolver (see resolver.go); the recursive descent into a Satisfaction's
own dependencies is the tree builder (see tree.go); folding the
resulting per-request tree into the shared graph is the merger (see
merger.go).

Example:
	type Engine interface{ Start() }

	type engineImpl struct{}

	func (e *engineImpl) Start() {}

	registry := grapht.NewRegistry()
	engineType, _ := grapht.DesireFor((*Engine)(nil), nil)
	registry.Bind(engineType.Type(), nil, grapht.NewClassSatisfaction(engineType.Type(), nil))

	solver, err := grapht.NewSolver([]grapht.BindingFunction{registry.AsBindingFunction()}, 100)
	if err != nil {
		panic(err)
	}
	if err := solver.Resolve(engineType); err != nil {
		panic(err)
	}

Qualifiers

A Qualifier refines a type-based request (e.g. "the primary Engine" vs
"the backup Engine"). Qualifiers may declare a parent, forming a
shallow inheritance chain resolved by Distance and Inherits; a
qualifier marked InheritsDefault additionally matches a request for no
qualifier at all.

Skippable Defaults

A binding may be marked skip-if-unusable: if one of its own
dependencies cannot be resolved, the whole candidate is discarded as
though it had never been offered, and the solver falls through to the
next binding function. TryResolve additionally treats the top-level
request itself as nullable, reporting an otherwise-unresolvable request
as a null Satisfaction rather than an error.

Concurrency

A Solver is not safe for concurrent resolution: Resolve and TryResolve
mutate the shared output graph in place. Callers resolving concurrently
should use separate Solver instances.
*/
package grapht
