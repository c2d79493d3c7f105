package grapht

// Tree is the per-request resolution tree spec.md §3 builds before
// merging: a Graph whose edges are labelled with the full fixpoint
// chain (§4.3) that produced each child, rather than a single desire.
type Tree = Graph[[]Desire]

// NewTree creates an empty resolution tree with its synthetic,
// nil-satisfaction root.
func NewTree() *Tree { return NewGraph[[]Desire]() }

// resolveFully is the recursive descent of spec.md §4.4: it resolves
// desire via resolveOnce, attaches a node for the resulting
// satisfaction as a child of parent (labelled with the fixpoint chain
// that produced it), and recurses into each of the satisfaction's own
// dependencies.
//
// Skippable defaults (§4.5): if resolveOnce's satisfaction is flagged
// skip-if-unusable and resolving one of its own dependencies fails with
// an unresolvable dependency, the entire subtree is discarded and
// desire is re-resolved as if the skipped binding had never been
// offered — attemptCtx folds in the abandoned chain so the fixpoint
// loop's visited check (spec.md §4.2) forces firstApplicableBinding to
// fall through to a later binding function. Nested skips fall out for
// free: an inner skip failure surfaces as the same UnresolvableDependency
// an outer skippable satisfaction is watching for.
//
// If every attempt is exhausted and desire's injection point is
// nullable, a null satisfaction is substituted instead of failing.
func resolveFully(fns []BindingFunction, desire Desire, parent *Node, t *Tree, ctx *InjectionContext, maxDepth int) error {
	if ctx.Depth() > maxDepth {
		return newCyclicDependencyError(desire, ctx.Depth())
	}

	attemptCtx := ctx
	for {
		sat, chain, skippable, err := resolveOnce(fns, attemptCtx, desire)
		if err != nil {
			if isUnresolvableDependency(err) && desire.InjectionPoint().Nullable() {
				null := t.AddNode(NullSatisfaction(desire.Type()))
				_, edgeErr := t.AddEdge(parent, null, []Desire{desire})
				return edgeErr
			}
			return err
		}

		node := t.AddNode(sat)
		childCtx := ctx.Push(sat, desire.InjectionPoint().Attributes())

		abandoned := false
		for _, dep := range sat.Dependencies() {
			if err := resolveFully(fns, dep, node, t, childCtx, maxDepth); err != nil {
				if skippable && isUnresolvableDependency(err) {
					abandoned = true
					break
				}
				return err
			}
		}
		if !abandoned {
			_, err := t.AddEdge(parent, node, chain)
			return err
		}

		for _, d := range chain {
			attemptCtx = attemptCtx.RecordDesire(d)
		}
		// retry with the remaining binding functions
	}
}

func isUnresolvableDependency(err error) bool {
	se, ok := err.(*SolverError)
	return ok && se.Code == ErrUnresolvableDependency
}
