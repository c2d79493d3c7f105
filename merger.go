package grapht

// merge folds tree into the shared output graph per spec.md §4.6: a
// reverse-topological walk (leaves first) builds a tree-node ->
// output-node mapping, folding duplicate non-root nodes by
// (satisfaction, tail-set) via Graph.FindBySatisfaction, and
// deduplicating root-level edges by equivalent desire so a shared root
// context cannot diverge across requests.
func merge(tree *Tree, output *Graph[Desire]) error {
	order := tree.Sort(tree.Root())
	mapped := make(map[*Node]*Node, len(order))

	for _, t := range order {
		if t == tree.Root() {
			for _, e := range tree.OutgoingEdges(t) {
				if len(e.Label) == 0 {
					return newInvalidBindingError("root edge has an empty fixpoint chain", Desire{})
				}
				label := e.Label[0]
				tail := mapped[e.Tail]
				if _, exists := output.OutgoingEdge(output.Root(), func(d Desire) bool { return d.Equal(label) }); exists {
					continue
				}
				if _, err := output.AddEdge(output.Root(), tail, label); err != nil {
					return err
				}
			}
			continue
		}

		edges := tree.OutgoingEdges(t)
		tails := make([]*Node, 0, len(edges))
		seen := map[int64]bool{}
		for _, e := range edges {
			tail := mapped[e.Tail]
			if seen[tail.ID()] {
				continue
			}
			seen[tail.ID()] = true
			tails = append(tails, tail)
		}

		if existing, ok := output.FindBySatisfaction(t.Satisfaction(), tails); ok {
			mapped[t] = existing
			continue
		}

		n := output.AddNode(t.Satisfaction())
		mapped[t] = n
		added := map[int64]bool{}
		for _, e := range edges {
			tail := mapped[e.Tail]
			if added[tail.ID()] {
				continue
			}
			added[tail.ID()] = true
			if len(e.Label) == 0 {
				return newInvalidBindingError("edge has an empty fixpoint chain", Desire{})
			}
			if _, err := output.AddEdge(n, tail, e.Label[0]); err != nil {
				return err
			}
		}
	}
	return nil
}
