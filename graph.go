package grapht

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Node is a node of a Graph: the shared output graph a Solver
// accumulates across requests, or the per-request resolution tree
// (spec.md §3 describes the tree itself as "a temporary directed
// graph"). The root node has a nil Satisfaction and is never removed.
type Node struct {
	id  int64
	sat Satisfaction
}

// ID implements gonum's graph.Node, so a Node can be handed directly to
// gonum's topological sort without a translation layer.
func (n *Node) ID() int64 { return n.id }

// Satisfaction is the label of this node, or nil for the root.
func (n *Node) Satisfaction() Satisfaction { return n.sat }

// Edge is a directed edge labelled with L: Desire for the shared output
// graph, []Desire (a fixpoint chain) for a per-request tree.
type Edge[L any] struct {
	Head  *Node
	Tail  *Node
	Label L
}

// Graph is a directed labelled graph parameterized over its edge label
// type L. Node and edge identity is by pointer; labels compare however
// the caller sees fit (OutgoingEdge takes an explicit predicate rather
// than assuming L is comparable; FindBySatisfaction ignores labels).
//
// Sort's reverse-topological order is produced via
// gonum.org/v1/gonum/graph/topo.Sort over an ephemeral
// graph/simple.DirectedGraph snapshot, the same pattern
// belak-go-resolve/resolve.go uses to order constructor nodes: labels
// and, for the output graph, multi-edges between the same pair of nodes
// (spec.md §4.7) live in Graph's own adjacency map because
// simple.DirectedGraph allows neither.
type Graph[L any] struct {
	root   *Node
	nextID int64
	nodes  map[int64]*Node
	out    map[int64][]*Edge[L]
}

// NewGraph creates a graph with its unique, empty-labelled root node.
func NewGraph[L any]() *Graph[L] {
	root := &Node{id: 0}
	return &Graph[L]{
		root:   root,
		nextID: 1,
		nodes:  map[int64]*Node{0: root},
		out:    map[int64][]*Edge[L]{0: nil},
	}
}

// Root returns the graph's unique root node.
func (g *Graph[L]) Root() *Node { return g.root }

// AddNode adds a new node labelled with sat and returns it.
func (g *Graph[L]) AddNode(sat Satisfaction) *Node {
	id := g.nextID
	g.nextID++
	n := &Node{id: id, sat: sat}
	g.nodes[id] = n
	g.out[id] = nil
	return n
}

// AddEdge adds a labelled edge from head to tail. It returns an error if
// either node is not already present in the graph.
func (g *Graph[L]) AddEdge(head, tail *Node, label L) (*Edge[L], error) {
	if _, ok := g.nodes[head.id]; !ok {
		return nil, newInvalidBindingError("AddEdge: head node not present in graph", Desire{})
	}
	if _, ok := g.nodes[tail.id]; !ok {
		return nil, newInvalidBindingError("AddEdge: tail node not present in graph", Desire{})
	}
	e := &Edge[L]{Head: head, Tail: tail, Label: label}
	g.out[head.id] = append(g.out[head.id], e)
	return e, nil
}

// OutgoingEdges returns all edges leaving node.
func (g *Graph[L]) OutgoingEdges(node *Node) []*Edge[L] {
	return g.out[node.id]
}

// OutgoingEdge returns the first outgoing edge of node whose label
// satisfies match, if any.
func (g *Graph[L]) OutgoingEdge(node *Node, match func(L) bool) (*Edge[L], bool) {
	for _, e := range g.out[node.id] {
		if match(e.Label) {
			return e, true
		}
	}
	return nil, false
}

// Nodes returns every node in the graph, including the root.
func (g *Graph[L]) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	return nodes
}

// FindBySatisfaction returns an existing non-root node whose
// satisfaction equals sat (by Key()) and whose outgoing-tail set equals
// tails exactly (spec.md §4.6's sharing invariant), if one exists.
func (g *Graph[L]) FindBySatisfaction(sat Satisfaction, tails []*Node) (*Node, bool) {
	wantKey := sat.Key()
	wantTails := tailSet(tails)
	for id, n := range g.nodes {
		if id == g.root.id || n.sat == nil {
			continue
		}
		if n.sat.Key() != wantKey {
			continue
		}
		if tailSet(edgeTails(g.out[id])) == wantTails {
			return n, true
		}
	}
	return nil, false
}

func edgeTails[L any](edges []*Edge[L]) []*Node {
	tails := make([]*Node, len(edges))
	for i, e := range edges {
		tails[i] = e.Tail
	}
	return tails
}

// tailSet canonicalizes a set of node identities (dependents are
// deduplicated per spec.md §4.6: "set semantics on deps").
func tailSet(nodes []*Node) string {
	seen := map[int64]bool{}
	ids := make([]int64, 0, len(nodes))
	for _, n := range nodes {
		if seen[n.id] {
			continue
		}
		seen[n.id] = true
		ids = append(ids, n.id)
	}
	// simple insertion sort; tail sets are small (branching factor of a
	// single satisfaction's dependencies)
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	key := ""
	for _, id := range ids {
		key += ":" + itoa(id)
	}
	return key
}

func itoa(id int64) string {
	if id == 0 {
		return "0"
	}
	neg := id < 0
	if neg {
		id = -id
	}
	var buf [20]byte
	i := len(buf)
	for id > 0 {
		i--
		buf[i] = byte('0' + id%10)
		id /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Sort returns the nodes reachable from root in reverse-topological
// order: leaves first, root last.
func (g *Graph[L]) Sort(root *Node) []*Node {
	dg := simple.NewDirectedGraph()
	visited := map[int64]bool{}
	var walk func(n *Node)
	walk = func(n *Node) {
		if visited[n.id] {
			return
		}
		visited[n.id] = true
		dg.AddNode(n)
		for _, e := range g.out[n.id] {
			if !visited[e.Tail.id] {
				walk(e.Tail)
			}
			dg.SetEdge(simple.Edge{F: n, T: e.Tail})
		}
	}
	walk(root)

	order, err := topo.Sort(dg)
	if err != nil {
		// The tree/graph is acyclic by construction (spec.md §3); a
		// cycle here would be a defect in the caller, not a condition
		// callers are expected to handle.
		panic(err)
	}

	nodes := make([]*Node, len(order))
	for i, gn := range order {
		nodes[len(order)-1-i] = gn.(*Node)
	}
	return nodes
}

var _ graph.Node = (*Node)(nil)
