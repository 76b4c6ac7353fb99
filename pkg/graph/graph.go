package graph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// has not been added.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// has not been added.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Metadata stores extra key-value pairs attached to a node, such as the
// concept definition shown as a tooltip.
type Metadata map[string]any

// MetaDefinition is the metadata key holding a concept's skos:definition.
const MetaDefinition = "definition"

// Node is one concept reached during a traversal.
type Node struct {
	ID    string   // Concept identifier
	Label string   // Resolved display label (never empty after AddNode)
	Depth int      // Breadth-first distance from the root
	Meta  Metadata // Never nil after AddNode
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Definition returns the definition stored in metadata, if any.
func (n Node) Definition() string {
	s, _ := n.Meta[MetaDefinition].(string)
	return s
}

// Edge is a directed narrower relation from a parent concept to a child.
type Edge struct {
	From string
	To   string
}

// Graph is the directed node/edge set produced by traversing one branch of
// a taxonomy. Unlike a tree it may contain shared descendants and cycles.
//
// Nodes and edges are kept in insertion order, which for a breadth-first
// traversal is discovery order. That order is what makes exports
// deterministic.
//
// The zero value is not usable; use [New]. A Graph is not safe for
// concurrent mutation.
type Graph struct {
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	edgeSet  map[Edge]struct{}
	outgoing map[string][]string
	incoming map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		edgeSet:  make(map[Edge]struct{}),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds n to the graph. Adding an ID that is already present is a
// no-op and reports false; the first insertion wins. An empty Label is
// replaced by the ID and a nil Meta by an empty map.
func (g *Graph) AddNode(n Node) (bool, error) {
	if n.ID == "" {
		return false, ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return false, nil
	}
	if n.Label == "" {
		n.Label = n.ID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	g.nodes[n.ID] = &n
	g.order = append(g.order, n.ID)
	return true, nil
}

// AddEdge adds the directed edge e between two existing nodes. A repeated
// (From, To) pair is recorded once and reports false.
func (g *Graph) AddEdge(e Edge) (bool, error) {
	if _, ok := g.nodes[e.From]; !ok {
		return false, ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return false, ErrUnknownTargetNode
	}
	if _, dup := g.edgeSet[e]; dup {
		return false, nil
	}
	g.edgeSet[e] = struct{}{}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return true, nil
}

// Node returns a copy of the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Has reports whether id is in the graph's node set.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns copies of all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.order))
	for i, id := range g.order {
		out[i] = *g.nodes[id]
	}
	return out
}

// NodeIDs returns all node IDs in insertion order.
func (g *Graph) NodeIDs() []string { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the IDs this node has edges to, in insertion order.
// The returned slice should not be modified.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the IDs that have edges to this node, in insertion order.
// The returned slice should not be modified.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// Root returns the first node added, which for a traversal is its root.
func (g *Graph) Root() (Node, bool) {
	if len(g.order) == 0 {
		return Node{}, false
	}
	return *g.nodes[g.order[0]], true
}

// MaxDepth returns the greatest node depth, or 0 for an empty graph.
func (g *Graph) MaxDepth() int {
	maxDepth := 0
	for _, n := range g.nodes {
		maxDepth = max(maxDepth, n.Depth)
	}
	return maxDepth
}

// Sinks returns the nodes with no outgoing edges (leaf concepts), in
// insertion order.
func (g *Graph) Sinks() []Node {
	var sinks []Node
	for _, id := range g.order {
		if len(g.outgoing[id]) == 0 {
			sinks = append(sinks, *g.nodes[id])
		}
	}
	return sinks
}
