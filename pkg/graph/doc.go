// Package graph provides the directed concept graph produced by traversing
// one branch of a taxonomy.
//
// # Overview
//
// A [Graph] holds the concepts reachable from a top-level root together
// with the narrower edges followed to reach them. It is what the renderers
// consume: every node carries its resolved display label, its
// breadth-first depth and optional metadata such as the concept definition.
//
// # Ordering
//
// Nodes and edges are stored in insertion order. Traversals insert in
// discovery order, so two runs over the same document produce identical
// node and edge sequences, and therefore identical exports.
//
// # Shared Descendants and Cycles
//
// Taxonomies are not always trees: a concept may have several broader
// concepts and malformed data may even loop. [Graph.AddNode] is idempotent
// per ID and [Graph.AddEdge] records each (From, To) pair once, so a node
// reachable through multiple parents appears once with one incoming edge
// per parent.
//
//	g := graph.New()
//	g.AddNode(graph.Node{ID: "ex:animals", Label: "Animals"})
//	g.AddNode(graph.Node{ID: "ex:mammals", Label: "Mammals", Depth: 1})
//	g.AddEdge(graph.Edge{From: "ex:animals", To: "ex:mammals"})
//
// # Concurrency
//
// Graph instances are not safe for concurrent mutation. Each traversal
// builds its own graph, so separate roots can be processed in parallel.
package graph
