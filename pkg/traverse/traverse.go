package traverse

import (
	"fmt"

	"github.com/matzehuels/taxoviz/pkg/errors"
	"github.com/matzehuels/taxoviz/pkg/graph"
)

// Source is the read-only view of a taxonomy that a traversal needs.
// *taxonomy.Taxonomy satisfies it.
type Source interface {
	// Label resolves a display label, falling back to the identifier.
	Label(id string) string
	// Definition returns the concept definition or "".
	Definition(id string) string
	// Narrower returns the ordered child identifiers of id.
	Narrower(id string) []string
}

// Options configures a traversal.
type Options struct {
	// MaxDepth stops expansion below this depth. Nodes at MaxDepth are
	// still emitted but their children are not. Zero means unlimited.
	MaxDepth int
}

type item struct {
	id    string
	depth int
}

// Traverse expands rootID breadth-first and returns the reachable concepts
// and the narrower edges followed to reach them.
//
// A concept is marked visited when it is enqueued, and the root is marked
// when the queue is seeded, so each identifier is enqueued at most once even
// when several parents (or a cycle) point at it. Every (parent, child) pair
// is still recorded as an edge. Nodes and edges come out in discovery order.
//
// The root does not have to be defined in src: an unknown root yields a
// single node labelled with its identifier.
func Traverse(src Source, rootID string, opts Options) (*graph.Graph, error) {
	if rootID == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "root id must not be empty")
	}

	g := graph.New()
	visited := map[string]bool{rootID: true}
	if _, err := g.AddNode(newNode(src, rootID, 0)); err != nil {
		return nil, fmt.Errorf("root %s: %w", rootID, err)
	}

	var q Queue[item]
	q.Push(item{id: rootID})

	for q.Len() > 0 {
		cur, _ := q.Pop()
		if opts.MaxDepth > 0 && cur.depth >= opts.MaxDepth {
			continue
		}
		for _, child := range src.Narrower(cur.id) {
			if child == "" {
				continue
			}
			if _, err := g.AddNode(newNode(src, child, cur.depth+1)); err != nil {
				return nil, fmt.Errorf("node %s: %w", child, err)
			}
			if _, err := g.AddEdge(graph.Edge{From: cur.id, To: child}); err != nil {
				return nil, fmt.Errorf("edge %s->%s: %w", cur.id, child, err)
			}
			if !visited[child] {
				visited[child] = true
				q.Push(item{id: child, depth: cur.depth + 1})
			}
		}
	}

	return g, nil
}

func newNode(src Source, id string, depth int) graph.Node {
	n := graph.Node{ID: id, Label: src.Label(id), Depth: depth}
	if def := src.Definition(id); def != "" {
		n.Meta = graph.Metadata{graph.MetaDefinition: def}
	}
	return n
}
