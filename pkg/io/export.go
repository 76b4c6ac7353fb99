package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/taxoviz/pkg/errors"
	"github.com/matzehuels/taxoviz/pkg/graph"
)

type document struct {
	Root  string `json:"root"`
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID    string         `json:"id"`
	Label string         `json:"label,omitempty"`
	Depth int            `json:"depth"`
	Meta  graph.Metadata `json:"meta,omitempty"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WriteJSON encodes a traversal graph as indented JSON and writes it to w.
// Nodes and edges keep their discovery order and "root" names the first
// node, so the output can be re-imported with [ReadJSON] unchanged.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := document{
		Nodes: make([]node, 0, g.NodeCount()),
		Edges: make([]edge, 0, g.EdgeCount()),
	}
	if root, ok := g.Root(); ok {
		out.Root = root.ID
	}

	for _, n := range g.Nodes() {
		nd := node{ID: n.ID, Depth: n.Depth}
		if n.Label != n.ID {
			nd.Label = n.Label
		}
		if len(n.Meta) > 0 {
			nd.Meta = n.Meta
		}
		out.Nodes = append(out.Nodes, nd)
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edge{From: e.From, To: e.To})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "create %s", path)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "close %s", path)
	}
	return nil
}
