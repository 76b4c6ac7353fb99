package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/taxoviz/pkg/errors"
	"github.com/matzehuels/taxoviz/pkg/graph"
)

// ReadJSON decodes a JSON graph from r.
//
// The input must be an object with "nodes" and "edges" arrays and may name
// the traversal root:
//
//	{
//	  "root": "ex:animals",
//	  "nodes": [{"id": "ex:animals", "label": "Animals", "depth": 0}],
//	  "edges": []
//	}
//
// When "root" is set it is inserted first so that [graph.Graph.Root]
// returns it; otherwise the first listed node is the root.
//
// ReadJSON returns an INVALID_FORMAT error if the JSON is malformed, a node
// ID is empty or repeated, the root is not among the nodes, or an edge
// references an unknown node. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}

	nodes := data.Nodes
	if data.Root != "" {
		idx := -1
		for i, n := range nodes {
			if n.ID == data.Root {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "root %s is not a node", data.Root)
		}
		nodes = append([]node{nodes[idx]}, append(nodes[:idx:idx], nodes[idx+1:]...)...)
	}

	g := graph.New()
	for _, n := range nodes {
		added, err := g.AddNode(graph.Node{ID: n.ID, Label: n.Label, Depth: n.Depth, Meta: n.Meta})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "node %q", n.ID)
		}
		if !added {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "duplicate node %s", n.ID)
		}
	}
	for _, e := range data.Edges {
		if _, err := g.AddEdge(graph.Edge{From: e.From, To: e.To}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "edge %s->%s", e.From, e.To)
		}
	}
	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
// It returns the same validation errors as [ReadJSON]; a missing file is
// reported as FILE_NOT_FOUND.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
