// Package render turns traversed taxonomy branches into visual artifacts.
//
// # Overview
//
// Every top-level branch of a taxonomy is exported in one or more formats:
//
//   - html: a self-contained page embedding an interactive directed
//     force-graph (see [html])
//   - svg: a static node-link diagram laid out by Graphviz (see [nodelink])
//   - dot: the Graphviz source of that diagram
//   - json: the raw node/edge graph (see package io)
//
// This package holds the format registry shared by the CLI, the pipeline and
// the preview server. Use [ValidateFormats] on user input before rendering.
//
// # Determinism
//
// All renderers emit nodes and edges in the graph's discovery order, so
// rendering the same branch twice produces byte-identical output. Only the
// browser-side force layout of the HTML page is randomized, and it is not
// part of the file.
//
// [html]: github.com/matzehuels/taxoviz/pkg/render/html
// [nodelink]: github.com/matzehuels/taxoviz/pkg/render/nodelink
package render
