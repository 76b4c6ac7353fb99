// Package nodelink renders traversal graphs as static node-link diagrams.
//
// Where the HTML renderer produces an interactive page, this package emits
// Graphviz DOT source and, through an embedded Graphviz, SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The generated DOT uses a top-to-bottom layout (rankdir=TB) with rounded
// box nodes. The root concept is drawn bold, and concept definitions are
// attached as tooltips so they show on hover in a browser.
//
// Set [Options].Detailed to print the traversal depth and node metadata
// beneath each label.
//
// This package uses [github.com/goccy/go-graphviz], which runs Graphviz as
// WebAssembly; no system installation is required.
package nodelink
