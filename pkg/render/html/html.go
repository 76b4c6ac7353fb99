package html

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"regexp"
	"slices"

	"github.com/matzehuels/taxoviz/pkg/errors"
	"github.com/matzehuels/taxoviz/pkg/graph"
)

// Physics solvers understood by vis-network.
const (
	SolverForceAtlas2   = "forceAtlas2Based"
	SolverBarnesHut     = "barnesHut"
	SolverRepulsion     = "repulsion"
	SolverHierarchical  = "hierarchicalRepulsion"
	DefaultSolver       = SolverForceAtlas2
	DefaultHeight       = "750px"
	DefaultWidth        = "100%"
	DefaultAssetBaseURL = "https://cdnjs.cloudflare.com/ajax/libs/vis-network/9.1.2/dist"
)

// Solvers lists the accepted values of [Options.Solver].
var Solvers = []string{SolverForceAtlas2, SolverBarnesHut, SolverRepulsion, SolverHierarchical}

const (
	rootColor  = "#f59e0b"
	nodeColor  = "#97c2fc"
	rootSize   = 25
	nodeSize   = 15
	edgeColor  = "#848484"
	arrowsMode = "to"
)

//go:embed page.html.tmpl
var pageTemplate string

var page = template.Must(template.New("page").Parse(pageTemplate))

// Options configures the HTML page.
type Options struct {
	Title  string // Page heading; defaults to the root label
	Height string // CSS height of the canvas (default 750px)
	Width  string // CSS width of the canvas (default 100%)
	Solver string // vis-network physics solver (default forceAtlas2Based)

	// Hierarchical lays nodes out in levels by traversal depth instead of
	// a free force layout.
	Hierarchical bool

	// AssetBaseURL is where vis-network.min.js and .css are loaded from.
	AssetBaseURL string
}

// WithDefaults returns a copy of o with empty fields set to defaults.
func (o Options) WithDefaults() Options {
	if o.Height == "" {
		o.Height = DefaultHeight
	}
	if o.Width == "" {
		o.Width = DefaultWidth
	}
	if o.Solver == "" {
		o.Solver = DefaultSolver
	}
	if o.AssetBaseURL == "" {
		o.AssetBaseURL = DefaultAssetBaseURL
	}
	return o
}

// dimensionRe matches the CSS lengths accepted for the canvas size.
var dimensionRe = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?(px|%|em|rem|vh|vw)$`)

// ValidateDimension returns an INVALID_INPUT error unless s is a plain CSS
// length such as "750px" or "100%".
func ValidateDimension(s string) error {
	if !dimensionRe.MatchString(s) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid CSS dimension: %q", s)
	}
	return nil
}

// Validate checks the solver and canvas size. Empty fields are accepted;
// [Options.WithDefaults] fills them in.
func (o Options) Validate() error {
	o = o.WithDefaults()
	if err := ValidateDimension(o.Height); err != nil {
		return err
	}
	if err := ValidateDimension(o.Width); err != nil {
		return err
	}
	return ValidateSolver(o.Solver)
}

// ValidateSolver returns an INVALID_INPUT error unless s names a solver.
func ValidateSolver(s string) error {
	if !slices.Contains(Solvers, s) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid physics solver: %q", s)
	}
	return nil
}

type visNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Title string `json:"title"`
	Level int    `json:"level"`
	Shape string `json:"shape"`
	Size  int    `json:"size"`
	Color string `json:"color"`
}

type visEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Arrows string `json:"arrows"`
	Color  string `json:"color"`
}

type pageData struct {
	Title     string
	Height    template.CSS
	Width     template.CSS
	AssetBase string
	Nodes     []visNode
	Edges     []visEdge
	Options   map[string]any
}

// Render produces a self-contained HTML page that draws g as a directed
// force graph. Node text is the resolved label and the hover title is the
// concept definition, or the identifier when there is none. The first node
// of g is treated as the root and highlighted.
//
// Node and edge data are emitted in discovery order, so the same graph
// always renders to the same bytes.
func Render(g *graph.Graph, opts Options) ([]byte, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	data := pageData{
		Title:     opts.Title,
		Height:    template.CSS(opts.Height),
		Width:     template.CSS(opts.Width),
		AssetBase: opts.AssetBaseURL,
		Nodes:     make([]visNode, 0, g.NodeCount()),
		Edges:     make([]visEdge, 0, g.EdgeCount()),
		Options:   networkOptions(opts),
	}
	if data.Title == "" {
		if root, ok := g.Root(); ok {
			data.Title = root.DisplayLabel()
		}
	}

	for i, n := range g.Nodes() {
		vn := visNode{
			ID:    n.ID,
			Label: n.DisplayLabel(),
			Title: n.ID,
			Level: n.Depth,
			Shape: "dot",
			Size:  nodeSize,
			Color: nodeColor,
		}
		if def := n.Definition(); def != "" {
			vn.Title = def
		}
		if i == 0 {
			vn.Size = rootSize
			vn.Color = rootColor
		}
		data.Nodes = append(data.Nodes, vn)
	}
	for _, e := range g.Edges() {
		data.Edges = append(data.Edges, visEdge{From: e.From, To: e.To, Arrows: arrowsMode, Color: edgeColor})
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "execute html template")
	}
	return buf.Bytes(), nil
}

// networkOptions builds the vis-network options object. Maps are encoded
// with sorted keys, which keeps the page deterministic.
func networkOptions(opts Options) map[string]any {
	physics := map[string]any{
		"enabled": true,
		"solver":  opts.Solver,
	}
	switch opts.Solver {
	case SolverForceAtlas2:
		physics[opts.Solver] = map[string]any{
			"gravitationalConstant": -50,
			"centralGravity":        0.01,
			"springLength":          100,
			"springConstant":        0.08,
			"damping":               0.4,
			"avoidOverlap":          0,
		}
	}

	out := map[string]any{
		"physics": physics,
		"edges": map[string]any{
			"smooth": map[string]any{"enabled": true, "type": "dynamic"},
		},
		"interaction": map[string]any{"hover": true, "navigationButtons": false},
	}
	if opts.Hierarchical {
		out["layout"] = map[string]any{
			"hierarchical": map[string]any{
				"enabled":    true,
				"direction":  "UD",
				"sortMethod": "directed",
			},
		}
	}
	return out
}

// String satisfies fmt.Stringer for debugging option dumps.
func (o Options) String() string {
	o = o.WithDefaults()
	return fmt.Sprintf("solver=%s height=%s width=%s hierarchical=%t", o.Solver, o.Height, o.Width, o.Hierarchical)
}
