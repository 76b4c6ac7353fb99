package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/taxoviz/pkg/graph"
	"github.com/matzehuels/taxoviz/pkg/io"
	"github.com/matzehuels/taxoviz/pkg/render"
	"github.com/matzehuels/taxoviz/pkg/render/html"
	"github.com/matzehuels/taxoviz/pkg/render/nodelink"
)

// Render produces one artifact for g in the given format without caching.
func Render(ctx context.Context, g *graph.Graph, format string, opts Options) ([]byte, error) {
	switch format {
	case render.FormatHTML:
		return html.Render(g, opts.HTML)
	case render.FormatDOT:
		return []byte(nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed})), nil
	case render.FormatSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed}))
	case render.FormatJSON:
		var buf bytes.Buffer
		if err := io.WriteJSON(g, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
