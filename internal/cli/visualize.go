package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/taxoviz/pkg/errors"
	"github.com/matzehuels/taxoviz/pkg/io"
	"github.com/matzehuels/taxoviz/pkg/pipeline"
	"github.com/matzehuels/taxoviz/pkg/render"
	"github.com/matzehuels/taxoviz/pkg/render/html"
)

// visualizeCommand creates the visualize command for re-rendering an
// exported branch graph.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "visualize [graph.json]",
		Short: "Render a branch graph exported with --format json",
		Long: `Render a branch graph exported with --format json.

The JSON export records exactly the nodes and edges of one branch, so it can
be edited or produced by other tools and rendered again without the
original taxonomy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = render.ParseFormats(formatsStr)
			return c.runVisualize(cmd.Context(), args[0], opts, noCache)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", pipeline.DefaultOutputDir, "directory for the generated files")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): html (default), svg, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.HTML.Solver, "solver", html.DefaultSolver, "physics solver")
	cmd.Flags().BoolVar(&opts.HTML.Hierarchical, "hierarchical", false, "lay out nodes in levels by depth")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show depth and metadata in dot/svg labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the SVG render cache")

	return cmd
}

func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, noCache bool) error {
	g, err := io.ImportJSON(input)
	if err != nil {
		return err
	}
	root, ok := g.Root()
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "%s contains no nodes", input)
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "create output directory %s", opts.OutputDir)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	files, cached, err := runner.ExportWithCacheInfo(ctx, g, root.DisplayLabel(), opts)
	for _, f := range files {
		printSaved(f)
	}
	if err != nil {
		return err
	}
	printStats(g.NodeCount(), g.EdgeCount(), cached)
	return nil
}
