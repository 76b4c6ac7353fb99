package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/taxoviz/pkg/errors"
	"github.com/matzehuels/taxoviz/pkg/taxonomy"
)

// renderCommand creates the main conversion command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Write one visualization per top-level concept",
		Long: `Render loads a JSON-LD SKOS taxonomy, walks every top-level concept of
its concept scheme breadth-first and writes <label>_taxonomy.<format> for
each branch.

The input defaults to ./custom_knowledge_taxonomy.json. Settings can also
come from ./taxoviz.toml or ./taxoviz.yaml; flags take precedence.`,
		Example: `  taxoviz render
  taxoviz render taxonomy.json -o site/ -f html,svg
  taxoviz render --root ex:animals --depth 2 --lang de`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			cfg, err := flags.resolve(cmd, input)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg)
		},
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) runRender(ctx context.Context, cfg Config) error {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "create output directory %s", cfg.OutputDir)
	}

	runner, err := c.newRunner(cfg.NoCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	tax, err := runner.Load(ctx, cfg.Input, taxonomy.Options{Language: cfg.Language})
	if err != nil {
		return err
	}

	var spin *Spinner
	if c.Logger.GetLevel() > log.DebugLevel {
		spin = newSpinner(ctx, fmt.Sprintf("Exporting %d branches", len(tax.Roots())))
		spin.Start()
	}
	results, runErr := runner.Run(ctx, tax, cfg.pipelineOptions())
	if spin != nil {
		spin.Stop()
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	failed := 0
	for _, r := range results {
		for _, f := range r.Files {
			printSaved(f)
		}
		if r.Err != nil {
			failed++
			printError("%s: %s", r.Label, errors.UserMessage(r.Err))
		}
	}
	if runErr != nil {
		if len(results) == 0 {
			return runErr
		}
		return fmt.Errorf("%d of %d branches failed", failed, len(results))
	}
	if len(results) == 0 {
		printWarning("Concept scheme has no top-level concepts")
		return nil
	}

	prog.done(fmt.Sprintf("Exported %d branches", len(results)))
	return nil
}
