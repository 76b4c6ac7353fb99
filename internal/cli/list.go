package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/taxoviz/pkg/pipeline"
	"github.com/matzehuels/taxoviz/pkg/taxonomy"
	"github.com/matzehuels/taxoviz/pkg/traverse"
)

// listCommand prints the top-level concepts and the size of each branch.
func (c *CLI) listCommand() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "list [file]",
		Short: "List top-level concepts and their branch sizes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := pipeline.DefaultInput
			if len(args) == 1 {
				input = args[0]
			}
			tax, err := taxonomy.Load(input, taxonomy.Options{Language: lang})
			if err != nil {
				return err
			}
			rendered, err := rootTable(tax)
			if err != nil {
				return err
			}
			id, label := tax.Scheme()
			if label == "" {
				label = id
			}
			fmt.Fprintln(stdout, StyleTitle.Render(label)+" "+StyleDim.Render(fmt.Sprintf("(%d concepts)", tax.Len())))
			fmt.Fprintln(stdout, rendered)
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "preferred label language (e.g. en)")
	return cmd
}

// rootTable renders one row per root: label, identifier, branch size,
// depth and the output file name.
func rootTable(tax *taxonomy.Taxonomy) (string, error) {
	var rows [][]string
	for i, id := range tax.Roots() {
		g, err := traverse.Traverse(tax, id, traverse.Options{})
		if err != nil {
			return "", err
		}
		label := tax.Label(id)
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			label,
			id,
			strconv.Itoa(g.NodeCount()),
			strconv.Itoa(g.MaxDepth()),
			pipeline.OutputName(label, "html"),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Label", "ID", "Concepts", "Depth", "File").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col == 3 || col == 4:
				return lipgloss.NewStyle().Foreground(colorWhite).Align(lipgloss.Right)
			default:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
		})
	return t.Render(), nil
}
