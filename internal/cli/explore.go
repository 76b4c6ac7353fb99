package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/taxoviz/pkg/taxonomy"
)

var (
	treeSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	treeNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	treeDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	treeMatchStyle    = lipgloss.NewStyle().Foreground(colorYellow)
)

// exploreCommand opens the interactive tree browser. Pressing r on a
// concept exports its branch with the same flags as render.
func (c *CLI) exploreCommand() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Browse the taxonomy as an interactive tree",
		Long: `Browse the taxonomy as an interactive tree.

  ↑/↓ j/k   move
  enter     expand or collapse
  /         search labels and definitions
  r         render the selected branch and exit
  q         quit`,
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
			tax, err := taxonomy.Load(cfg.Input, taxonomy.Options{Language: cfg.Language})
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(NewExploreModel(tax), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			m, ok := final.(ExploreModel)
			if !ok || m.Selected == "" {
				return nil
			}
			cfg.Roots = []string{m.Selected}
			return c.runRender(cmd.Context(), cfg)
		},
	}

	flags.register(cmd)
	return cmd
}

// treeRow is one visible line of the tree.
type treeRow struct {
	id       string
	depth    int
	expanded bool
}

// ExploreModel is the bubbletea model for the taxonomy tree browser.
type ExploreModel struct {
	tax    *taxonomy.Taxonomy
	rows   []treeRow
	Cursor int
	Offset int
	Height int

	searching bool
	query     string
	status    string

	// Selected is the concept chosen with r, or "" when the user quit.
	Selected string
}

// NewExploreModel creates a tree showing the scheme's top-level concepts.
func NewExploreModel(tax *taxonomy.Taxonomy) ExploreModel {
	m := ExploreModel{tax: tax, Height: 20}
	for _, id := range tax.Roots() {
		m.rows = append(m.rows, treeRow{id: id})
	}
	return m
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
			}
		case "enter", " ", "right", "left":
			m = m.toggle(m.Cursor)
		case "/":
			m.searching, m.query, m.status = true, "", ""
		case "r":
			if len(m.rows) > 0 {
				m.Selected = m.rows[m.Cursor].id
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	m.scroll()
	return m, nil
}

func (m ExploreModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.searching = false
	case tea.KeyEnter:
		m.searching = false
		m = m.find(m.query)
	case tea.KeyBackspace:
		if m.query != "" {
			r := []rune(m.query)
			m.query = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.query += " "
	case tea.KeyRunes:
		m.query += string(msg.Runes)
	}
	m.scroll()
	return m, nil
}

// toggle expands or collapses row i. Concepts that already appear above
// row i on its own path are not expanded again.
func (m ExploreModel) toggle(i int) ExploreModel {
	if i < 0 || i >= len(m.rows) {
		return m
	}
	row := m.rows[i]
	if row.expanded {
		end := i + 1
		for end < len(m.rows) && m.rows[end].depth > row.depth {
			end++
		}
		m.rows = append(m.rows[:i+1:i+1], m.rows[end:]...)
		m.rows[i].expanded = false
		return m
	}

	children := m.tax.Narrower(row.id)
	if len(children) == 0 || m.onPath(i, row.id) {
		return m
	}
	inserted := make([]treeRow, 0, len(m.rows)+len(children))
	inserted = append(inserted, m.rows[:i+1]...)
	for _, id := range children {
		inserted = append(inserted, treeRow{id: id, depth: row.depth + 1})
	}
	inserted = append(inserted, m.rows[i+1:]...)
	inserted[i].expanded = true
	m.rows = inserted
	return m
}

// onPath reports whether id occurs among the ancestors of row i.
func (m ExploreModel) onPath(i int, id string) bool {
	depth := m.rows[i].depth
	for j := i - 1; j >= 0 && depth > 0; j-- {
		if m.rows[j].depth < depth {
			if m.rows[j].id == id {
				return true
			}
			depth = m.rows[j].depth
		}
	}
	return false
}

// find moves the cursor to the first concept matching query, expanding
// the tree along the first root path that reaches it.
func (m ExploreModel) find(query string) ExploreModel {
	if strings.TrimSpace(query) == "" {
		return m
	}
	matches := m.tax.Search(query)
	for _, c := range matches {
		path := m.pathTo(c.ID)
		if path == nil {
			continue
		}
		m = m.reveal(path)
		m.status = fmt.Sprintf("%d match(es) for %q", len(matches), query)
		return m
	}
	m.status = fmt.Sprintf("no branch contains %q", query)
	return m
}

// pathTo returns the identifiers from a root down to id, found
// breadth-first, or nil when no root reaches id.
func (m ExploreModel) pathTo(id string) []string {
	for _, root := range m.tax.Roots() {
		parent := map[string]string{root: ""}
		queue := []string{root}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if cur == id {
				var path []string
				for n := cur; n != ""; n = parent[n] {
					path = append([]string{n}, path...)
				}
				return path
			}
			for _, child := range m.tax.Narrower(cur) {
				if _, seen := parent[child]; !seen {
					parent[child] = cur
					queue = append(queue, child)
				}
			}
		}
	}
	return nil
}

// reveal expands every concept on path and places the cursor on its last
// element.
func (m ExploreModel) reveal(path []string) ExploreModel {
	i := -1
	for depth, id := range path {
		next := -1
		for j := i + 1; j < len(m.rows); j++ {
			if m.rows[j].depth < depth {
				break
			}
			if m.rows[j].depth == depth && m.rows[j].id == id {
				next = j
				break
			}
		}
		if next < 0 {
			return m
		}
		i = next
		if depth < len(path)-1 && !m.rows[i].expanded {
			m = m.toggle(i)
		}
	}
	m.Cursor = i
	return m
}

func (m *ExploreModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m ExploreModel) View() string {
	var b strings.Builder

	id, label := m.tax.Scheme()
	if label == "" {
		label = id
	}
	b.WriteString(StyleTitle.Render(label))
	b.WriteString("\n")
	b.WriteString(treeDimStyle.Render("↑/↓ move  ⏎ expand  / search  r render  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))
	for i := m.Offset; i < end; i++ {
		row := m.rows[i]
		marker := "  "
		switch {
		case row.expanded:
			marker = "▾ "
		case len(m.tax.Narrower(row.id)) > 0:
			marker = "▸ "
		}
		line := strings.Repeat("  ", row.depth) + marker + m.tax.Label(row.id)

		style := treeNormalStyle
		if i == m.Cursor {
			style = treeSelectedStyle
			line = "› " + line
		} else {
			line = "  " + line
		}
		b.WriteString(style.Render(line))
		if i == m.Cursor && m.tax.Label(row.id) != row.id {
			b.WriteString(" " + treeDimStyle.Render(row.id))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.searching:
		b.WriteString(treeMatchStyle.Render("/" + m.query + "█"))
	case m.status != "":
		b.WriteString(treeDimStyle.Render(m.status))
	default:
		b.WriteString(treeDimStyle.Render(fmt.Sprintf("[%d/%d]", m.Cursor+1, len(m.rows))))
	}
	return b.String()
}
