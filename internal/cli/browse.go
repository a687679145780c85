package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/potplant/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// codePreview bounds the genotype shown under the table.
const codePreview = 72

// =============================================================================
// BrowseModel - Interactive plant browser
// =============================================================================

// growFunc grows the plant for a seed.
type growFunc func(seed uint64) (*pipeline.Result, error)

// BrowseModel is the bubbletea model for flipping through random plants.
// Plants are grown from consecutive seeds.
type BrowseModel struct {
	Plants   []*pipeline.Result
	Cursor   int
	Selected *pipeline.Result
	Err      error
	Height   int
	Offset   int

	next uint64
	grow growFunc
}

// NewBrowseModel creates a browser whose first plant is grown from seed.
func NewBrowseModel(seed uint64, grow growFunc) BrowseModel {
	m := BrowseModel{Height: 10, next: seed, grow: grow}
	return m.reroll()
}

// reroll grows the next plant and moves the cursor to it.
func (m BrowseModel) reroll() BrowseModel {
	res, err := m.grow(m.next)
	if err != nil {
		m.Err = err
		return m
	}
	m.Err = nil
	m.next++
	m.Plants = append(m.Plants, res)
	m.Cursor = len(m.Plants) - 1
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r", " ":
			return m.reroll(), nil
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Plants)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Plants) == 0 {
				return m, nil
			}
			m.Selected = m.Plants[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 3)
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse Plants"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("r grow  ↑/↓ navigate  ⏎ print genotype  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Plants))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		res := m.Plants[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprint(res.Seed),
			fmt.Sprint(res.Stats.Stalks),
			fmt.Sprint(res.Stats.Leaves),
			fmt.Sprint(res.Stats.Vertices),
			res.Plant.BaseGreen.Hex(),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Seed", "Stalks", "Leaves", "Vertices", "Green").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Plants) {
				return lipgloss.NewStyle()
			}
			if col == 5 {
				return lipgloss.NewStyle().Foreground(lipgloss.Color(m.Plants[idx].Plant.BaseGreen.Hex()))
			}
			if idx == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	if len(m.Plants) > 0 {
		b.WriteString(listDimStyle.Render("  " + truncate(m.Plants[m.Cursor].Code, codePreview)))
		b.WriteString("\n")
	}
	if m.Err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.Err.Error() + "\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Plants))))

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

// =============================================================================
// Command
// =============================================================================

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Grow plants interactively and pick one",
		Long: `Grow plants one at a time in the terminal. Press enter to print the
genotype of the highlighted plant.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := pipeline.Options{Seed: seed}
			if !cmd.Flags().Changed("seed") {
				opts.Seed = c.Config.Seed
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, cacheNull)
			if err != nil {
				return err
			}
			defer runner.Close()

			model := NewBrowseModel(opts.Seed, runnerGrow(ctx, runner))
			final, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(statusOut)).Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			if m, ok := final.(BrowseModel); ok && m.Selected != nil {
				return pipeline.WriteResult(cmd.OutOrStdout(), m.Selected, pipeline.FormatCode)
			}
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed of the first plant (0 picks one)")

	return cmd
}

func runnerGrow(ctx context.Context, r *pipeline.Runner) growFunc {
	return func(seed uint64) (*pipeline.Result, error) {
		return r.Random(ctx, pipeline.Options{Seed: seed})
	}
}
