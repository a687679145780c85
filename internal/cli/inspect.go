package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/potplant/pkg/geom"
	"github.com/matzehuels/potplant/pkg/pipeline"
	"github.com/matzehuels/potplant/pkg/plant"
)

// inspectCommand creates the inspect command, which summarizes a genotype
// as a table of its pot, stalks and leaves.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [genotype|-]",
		Short: "Show the entities of a genotype as a table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.load(cmd, args)
			if err != nil {
				return err
			}
			return renderInspect(cmd.OutOrStdout(), res)
		},
	}
}

func renderInspect(w io.Writer, res *pipeline.Result) error {
	p := res.Plant

	fmt.Fprintln(w, StyleTitle.Render("Plant"))
	fmt.Fprintln(w, formatStats(res.Stats, false))
	fmt.Fprintf(w, "%s %s\n", styleKey.Render("green"), swatch(p.BaseGreen.Hex()))
	fmt.Fprintf(w, "%s %s\n", styleKey.Render("brown"), swatch(p.BaseBrown.Hex()))
	fmt.Fprintf(w, "%s %s\n", styleKey.Render("spread"), StyleNumber.Render(fmt.Sprintf("%.2f", p.StalkSpread)))
	fmt.Fprintln(w)

	_, err := fmt.Fprintln(w, entityTable(p).Render())
	return err
}

func entityTable(p *plant.Plant) *table.Table {
	var rows [][]string
	if p.Pot != nil {
		rows = append(rows, []string{"pot", "-", vec(p.Pot.Position()), vec(p.Pot.Rotation()), p.Pot.Params().String()})
	}
	for i, s := range p.Stalks {
		rows = append(rows, []string{"stalk", fmt.Sprint(i), vec(s.Position()), vec(s.Rotation()), s.Params().String()})
	}
	for i, l := range p.Leaves {
		rows = append(rows, []string{"leaf", fmt.Sprint(i), vec(l.Position()), vec(l.Rotation()), l.Params().String()})
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("ENTITY", "#", "POSITION", "ROTATION", "PARAMS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			switch col {
			case 0:
				return cellStyle.Foreground(colorWhite)
			case 4:
				return cellStyle.Foreground(colorGray)
			}
			return cellStyle
		})
}

func vec(v geom.Vec3) string {
	return fmt.Sprintf("%.2f, %.2f, %.2f", v.X(), v.Y(), v.Z())
}

func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■") + " " + StyleValue.Render(hex)
}
