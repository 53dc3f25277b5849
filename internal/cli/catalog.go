package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cubetris/pkg/catalog"
	"github.com/matzehuels/cubetris/pkg/geom"
)

// catalogCommand creates the catalog command that lists shapes.
func (c *CLI) catalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [file]",
		Short: "List the shapes of a catalog",
		Long: `List the shapes of a catalog.

Without a file argument the catalog named by the config (or the built-in
catalog) is listed. A file argument is validated like any catalog.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.loadCatalog(args)
			if err != nil {
				return err
			}
			fmt.Println(renderCatalog(cat))
			return nil
		},
	}
}

// loadCatalog reads the catalog named by args, or the configured one.
func (c *CLI) loadCatalog(args []string) (catalog.Catalog, error) {
	if len(args) == 1 {
		return catalog.Load(args[0])
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return catalog.Catalog{}, err
	}
	return cfg.Catalog()
}

// renderCatalog draws one table row per shape with its size and offsets.
func renderCatalog(cat catalog.Catalog) string {
	rows := make([][]string, len(cat.Shapes))
	for i, s := range cat.Shapes {
		coords := s.Coords()
		offsets := make([]string, len(coords))
		for j, c := range coords {
			offsets[j] = c.String()
		}
		rows[i] = []string{s.Name, fmt.Sprint(len(coords)), dimsString(boundingBox(coords)), strings.Join(offsets, " ")}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Shape", "Blocks", "Size", "Offsets").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col == 3:
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// boundingBox returns the extent of coords along each axis.
func boundingBox(coords []geom.Coord) geom.Coord {
	if len(coords) == 0 {
		return geom.Coord{}
	}
	lo, hi := coords[0], coords[0]
	for _, c := range coords[1:] {
		lo = geom.C(min(lo.X, c.X), min(lo.Y, c.Y), min(lo.Z, c.Z))
		hi = geom.C(max(hi.X, c.X), max(hi.Y, c.Y), max(hi.Z, c.Z))
	}
	return hi.Sub(lo).Add(geom.C(1, 1, 1))
}
