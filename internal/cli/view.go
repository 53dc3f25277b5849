package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/cubetris/pkg/game"
	"github.com/matzehuels/cubetris/pkg/geom"
)

// materialColors maps block materials to terminal colors. Materials beyond
// the palette wrap around.
var materialColors = []lipgloss.Color{
	"167", "214", "220", "114", "36", "75", "141", "205", "180", "109",
}

var (
	styleActive = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleEmpty  = lipgloss.NewStyle().Foreground(colorDim)
	styleFrame  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

const (
	cellActive = "██"
	cellFilled = "▓▓"
	cellEmpty  = "· "
)

func materialStyle(m geom.Material) lipgloss.Style {
	i := int(m) % len(materialColors)
	if i < 0 {
		i += len(materialColors)
	}
	return lipgloss.NewStyle().Foreground(materialColors[i])
}

// renderBoard draws a top view (x right, y down) next to a front view
// (x right, z up) with per-layer fill counts.
func renderBoard(b *game.Board) string {
	top := styleFrame.Render(renderTop(b))
	front := styleFrame.Render(renderFront(b))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, StyleDim.Render(" top"), top),
		"  ",
		lipgloss.JoinVertical(lipgloss.Left, StyleDim.Render(" front"), front),
	)
}

// renderTop shows the active piece's footprint over the cemented column
// heights, the highest cell's material coloring each column.
func renderTop(b *game.Board) string {
	dims := b.Dimensions()
	active := make(map[[2]int]bool)
	for _, blk := range b.ActiveBlocks() {
		active[[2]int{blk.Pos.X, blk.Pos.Y}] = true
	}

	var sb strings.Builder
	for y := range dims.Y {
		if y > 0 {
			sb.WriteString("\n")
		}
		for x := range dims.X {
			if active[[2]int{x, y}] {
				sb.WriteString(styleActive.Render(cellActive))
				continue
			}
			sb.WriteString(topCell(b, x, y))
		}
	}
	return sb.String()
}

func topCell(b *game.Board, x, y int) string {
	for z := b.Dimensions().Z - 1; z >= 0; z-- {
		if blk, ok := b.Occupied(geom.C(x, y, z)); ok {
			return materialStyle(blk.Material).Render(fmt.Sprintf("%2d", z+1))
		}
	}
	return styleEmpty.Render(cellEmpty)
}

// renderFront collapses the y axis, drawing the nearest cemented block of
// each (x, z) cell.
func renderFront(b *game.Board) string {
	dims := b.Dimensions()
	active := make(map[[2]int]bool)
	for _, blk := range b.ActiveBlocks() {
		active[[2]int{blk.Pos.X, blk.Pos.Z}] = true
	}

	var sb strings.Builder
	width := len(fmt.Sprint(dims.X * dims.Y))
	for z := dims.Z - 1; z >= 0; z-- {
		for x := range dims.X {
			if active[[2]int{x, z}] {
				sb.WriteString(styleActive.Render(cellActive))
				continue
			}
			sb.WriteString(frontCell(b, x, z))
		}
		sb.WriteString(StyleDim.Render(fmt.Sprintf(" %*d", width, b.LayerFill(z))))
		if z > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func frontCell(b *game.Board, x, z int) string {
	for y := range b.Dimensions().Y {
		if blk, ok := b.Occupied(geom.C(x, y, z)); ok {
			return materialStyle(blk.Material).Render(cellFilled)
		}
	}
	return styleEmpty.Render(cellEmpty)
}
