// Package render draws a scoreboard view as a text table.
package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rocketscienceinc/scorekeeper-backend/internal/scoreboard"
)

const emptyMarker = "-"

var (
	colorHighest = lipgloss.Color("#10ac84")
	colorLowest  = lipgloss.Color("#ee5253")

	styleBorder  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
	styleHeader  = styleCell.Bold(true)
	styleHighest = styleCell.Foreground(colorHighest).Bold(true)
	styleLowest  = styleCell.Foreground(colorLowest)
)

// Table renders view with the footer as the last row. Cells holding the highest
// or lowest total are colored.
func Table(view *scoreboard.View) string {
	rows := make([][]string, 0, len(view.Body)+1)
	for _, row := range view.Body {
		rows = append(rows, values(row))
	}
	rows = append(rows, values(view.Footer))

	footer := len(rows) - 1

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		BorderHeader(true).
		BorderRow(false).
		Headers(values(view.Header)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var cell scoreboard.Cell

			switch {
			case row == table.HeaderRow:
				cell = cellAt(view.Header, col)
				if !cell.HasHighest && !cell.HasLowest {
					return styleHeader
				}
			case row == footer:
				cell = cellAt(view.Footer, col)
			default:
				return styleCell
			}

			switch {
			case cell.HasHighest:
				return styleHighest
			case cell.HasLowest:
				return styleLowest
			default:
				return styleCell
			}
		})

	return t.Render()
}

func values(row scoreboard.Row) []string {
	out := make([]string, 0, len(row.Cells))
	for _, cell := range row.Cells {
		if cell.Empty {
			out = append(out, emptyMarker)
			continue
		}

		out = append(out, cell.Value)
	}

	return out
}

func cellAt(row scoreboard.Row, col int) scoreboard.Cell {
	if col < 0 || col >= len(row.Cells) {
		return scoreboard.Cell{}
	}

	return row.Cells[col]
}
