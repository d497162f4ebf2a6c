package scoreboard

import (
	"fmt"

	"github.com/rocketscienceinc/scorekeeper-backend/internal/entity"
)

const (
	PlayerLabel = "Player"
	TotalLabel  = "Total"
)

// RoundLabel names the body row for a zero-based round.
type RoundLabel func(round int) string

func ShortRoundLabel(round int) string {
	return fmt.Sprintf("R %d", round+1)
}

func LongRoundLabel(round int) string {
	return fmt.Sprintf("Round %d", round+1)
}

// Cell is one table cell. Empty marks an unset score or an undefined total.
type Cell struct {
	Value      string `json:"value"`
	Empty      bool   `json:"empty,omitempty"`
	HasHighest bool   `json:"has_highest,omitempty"`
	HasLowest  bool   `json:"has_lowest,omitempty"`
}

type Row struct {
	Cells []Cell `json:"cells"`
}

// View is the table projection of a game. The first cell of every row is its label.
type View struct {
	Header Row   `json:"header"`
	Body   []Row `json:"body"`
	Footer Row   `json:"footer"`
}

// BuildView projects the game without mutating it.
func BuildView(game *entity.Game, roundLabel RoundLabel) *View {
	if roundLabel == nil {
		roundLabel = ShortRoundLabel
	}

	totals := game.Totals()
	extremes := CalculateExtremes(totals)

	view := &View{
		Header: Row{Cells: make([]Cell, 0, len(game.Players)+1)},
		Body:   make([]Row, 0, game.RoundCount),
		Footer: Row{Cells: make([]Cell, 0, len(game.Players)+1)},
	}

	view.Header.Cells = append(view.Header.Cells, Cell{Value: PlayerLabel})
	view.Footer.Cells = append(view.Footer.Cells, Cell{Value: TotalLabel})

	for i, player := range game.Players {
		view.Header.Cells = append(view.Header.Cells, Cell{
			Value:      player.Name,
			HasHighest: extremes[i].HasHighest,
			HasLowest:  extremes[i].HasLowest,
		})

		footer := Cell{
			Empty:      !totals[i].Defined,
			HasHighest: extremes[i].HasHighest,
			HasLowest:  extremes[i].HasLowest,
		}
		if totals[i].Defined {
			footer.Value = fmt.Sprint(totals[i].Value)
		}

		view.Footer.Cells = append(view.Footer.Cells, footer)
	}

	for round := range game.RoundCount {
		row := Row{Cells: make([]Cell, 0, len(game.Players)+1)}
		row.Cells = append(row.Cells, Cell{Value: roundLabel(round)})

		for _, player := range game.Players {
			score := player.Scores[round]
			row.Cells = append(row.Cells, Cell{Value: score.String(), Empty: !score.IsSet()})
		}

		view.Body = append(view.Body, row)
	}

	return view
}
