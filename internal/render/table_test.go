package render

import (
	"strings"
	"testing"

	"github.com/rocketscienceinc/scorekeeper-backend/internal/entity"
	"github.com/rocketscienceinc/scorekeeper-backend/internal/scoreboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	// Given: a view of a game with one unset slot
	game := entity.NewGame(2, 2)
	require.NoError(t, game.RenamePlayer(0, "ann"))
	require.NoError(t, game.SetScore(0, 0, entity.ScoreOf(12)))
	require.NoError(t, game.SetScore(0, 1, entity.ScoreOf(3)))
	require.NoError(t, game.SetScore(1, 0, entity.ScoreOf(7)))

	view := scoreboard.BuildView(game, scoreboard.LongRoundLabel)

	// When: the view is rendered
	out := Table(view)

	// Then: every label, name and value is present
	for _, want := range []string{"Player", "ann", "player 2", "Round 1", "Round 2", "Total", "12", "15"} {
		assert.Contains(t, out, want)
	}

	// Then: one line per round plus header, footer and borders
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 7)

	// Then: the unset slot is drawn with the empty marker
	assert.Contains(t, lines[4], emptyMarker)
}
