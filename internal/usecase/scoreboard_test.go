package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/scorekeeper-backend/internal/apperror"
	"github.com/rocketscienceinc/scorekeeper-backend/internal/codec"
	"github.com/rocketscienceinc/scorekeeper-backend/internal/entity"
	"github.com/rocketscienceinc/scorekeeper-backend/internal/repository"
	"github.com/rocketscienceinc/scorekeeper-backend/internal/scoreboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("redis down")

type mockGameRepo struct {
	mock.Mock
}

func (m *mockGameRepo) Save(ctx context.Context, id string, game *entity.Game) error {
	args := m.Called(ctx, id, game)
	return args.Error(0)
}

func (m *mockGameRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockGameRepo) Load(ctx context.Context, id string) (*entity.Game, error) {
	args := m.Called(ctx, id)

	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func newTestScoreboard(t *testing.T) (*Scoreboard, *mockGameRepo) {
	t.Helper()

	repo := &mockGameRepo{}
	t.Cleanup(func() { repo.AssertExpectations(t) })

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	board := NewScoreboard(logger, repo, Options{ID: "test", Rounds: 3, Players: 2})

	return board, repo
}

func footerValues(view *scoreboard.View) []string {
	values := make([]string, 0, len(view.Footer.Cells))
	for _, cell := range view.Footer.Cells {
		values = append(values, cell.Value)
	}

	return values
}

func TestScoreboard_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Restores a saved board", func(t *testing.T) {
		// Given: a repository holding a saved game
		board, repo := newTestScoreboard(t)

		saved := entity.NewGame(5, 3)
		require.NoError(t, saved.SetScore(2, 4, entity.ScoreOf(9)))
		repo.On("Load", ctx, "test").Return(saved, nil).Once()

		// When: the board is loaded
		view := board.Load(ctx)

		// Then: the saved grid is shown
		assert.Len(t, view.Body, 5)
		assert.Equal(t, []string{"Total", "", "", "9"}, footerValues(view))
	})

	t.Run("Falls back to a fresh board when nothing is saved", func(t *testing.T) {
		// Given: a repository without a saved game
		board, repo := newTestScoreboard(t)
		repo.On("Load", ctx, "test").Return(nil, repository.ErrGameNotFound).Once()

		// When: the board is loaded
		view := board.Load(ctx)

		// Then: the configured default shape is used
		assert.Len(t, view.Body, 3)
		assert.Len(t, view.Header.Cells, 3)
	})

	t.Run("Falls back to a fresh board on a malformed record", func(t *testing.T) {
		// Given: a repository returning a validation error
		board, repo := newTestScoreboard(t)
		repo.On("Load", ctx, "test").Return(nil, codec.ErrInvalidRecord).Once()

		// When: the board is loaded
		view := board.Load(ctx)

		// Then: no error escapes and a fresh board is shown
		require.NotNil(t, view)
		assert.Equal(t, []string{"Player", "player 1", "player 2"}, []string{
			view.Header.Cells[0].Value, view.Header.Cells[1].Value, view.Header.Cells[2].Value,
		})
	})
}

func TestScoreboard_SetScore(t *testing.T) {
	ctx := context.Background()

	t.Run("Saves the board after a valid edit", func(t *testing.T) {
		// Given: a fresh board
		board, repo := newTestScoreboard(t)
		repo.On("Save", mock.Anything, "test", mock.MatchedBy(func(game *entity.Game) bool {
			return game.Players[1].Scores[0] == entity.ScoreOf(6)
		})).Return(nil).Once()

		// When: a score is entered
		view, err := board.SetScore(ctx, 1, 0, "6")

		// Then: the view reflects the score
		require.NoError(t, err)
		assert.Equal(t, "6", view.Body[0].Cells[2].Value)
	})

	t.Run("Non-numeric input clears the slot", func(t *testing.T) {
		// Given: a board with a score in the first slot
		board, repo := newTestScoreboard(t)
		repo.On("Save", mock.Anything, "test", mock.Anything).Return(nil).Twice()
		_, err := board.SetScore(ctx, 0, 0, "4")
		require.NoError(t, err)

		// When: non-numeric input is entered in that slot
		view, err := board.SetScore(ctx, 0, 0, "four")

		// Then: the slot is unset rather than zero
		require.NoError(t, err)
		assert.True(t, view.Body[0].Cells[1].Empty)
		assert.Equal(t, []entity.Total{{}, {}}, board.Totals())
	})

	t.Run("Out of range edits are rejected and not saved", func(t *testing.T) {
		// Given: a fresh board
		board, _ := newTestScoreboard(t)

		// When: a score is entered for a missing round
		view, err := board.SetScore(ctx, 0, 3, "1")

		// Then: the error is returned with the unchanged view
		require.ErrorIs(t, err, apperror.ErrRoundOutOfRange)
		assert.Len(t, view.Body, 3)
	})

	t.Run("A failed save does not fail the edit", func(t *testing.T) {
		// Given: a repository that cannot save
		board, repo := newTestScoreboard(t)
		repo.On("Save", mock.Anything, "test", mock.Anything).Return(errRedisDown).Once()

		// When: a score is entered
		view, err := board.SetScore(ctx, 0, 1, "2")

		// Then: the edit is applied anyway
		require.NoError(t, err)
		assert.Equal(t, "2", view.Body[1].Cells[1].Value)
	})
}

func TestScoreboard_RenamePlayer(t *testing.T) {
	// Given: a fresh board
	board, _ := newTestScoreboard(t)

	// When: a player is renamed to an empty string
	view, err := board.RenamePlayer(context.Background(), 0, "")

	// Then: the rename is rejected, not saved, and the old name is kept
	require.ErrorIs(t, err, apperror.ErrEmptyPlayerName)
	assert.Equal(t, "player 1", view.Header.Cells[1].Value)
}

func TestScoreboard_Resize(t *testing.T) {
	ctx := context.Background()

	// Given: a board with a renamed player and a score
	board, repo := newTestScoreboard(t)
	repo.On("Save", mock.Anything, "test", mock.Anything).Return(nil)

	_, err := board.RenamePlayer(ctx, 1, "bob")
	require.NoError(t, err)
	_, err = board.SetScore(ctx, 1, 2, "5")
	require.NoError(t, err)

	// When: rounds and players grow
	board.SetRoundCount(ctx, 4)
	view := board.SetPlayerCount(ctx, 3)

	// Then: existing data is kept and new cells are defaults
	assert.Len(t, view.Body, 4)
	assert.Equal(t, "bob", view.Header.Cells[2].Value)
	assert.Equal(t, "player 3", view.Header.Cells[3].Value)
	assert.Equal(t, "5", view.Body[2].Cells[2].Value)

	// When: rounds shrink below the scored round
	view = board.SetRoundCount(ctx, 2)

	// Then: the score is dropped with the round
	assert.Len(t, view.Body, 2)
	assert.Equal(t, []string{"Total", "", "", ""}, footerValues(view))
}

func TestScoreboard_ClearAndReset(t *testing.T) {
	ctx := context.Background()

	// Given: a board with a renamed player, an extra round and scores
	board, repo := newTestScoreboard(t)
	repo.On("Save", mock.Anything, "test", mock.Anything).Return(nil)

	_, err := board.RenamePlayer(ctx, 0, "ann")
	require.NoError(t, err)
	board.SetRoundCount(ctx, 5)
	_, err = board.SetScore(ctx, 0, 4, "3")
	require.NoError(t, err)

	// When: scores are cleared
	view := board.ClearScores(ctx)

	// Then: names and counts stay, totals are undefined
	assert.Equal(t, "ann", view.Header.Cells[1].Value)
	assert.Len(t, view.Body, 5)
	assert.Equal(t, []entity.Total{{}, {}}, board.Totals())

	// When: the board is reset
	repo.On("Delete", mock.Anything, "test").Return(nil).Once()
	view = board.Reset(ctx)

	// Then: the default shape and names are back and the record is dropped
	assert.Equal(t, "player 1", view.Header.Cells[1].Value)
	assert.Len(t, view.Body, 3)
	repo.AssertCalled(t, "Delete", mock.Anything, "test")
}

func TestScoreboard_Reset(t *testing.T) {
	t.Run("Nothing saved yet is not an error", func(t *testing.T) {
		// Given: a repository without a stored record
		board, repo := newTestScoreboard(t)
		repo.On("Delete", mock.Anything, "test").Return(repository.ErrGameNotFound).Once()

		// When: the board is reset
		view := board.Reset(context.Background())

		// Then: a fresh board is returned
		assert.Len(t, view.Body, 3)
	})

	t.Run("A failed delete still resets the board", func(t *testing.T) {
		// Given: a board with a score and a repository that cannot delete
		board, repo := newTestScoreboard(t)
		repo.On("Save", mock.Anything, "test", mock.Anything).Return(nil).Once()
		repo.On("Delete", mock.Anything, "test").Return(errRedisDown).Once()
		_, err := board.SetScore(context.Background(), 0, 0, "5")
		require.NoError(t, err)

		// When: the board is reset
		board.Reset(context.Background())

		// Then: the in-memory board is fresh
		assert.Equal(t, []entity.Total{{}, {}}, board.Totals())
	})
}

func TestScoreboard_SaveOutlivesCanceledRequest(t *testing.T) {
	// Given: a request context that is already canceled
	board, repo := newTestScoreboard(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo.On("Save", mock.MatchedBy(func(saveCtx context.Context) bool {
		return saveCtx.Err() == nil
	}), "test", mock.Anything).Return(nil).Once()

	// When: a score is entered with that context
	_, err := board.SetScore(ctx, 0, 0, "1")

	// Then: the save runs with a live context
	require.NoError(t, err)
}
