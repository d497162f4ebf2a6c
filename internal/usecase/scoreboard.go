package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/scorekeeper-backend/internal/entity"
	"github.com/rocketscienceinc/scorekeeper-backend/internal/repository"
	"github.com/rocketscienceinc/scorekeeper-backend/internal/scoreboard"
)

type gameRepo interface {
	Save(ctx context.Context, id string, game *entity.Game) error
	Load(ctx context.Context, id string) (*entity.Game, error)
	Delete(ctx context.Context, id string) error
}

// Options - board id and the shape of a fresh board.
type Options struct {
	ID         string
	Rounds     int
	Players    int
	RoundLabel scoreboard.RoundLabel
}

// Scoreboard owns the single game of a board. Every event is applied under one
// lock and then saved; a failed save is logged, never returned.
type Scoreboard struct {
	logger   *slog.Logger
	gameRepo gameRepo
	options  Options

	mu   sync.Mutex
	game *entity.Game
}

func NewScoreboard(logger *slog.Logger, gameRepo gameRepo, options Options) *Scoreboard {
	if options.RoundLabel == nil {
		options.RoundLabel = scoreboard.ShortRoundLabel
	}

	return &Scoreboard{
		logger:   logger.With("component", "scoreboard", "board", options.ID),
		gameRepo: gameRepo,
		options:  options,
		game:     entity.NewGame(options.Rounds, options.Players),
	}
}

// Load hydrates the board from storage. A missing or malformed record falls
// back to a fresh board.
func (that *Scoreboard) Load(ctx context.Context) *scoreboard.View {
	log := that.logger.With("method", "Load")

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.gameRepo.Load(ctx, that.options.ID)
	switch {
	case err == nil:
		that.game = game
		log.Info("board restored", "rounds", game.RoundCount, "players", game.PlayerCount)
	case errors.Is(err, repository.ErrGameNotFound):
		that.game = that.newGame()
		log.Info("no saved board, starting a new one")
	default:
		that.game = that.newGame()
		log.Warn("could not restore board, starting a new one", "error", err)
	}

	return that.view()
}

func (that *Scoreboard) View() *scoreboard.View {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.view()
}

func (that *Scoreboard) Totals() []entity.Total {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.Totals()
}

func (that *Scoreboard) SetRoundCount(ctx context.Context, rounds int) *scoreboard.View {
	view, _ := that.apply(ctx, "SetRoundCount", func(game *entity.Game) error {
		game.SetRoundCount(rounds)
		return nil
	})

	return view
}

func (that *Scoreboard) SetPlayerCount(ctx context.Context, players int) *scoreboard.View {
	view, _ := that.apply(ctx, "SetPlayerCount", func(game *entity.Game) error {
		game.SetPlayerCount(players)
		return nil
	})

	return view
}

// SetScore records raw cell input. Input that is not an integer clears the slot.
func (that *Scoreboard) SetScore(ctx context.Context, player, round int, raw string) (*scoreboard.View, error) {
	return that.apply(ctx, "SetScore", func(game *entity.Game) error {
		return game.SetScore(player, round, entity.ParseScore(raw))
	})
}

func (that *Scoreboard) RenamePlayer(ctx context.Context, player int, name string) (*scoreboard.View, error) {
	return that.apply(ctx, "RenamePlayer", func(game *entity.Game) error {
		return game.RenamePlayer(player, name)
	})
}

func (that *Scoreboard) ClearScores(ctx context.Context) *scoreboard.View {
	view, _ := that.apply(ctx, "ClearScores", func(game *entity.Game) error {
		game.ClearScores()
		return nil
	})

	return view
}

// Reset replaces the board with a fresh one of the configured shape and drops
// the stored record, so a restart also comes up fresh.
func (that *Scoreboard) Reset(ctx context.Context) *scoreboard.View {
	log := that.logger.With("method", "Reset")

	that.mu.Lock()
	defer that.mu.Unlock()

	that.game = that.newGame()

	err := that.gameRepo.Delete(context.WithoutCancel(ctx), that.options.ID)
	if err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		log.Error("failed to delete saved board", "error", err)
	}

	return that.view()
}

// apply runs mutate under the lock. The game is saved only when mutate
// succeeds; the save outlives a canceled request.
func (that *Scoreboard) apply(ctx context.Context, method string, mutate func(game *entity.Game) error) (*scoreboard.View, error) {
	log := that.logger.With("method", method)

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := mutate(that.game); err != nil {
		log.Debug("event rejected", "error", err)
		return that.view(), err
	}

	if err := that.gameRepo.Save(context.WithoutCancel(ctx), that.options.ID, that.game); err != nil {
		log.Error("failed to save board", "error", err)
	}

	return that.view(), nil
}

func (that *Scoreboard) view() *scoreboard.View {
	return scoreboard.BuildView(that.game, that.options.RoundLabel)
}

func (that *Scoreboard) newGame() *entity.Game {
	return entity.NewGame(that.options.Rounds, that.options.Players)
}
