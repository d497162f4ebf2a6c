package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/scorekeeper-backend/internal/config"
	"github.com/rocketscienceinc/scorekeeper-backend/internal/repository"
	"github.com/rocketscienceinc/scorekeeper-backend/internal/repository/storage"
	"github.com/rocketscienceinc/scorekeeper-backend/internal/scoreboard"
	"github.com/rocketscienceinc/scorekeeper-backend/internal/usecase"
	"github.com/rocketscienceinc/scorekeeper-backend/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if conf.Redis.Host == "" || conf.Redis.Port == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage)
	board := usecase.NewScoreboard(logger, gameRepo, boardOptions(conf.Scoreboard))
	board.Load(ctx)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, board)); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func boardOptions(conf config.Scoreboard) usecase.Options {
	roundLabel := scoreboard.ShortRoundLabel
	if conf.UseLongRoundLabel() {
		roundLabel = scoreboard.LongRoundLabel
	}

	return usecase.Options{
		ID:         conf.ID,
		Rounds:     conf.Rounds,
		Players:    conf.Players,
		RoundLabel: roundLabel,
	}
}
