package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

func NewRouter(logger *slog.Logger, board scoreboardUseCase) http.Handler {
	handler := NewScoreboardHandler(logger, board)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", Ping)

	mux.HandleFunc("GET /scoreboard", handler.GetView)
	mux.HandleFunc("GET /scoreboard/table", handler.GetTable)
	mux.HandleFunc("PUT /scoreboard/rounds", handler.SetRoundCount)
	mux.HandleFunc("PUT /scoreboard/players", handler.SetPlayerCount)
	mux.HandleFunc("PUT /scoreboard/players/{player}/rounds/{round}", handler.SetScore)
	mux.HandleFunc("PUT /scoreboard/players/{player}/name", handler.RenamePlayer)
	mux.HandleFunc("DELETE /scoreboard/scores", handler.ClearScores)
	mux.HandleFunc("POST /scoreboard/reset", handler.Reset)

	return mux
}

// Start - serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}
