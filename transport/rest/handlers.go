package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/scorekeeper-backend/internal/apperror"
	"github.com/rocketscienceinc/scorekeeper-backend/internal/render"
	"github.com/rocketscienceinc/scorekeeper-backend/internal/scoreboard"
)

const (
	maxBodyBytes = 1 << 16

	// MinCount and MaxCount bound the rounds or players a client may request.
	MinCount = 1
	MaxCount = 1000
)

var (
	errInvalidIndex = errors.New("index must be an integer")
	errCountRange   = errors.New("count must be between 1 and 1000")
)

type scoreboardUseCase interface {
	View() *scoreboard.View
	SetRoundCount(ctx context.Context, rounds int) *scoreboard.View
	SetPlayerCount(ctx context.Context, players int) *scoreboard.View
	SetScore(ctx context.Context, player, round int, raw string) (*scoreboard.View, error)
	RenamePlayer(ctx context.Context, player int, name string) (*scoreboard.View, error)
	ClearScores(ctx context.Context) *scoreboard.View
	Reset(ctx context.Context) *scoreboard.View
}

type countRequest struct {
	Count int `json:"count"`
}

type scoreRequest struct {
	Value string `json:"value"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type ScoreboardHandler struct {
	logger *slog.Logger
	board  scoreboardUseCase
}

func NewScoreboardHandler(logger *slog.Logger, board scoreboardUseCase) *ScoreboardHandler {
	return &ScoreboardHandler{
		logger: logger.With("component", "rest"),
		board:  board,
	}
}

func (that *ScoreboardHandler) GetView(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.board.View())
}

func (that *ScoreboardHandler) GetTable(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(render.Table(that.board.View()) + "\n")); err != nil {
		that.logger.Error("failed to write table", "error", err)
	}
}

func (that *ScoreboardHandler) SetRoundCount(w http.ResponseWriter, r *http.Request) {
	var req countRequest
	if err := decodeBody(w, r, &req); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.Count < MinCount || req.Count > MaxCount {
		that.writeError(w, http.StatusBadRequest, errCountRange)
		return
	}

	that.writeJSON(w, http.StatusOK, that.board.SetRoundCount(r.Context(), req.Count))
}

func (that *ScoreboardHandler) SetPlayerCount(w http.ResponseWriter, r *http.Request) {
	var req countRequest
	if err := decodeBody(w, r, &req); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.Count < MinCount || req.Count > MaxCount {
		that.writeError(w, http.StatusBadRequest, errCountRange)
		return
	}

	that.writeJSON(w, http.StatusOK, that.board.SetPlayerCount(r.Context(), req.Count))
}

func (that *ScoreboardHandler) SetScore(w http.ResponseWriter, r *http.Request) {
	player, err := pathIndex(r, "player")
	if err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	round, err := pathIndex(r, "round")
	if err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req scoreRequest
	if err = decodeBody(w, r, &req); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	view, err := that.board.SetScore(r.Context(), player, round, req.Value)
	that.writeResult(w, view, err)
}

func (that *ScoreboardHandler) RenamePlayer(w http.ResponseWriter, r *http.Request) {
	player, err := pathIndex(r, "player")
	if err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req nameRequest
	if err = decodeBody(w, r, &req); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	view, err := that.board.RenamePlayer(r.Context(), player, req.Name)
	that.writeResult(w, view, err)
}

func (that *ScoreboardHandler) ClearScores(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, that.board.ClearScores(r.Context()))
}

func (that *ScoreboardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, that.board.Reset(r.Context()))
}

func (that *ScoreboardHandler) writeResult(w http.ResponseWriter, view *scoreboard.View, err error) {
	switch {
	case err == nil:
		that.writeJSON(w, http.StatusOK, view)
	case errors.Is(err, apperror.ErrPlayerOutOfRange),
		errors.Is(err, apperror.ErrRoundOutOfRange),
		errors.Is(err, apperror.ErrEmptyPlayerName):
		that.writeError(w, http.StatusBadRequest, err)
	default:
		that.logger.Error("unexpected scoreboard error", "error", err)
		that.writeError(w, http.StatusInternalServerError, errors.New(http.StatusText(http.StatusInternalServerError)))
	}
}

func (that *ScoreboardHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *ScoreboardHandler) writeError(w http.ResponseWriter, status int, err error) {
	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errors.New("invalid request body")
	}

	return nil
}

func pathIndex(r *http.Request, name string) (int, error) {
	index, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, errInvalidIndex
	}

	return index, nil
}
