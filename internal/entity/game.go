package entity

import (
	"fmt"

	"github.com/rocketscienceinc/scorekeeper-backend/internal/apperror"
)

const (
	DefaultRoundCount  = 7
	DefaultPlayerCount = 4
)

// Game is the players × rounds grid. Players always holds PlayerCount entries,
// each with exactly RoundCount score slots.
type Game struct {
	Players     []*Player `json:"players"`
	RoundCount  int       `json:"round_count"`
	PlayerCount int       `json:"player_count"`
}

func NewGame(rounds, players int) *Game {
	game := &Game{}
	game.SetRoundCount(rounds)
	game.SetPlayerCount(players)

	return game
}

func NewDefaultGame() *Game {
	return NewGame(DefaultRoundCount, DefaultPlayerCount)
}

// SetRoundCount - grows every player with unset slots or drops slots from the tail.
func (that *Game) SetRoundCount(rounds int) {
	rounds = max(rounds, 0)

	for _, player := range that.Players {
		player.resize(rounds)
	}

	that.RoundCount = rounds
}

// SetPlayerCount - appends default players or drops players from the tail.
// Dropped players are gone; growing back creates fresh defaults.
func (that *Game) SetPlayerCount(players int) {
	players = max(players, 0)

	if players <= len(that.Players) {
		clear(that.Players[players:])
		that.Players = that.Players[:players]
	}

	for i := len(that.Players); i < players; i++ {
		that.Players = append(that.Players, NewPlayer(DefaultPlayerName(i), that.RoundCount))
	}

	that.PlayerCount = players
}

func (that *Game) ClearScores() {
	for _, player := range that.Players {
		player.clear()
	}
}

func (that *Game) SetScore(playerIndex, roundIndex int, score Score) error {
	player, err := that.Player(playerIndex)
	if err != nil {
		return err
	}

	if roundIndex < 0 || roundIndex >= that.RoundCount {
		return fmt.Errorf("%w: round %d", apperror.ErrRoundOutOfRange, roundIndex)
	}

	player.Scores[roundIndex] = score

	return nil
}

// RenamePlayer rejects an empty name; a stored record always carries one.
func (that *Game) RenamePlayer(playerIndex int, name string) error {
	player, err := that.Player(playerIndex)
	if err != nil {
		return err
	}

	if name == "" {
		return apperror.ErrEmptyPlayerName
	}

	player.Name = name

	return nil
}

func (that *Game) Player(index int) (*Player, error) {
	if index < 0 || index >= len(that.Players) {
		return nil, fmt.Errorf("%w: player %d", apperror.ErrPlayerOutOfRange, index)
	}

	return that.Players[index], nil
}

func (that *Game) Totals() []Total {
	totals := make([]Total, len(that.Players))
	for i, player := range that.Players {
		totals[i] = player.Total()
	}

	return totals
}
