// Package codec converts a game to and from its persisted record:
//
//	{"players":[{"name":"ann","roundScores":{"0":5,"3":-1}}],"roundCount":7}
//
// Only set slots are written. Decoding validates the record strictly.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/rocketscienceinc/scorekeeper-backend/internal/entity"
)

const (
	// MaxRoundCount bounds the grid a record may describe.
	MaxRoundCount = 10000

	maxExactInteger = 1 << 53
)

var ErrInvalidRecord = errors.New("invalid game record")

type Record struct {
	Players    []PlayerRecord `json:"players"`
	RoundCount *int           `json:"roundCount,omitempty"`
}

type PlayerRecord struct {
	Name        string         `json:"name"`
	RoundScores map[string]int `json:"roundScores"`
}

func Encode(game *entity.Game) Record {
	rounds := game.RoundCount
	record := Record{
		Players:    make([]PlayerRecord, 0, len(game.Players)),
		RoundCount: &rounds,
	}

	for _, player := range game.Players {
		scores := make(map[string]int)
		for i, score := range player.Scores {
			if score.IsSet() {
				scores[strconv.Itoa(i)] = score.Value
			}
		}

		record.Players = append(record.Players, PlayerRecord{Name: player.Name, RoundScores: scores})
	}

	return record
}

func Marshal(game *entity.Game) ([]byte, error) {
	data, err := json.Marshal(Encode(game))
	if err != nil {
		return nil, fmt.Errorf("could not marshal game record: %w", err)
	}

	return data, nil
}

type rawRecord struct {
	Players    json.RawMessage `json:"players"`
	RoundCount json.RawMessage `json:"roundCount"`
}

type rawPlayer struct {
	Name        json.RawMessage `json:"name"`
	RoundScores json.RawMessage `json:"roundScores"`
}

// decodedPlayer holds sparse scores before the round count is known.
type decodedPlayer struct {
	name   string
	scores map[int]entity.Score
	length int
}

// Decode validates data and builds a game from it. Any failure wraps
// ErrInvalidRecord. When roundCount is absent it is inferred from the longest
// score sequence; indices at or beyond the round count are dropped.
func Decode(data []byte) (*entity.Game, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty record", ErrInvalidRecord)
	}

	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	var rawPlayers []json.RawMessage
	if isNull(raw.Players) {
		return nil, fmt.Errorf("%w: players is missing", ErrInvalidRecord)
	}
	if err := json.Unmarshal(raw.Players, &rawPlayers); err != nil {
		return nil, fmt.Errorf("%w: players is not an array", ErrInvalidRecord)
	}
	if len(rawPlayers) == 0 {
		return nil, fmt.Errorf("%w: players is empty", ErrInvalidRecord)
	}

	players := make([]decodedPlayer, 0, len(rawPlayers))
	longest := 0

	for i, rawPlayer := range rawPlayers {
		player, err := decodePlayer(rawPlayer)
		if err != nil {
			return nil, fmt.Errorf("%w: player %d: %w", ErrInvalidRecord, i, err)
		}

		longest = max(longest, player.length)
		players = append(players, player)
	}

	rounds := longest
	if !isNull(raw.RoundCount) {
		count, err := decodeInteger(raw.RoundCount)
		if err != nil || count < 0 {
			return nil, fmt.Errorf("%w: roundCount must be a non-negative integer", ErrInvalidRecord)
		}

		rounds = count
	}

	if rounds > MaxRoundCount {
		return nil, fmt.Errorf("%w: %d rounds exceeds %d", ErrInvalidRecord, rounds, MaxRoundCount)
	}

	game := entity.NewGame(rounds, len(players))
	for i, player := range players {
		game.Players[i].Name = player.name

		for round, score := range player.scores {
			if round < rounds {
				game.Players[i].Scores[round] = score
			}
		}
	}

	return game, nil
}

func decodePlayer(data json.RawMessage) (decodedPlayer, error) {
	var raw rawPlayer
	if err := json.Unmarshal(data, &raw); err != nil {
		return decodedPlayer{}, errors.New("not an object")
	}

	var player decodedPlayer
	if err := json.Unmarshal(raw.Name, &player.name); err != nil || isNull(raw.Name) || player.name == "" {
		return decodedPlayer{}, errors.New("name must be a non-empty string")
	}

	if isNull(raw.RoundScores) {
		return decodedPlayer{}, errors.New("roundScores is missing")
	}

	scores, length, err := decodeRoundScores(raw.RoundScores)
	if err != nil {
		return decodedPlayer{}, err
	}

	player.scores = scores
	player.length = length

	return player, nil
}

// decodeRoundScores accepts an index-keyed object or an array. It returns the
// set slots and the implied sequence length.
func decodeRoundScores(data json.RawMessage) (map[int]entity.Score, int, error) {
	scores := make(map[int]entity.Score)

	var values []json.RawMessage
	if err := json.Unmarshal(data, &values); err == nil {
		for i, value := range values {
			score, err := decodeScore(value)
			if err != nil {
				return nil, 0, fmt.Errorf("round %d: %w", i, err)
			}

			scores[i] = score
		}

		return scores, len(values), nil
	}

	var mapping map[string]json.RawMessage
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, 0, errors.New("roundScores is not an object or array")
	}

	length := 0
	for key, value := range mapping {
		index, err := strconv.ParseUint(key, 10, 31)
		if err != nil {
			return nil, 0, fmt.Errorf("round key %q is not a non-negative integer", key)
		}

		score, err := decodeScore(value)
		if err != nil {
			return nil, 0, fmt.Errorf("round %q: %w", key, err)
		}

		scores[int(index)] = score
		length = max(length, int(index)+1)
	}

	return scores, length, nil
}

func decodeScore(data json.RawMessage) (entity.Score, error) {
	if isNull(data) {
		return entity.Unset(), nil
	}

	value, err := decodeInteger(data)
	if err != nil {
		return entity.Unset(), err
	}

	return entity.ScoreOf(value), nil
}

// decodeInteger reads any integer Encode can write. Integral values in
// fraction or exponent form (5.0, 1e3) are accepted up to 2^53.
func decodeInteger(data json.RawMessage) (int, error) {
	var number json.Number
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) || json.Unmarshal(data, &number) != nil {
		return 0, errors.New("not a number")
	}

	value, err := strconv.ParseInt(number.String(), 10, strconv.IntSize)
	if err == nil {
		return int(value), nil
	}

	approx, err := number.Float64()
	if err != nil || approx != math.Trunc(approx) || math.Abs(approx) > maxExactInteger {
		return 0, fmt.Errorf("%s is not an integer in range", number)
	}

	return int(approx), nil
}

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
