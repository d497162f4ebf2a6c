package entity

import "fmt"

// Total is the sum of a player's set scores. Defined is false until at least
// one round has a score.
type Total struct {
	Value   int  `json:"value"`
	Defined bool `json:"defined"`
}

type Player struct {
	Name   string  `json:"name"`
	Scores []Score `json:"scores"`
}

func NewPlayer(name string, rounds int) *Player {
	return &Player{
		Name:   name,
		Scores: make([]Score, max(rounds, 0)),
	}
}

// DefaultPlayerName - name given to a player appended at position index.
func DefaultPlayerName(index int) string {
	return fmt.Sprintf("player %d", index+1)
}

func (that *Player) Total() Total {
	var total Total

	for _, score := range that.Scores {
		if score.Set {
			total.Value += score.Value
			total.Defined = true
		}
	}

	return total
}

func (that *Player) resize(rounds int) {
	if rounds <= len(that.Scores) {
		that.Scores = that.Scores[:rounds]
		return
	}

	that.Scores = append(that.Scores, make([]Score, rounds-len(that.Scores))...)
}

func (that *Player) clear() {
	for i := range that.Scores {
		that.Scores[i] = Unset()
	}
}
