package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

var nullJSON = []byte("null")

// Score is a single round slot. An unset slot is distinct from a recorded zero.
type Score struct {
	Value int
	Set   bool
}

func Unset() Score {
	return Score{}
}

func ScoreOf(value int) Score {
	return Score{Value: value, Set: true}
}

func (that Score) IsSet() bool {
	return that.Set
}

// ParseScore turns raw cell input into a score. Input that is not a base-10
// integer yields an unset slot, never a zero.
func ParseScore(raw string) Score {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Unset()
	}

	return ScoreOf(value)
}

func (that Score) String() string {
	if !that.Set {
		return ""
	}

	return strconv.Itoa(that.Value)
}

func (that Score) MarshalJSON() ([]byte, error) {
	if !that.Set {
		return nullJSON, nil
	}

	return []byte(strconv.Itoa(that.Value)), nil
}

func (that *Score) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), nullJSON) {
		*that = Unset()
		return nil
	}

	var value int
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("invalid score: %w", err)
	}

	*that = ScoreOf(value)

	return nil
}
