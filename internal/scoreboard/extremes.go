// Package scoreboard derives display data from a game: which players hold the
// extreme totals and the table projection consumed by renderers.
package scoreboard

import "github.com/rocketscienceinc/scorekeeper-backend/internal/entity"

// Extreme flags one player's total as the strict highest and/or lowest.
type Extreme struct {
	HasHighest bool `json:"has_highest"`
	HasLowest  bool `json:"has_lowest"`
}

// CalculateExtremes returns one Extreme per total. Tied players share a flag.
// Nothing is flagged when the highest and lowest sets are the same, or when
// either set covers every player or every player with a defined total.
func CalculateExtremes(totals []entity.Total) []Extreme {
	extremes := make([]Extreme, len(totals))

	var (
		highest, lowest int
		highIdx, lowIdx []int
		defined         int
	)

	for i, total := range totals {
		if !total.Defined {
			continue
		}

		defined++

		if defined == 1 {
			highest, lowest = total.Value, total.Value
			highIdx, lowIdx = []int{i}, []int{i}
			continue
		}

		switch {
		case total.Value > highest:
			highest, highIdx = total.Value, []int{i}
		case total.Value == highest:
			highIdx = append(highIdx, i)
		}

		switch {
		case total.Value < lowest:
			lowest, lowIdx = total.Value, []int{i}
		case total.Value == lowest:
			lowIdx = append(lowIdx, i)
		}
	}

	if defined == 0 || isDegenerate(highIdx, lowIdx, len(totals), defined) {
		return extremes
	}

	for _, i := range highIdx {
		extremes[i].HasHighest = true
	}

	for _, i := range lowIdx {
		extremes[i].HasLowest = true
	}

	return extremes
}

func isDegenerate(highIdx, lowIdx []int, players, defined int) bool {
	if sameIndices(highIdx, lowIdx) {
		return true
	}

	for _, size := range []int{len(highIdx), len(lowIdx)} {
		if size == players || size == defined {
			return true
		}
	}

	return false
}

// sameIndices compares two ascending index lists.
func sameIndices(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
