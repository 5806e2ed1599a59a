package odds

import "math"

// Pair is an American-odds moneyline for one competition.
// A nil side means unresolved, never zero.
type Pair struct {
	Home *float64
	Away *float64
}

func NewPair(home, away *float64) Pair {
	return Pair{Home: finite(home), Away: finite(away)}
}

// IsEmpty reports whether neither side resolved.
func (p Pair) IsEmpty() bool {
	return p.Home == nil && p.Away == nil
}

// ImpliedProbability converts American odds into a win probability in [0, 1].
// Zero, nil and non-finite inputs have no probability.
func ImpliedProbability(american *float64) *float64 {
	if american == nil {
		return nil
	}
	n := *american
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}

	var p float64
	if n > 0 {
		p = 100 / (n + 100)
	} else {
		abs := math.Abs(n)
		p = abs / (abs + 100)
	}
	return &p
}

func finite(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	out := *v
	return &out
}
