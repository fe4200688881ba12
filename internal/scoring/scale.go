package scoring

import "math"

// Regime selects how raw aggregates are rescaled for reporting.
type Regime string

const (
	RegimePercentage    Regime = "percentage"
	RegimeMean          Regime = "mean"
	RegimeStandardScore Regime = "standard_score"
)

// RoundHalfUp rounds to the nearest integer, halves towards +Inf.
func RoundHalfUp(x float64) float64 { return math.Floor(x + 0.5) }

// Round2 rounds half-up to two decimals.
func Round2(x float64) float64 { return math.Floor(x*100+0.5) / 100 }

// Percentage maps a raw average onto 0..100 against the scale maximum.
func Percentage(avg float64, s Scale) float64 {
	if s.Max <= 0 {
		return 0
	}
	return RoundHalfUp(avg / float64(s.Max) * 100)
}

// MeanPreserving keeps the Likert mean, rounded to two decimals.
func MeanPreserving(avg float64) float64 { return Round2(avg) }

// StandardStep is one row of a banded standard-score table.
type StandardStep struct {
	MinRatio float64 `json:"min_ratio"`
	Score    float64 `json:"score"`
}

// StandardTable is ordered from the highest ratio down. The last row is the
// floor and applies to every ratio below the previous rows.
type StandardTable []StandardStep

// DefaultStandardTable is the published correctness-ratio table.
var DefaultStandardTable = StandardTable{
	{0.95, 145},
	{0.90, 130},
	{0.80, 120},
	{0.70, 110},
	{0.60, 105},
	{0.50, 100},
	{0.40, 95},
	{0.30, 85},
	{0.20, 80},
	{0, 70},
}

// Lookup is a step function, not an interpolation.
func (t StandardTable) Lookup(ratio float64) float64 {
	if len(t) == 0 {
		return 0
	}
	for _, s := range t {
		if ratio >= s.MinRatio {
			return s.Score
		}
	}
	return t[len(t)-1].Score
}

func (t StandardTable) valid() bool {
	if len(t) == 0 {
		return false
	}
	for i := 1; i < len(t); i++ {
		if t[i].MinRatio > t[i-1].MinRatio {
			return false
		}
	}
	return true
}
