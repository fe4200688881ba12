package scoring

import (
	"errors"
	"fmt"
)

// Band is one row of a classification table.
type Band struct {
	Lower float64 `json:"lower"`
	Label string  `json:"label"`
}

// Bands is ordered by non-decreasing lower bound.
type Bands []Band

// Resolve returns the label of the band with the greatest lower bound <= v.
// A value on a boundary belongs to the higher band; values below the first
// bound take the first band.
func (b Bands) Resolve(v float64) string {
	if len(b) == 0 {
		return ""
	}
	for i := len(b) - 1; i >= 0; i-- {
		if v >= b[i].Lower {
			return b[i].Label
		}
	}
	return b[0].Label
}

// Validate checks ordering and labels.
func (b Bands) Validate() error {
	if len(b) == 0 {
		return errors.New("bands: empty table")
	}
	for i, band := range b {
		if band.Label == "" {
			return fmt.Errorf("bands: row %d has no label", i)
		}
		if i > 0 && band.Lower < b[i-1].Lower {
			return fmt.Errorf("bands: row %d lower bound %.2f below previous %.2f", i, band.Lower, b[i-1].Lower)
		}
	}
	return nil
}

// Published tables. These are contracts; do not retune.
var (
	GenericBands = Bands{
		{0, "Muito Baixo"},
		{20, "Baixo"},
		{40, "Médio"},
		{60, "Alto"},
		{80, "Muito Alto"},
	}
	BigFiveBands = Bands{
		{0, "Muito Baixo"},
		{30, "Baixo"},
		{45, "Médio"},
		{60, "Alto"},
		{75, "Muito Alto"},
	}
	LikertMeanBands = Bands{
		{0, "Baixo"},
		{2.5, "Moderado"},
		{3.5, "Alto"},
		{4.5, "Muito Alto"},
	}
	BurnoutBands = Bands{
		{0, "Baixo"},
		{2, "Moderado"},
		{3, "Alto"},
		{4, "Crítico"},
	}
	EmotionalIntelligenceBands = Bands{
		{0, "Muito Baixo"},
		{30, "Baixo"},
		{50, "Médio"},
		{65, "Bom"},
		{80, "Alto"},
		{90, "Excelente"},
	}
	DominanceBands = Bands{
		{0, "Baixa"},
		{40, "Moderada"},
		{60, "Alta"},
		{80, "Muito Alta"},
	}
	StandardScoreBands = Bands{
		{0, "Limítrofe"},
		{80, "Média Inferior"},
		{90, "Média"},
		{110, "Média Superior"},
		{120, "Superior"},
		{130, "Muito Superior"},
	}
	ConsistencyBands = Bands{
		{0, ConsistencyLow},
		{10, ConsistencyModerate},
		{20, ConsistencyGood},
		{30, ConsistencyHigh},
	}
)

const (
	ConsistencyHigh     = "high"
	ConsistencyGood     = "good"
	ConsistencyModerate = "moderate"
	ConsistencyLow      = "low"

	LowConsistencyNote = "result may be unreliable"
)
