// Package cognitive registers a 20-item progressive-matrices style test. Each
// item shows a matrix with a missing cell and eight candidate completions.
package cognitive

import (
	"fmt"

	"github.com/mind-engage/mindengage-psychometrics/internal/instruments"
	"github.com/mind-engage/mindengage-psychometrics/internal/scoring"
)

const ID = "matrices-20"

// Key is the correct option per item, in item order.
var Key = [20]string{
	"C", "E", "A", "F", "B", "H", "D", "G", "A", "C",
	"E", "B", "F", "D", "H", "G", "B", "A", "C", "E",
}

var options = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

func init() { instruments.Register(New()) }

func ItemID(n int) string { return fmt.Sprintf("mx%02d", n) }

func New() instruments.Instrument {
	def := scoring.Definition{
		ID:        ID,
		Category:  "cognitive",
		Algorithm: scoring.TagCognitive,
		AnswerKey: make(map[string]string, len(Key)),
	}
	items := make([]instruments.Item, 0, len(Key))
	for i, k := range Key {
		id := ItemID(i + 1)
		def.AnswerKey[id] = k
		items = append(items, instruments.Item{
			ID:      id,
			Text:    fmt.Sprintf("Matrix %d: choose the piece that completes the pattern.", i+1),
			Options: options,
		})
	}
	return instruments.Instrument{
		Definition: def,
		Title:      "Progressive matrices (20 items)",
		Version:    "1",
		Items:      items,
	}
}
