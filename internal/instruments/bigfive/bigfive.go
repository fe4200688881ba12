// Package bigfive registers the IPIP 50-item Big-Five factor markers.
package bigfive

import (
	"fmt"

	"github.com/mind-engage/mindengage-psychometrics/internal/instruments"
	"github.com/mind-engage/mindengage-psychometrics/internal/scoring"
)

const ID = "ipip-bfm-50"

const (
	Openness          = "openness"
	Conscientiousness = "conscientiousness"
	Extraversion      = "extraversion"
	Agreeableness     = "agreeableness"
	Neuroticism       = "neuroticism"
)

func init() { instruments.Register(New()) }

type marker struct {
	text     string
	dim      string
	reversed bool
}

// Items follow the published E, A, C, N, O rotation. Neuroticism is keyed
// towards instability, so the two stability items are the reversed ones.
var markers = [50]marker{
	{"Am the life of the party.", Extraversion, false},
	{"Feel little concern for others.", Agreeableness, true},
	{"Am always prepared.", Conscientiousness, false},
	{"Get stressed out easily.", Neuroticism, false},
	{"Have a rich vocabulary.", Openness, false},
	{"Don't talk a lot.", Extraversion, true},
	{"Am interested in people.", Agreeableness, false},
	{"Leave my belongings around.", Conscientiousness, true},
	{"Am relaxed most of the time.", Neuroticism, true},
	{"Have difficulty understanding abstract ideas.", Openness, true},
	{"Feel comfortable around people.", Extraversion, false},
	{"Insult people.", Agreeableness, true},
	{"Pay attention to details.", Conscientiousness, false},
	{"Worry about things.", Neuroticism, false},
	{"Have a vivid imagination.", Openness, false},
	{"Keep in the background.", Extraversion, true},
	{"Sympathize with others' feelings.", Agreeableness, false},
	{"Make a mess of things.", Conscientiousness, true},
	{"Seldom feel blue.", Neuroticism, true},
	{"Am not interested in abstract ideas.", Openness, true},
	{"Start conversations.", Extraversion, false},
	{"Am not interested in other people's problems.", Agreeableness, true},
	{"Get chores done right away.", Conscientiousness, false},
	{"Am easily disturbed.", Neuroticism, false},
	{"Have excellent ideas.", Openness, false},
	{"Have little to say.", Extraversion, true},
	{"Have a soft heart.", Agreeableness, false},
	{"Often forget to put things back in their proper place.", Conscientiousness, true},
	{"Get upset easily.", Neuroticism, false},
	{"Do not have a good imagination.", Openness, true},
	{"Talk to a lot of different people at parties.", Extraversion, false},
	{"Am not really interested in others.", Agreeableness, true},
	{"Like order.", Conscientiousness, false},
	{"Change my mood a lot.", Neuroticism, false},
	{"Am quick to understand things.", Openness, false},
	{"Don't like to draw attention to myself.", Extraversion, true},
	{"Take time out for others.", Agreeableness, false},
	{"Shirk my duties.", Conscientiousness, true},
	{"Have frequent mood swings.", Neuroticism, false},
	{"Use difficult words.", Openness, false},
	{"Don't mind being the center of attention.", Extraversion, false},
	{"Feel others' emotions.", Agreeableness, false},
	{"Follow a schedule.", Conscientiousness, false},
	{"Get irritated easily.", Neuroticism, false},
	{"Spend time reflecting on things.", Openness, false},
	{"Am quiet around strangers.", Extraversion, true},
	{"Make people feel at ease.", Agreeableness, false},
	{"Am exacting in my work.", Conscientiousness, false},
	{"Often feel blue.", Neuroticism, false},
	{"Am full of ideas.", Openness, false},
}

// ItemID numbers items from 1 as ipip01..ipip50.
func ItemID(n int) string { return fmt.Sprintf("ipip%02d", n) }

// New builds the instrument; each call returns fresh maps.
func New() instruments.Instrument {
	def := scoring.Definition{
		ID:                 ID,
		Category:           "personality",
		Algorithm:          scoring.TagBigFive,
		Scale:              scoring.Scale{Min: 1, Max: 5},
		Dimensions:         []string{Openness, Conscientiousness, Extraversion, Agreeableness, Neuroticism},
		QuestionDimensions: make(map[string]string, len(markers)),
	}
	items := make([]instruments.Item, 0, len(markers))
	for i, m := range markers {
		id := ItemID(i + 1)
		def.QuestionDimensions[id] = m.dim
		if m.reversed {
			def.Reversed = append(def.Reversed, id)
		}
		items = append(items, instruments.Item{ID: id, Text: m.text})
	}
	return instruments.Instrument{
		Definition: def,
		Title:      "IPIP Big-Five Factor Markers (50 items)",
		Version:    "1",
		Source:     "International Personality Item Pool, public domain",
		Items:      items,
	}
}
