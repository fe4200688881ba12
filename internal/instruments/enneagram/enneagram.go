// Package enneagram registers a 45-item enneagram inventory with instinct
// axes. Every type has five statements; instincts rotate across items so
// each axis carries fifteen.
package enneagram

import (
	"fmt"
	"strconv"

	"github.com/mind-engage/mindengage-psychometrics/internal/instruments"
	"github.com/mind-engage/mindengage-psychometrics/internal/scoring"
)

const ID = "enneagram-45"

var (
	Types     = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	Instincts = []string{"sp", "so", "sx"}
)

func init() { instruments.Register(New()) }

var statements = [9][5]string{
	{
		"I notice mistakes others overlook.",
		"I hold myself to high standards.",
		"I get irritated when things are done the wrong way.",
		"I find it hard to relax until the work is right.",
		"I have a strong inner critic.",
	},
	{
		"I sense what others need before they ask.",
		"I like being needed by the people close to me.",
		"I find it hard to say no to requests for help.",
		"I feel hurt when my help goes unnoticed.",
		"I put other people's needs ahead of my own.",
	},
	{
		"I set goals and work hard to reach them.",
		"I care about how successful I appear.",
		"I adapt my style to impress different audiences.",
		"I measure my worth by what I accomplish.",
		"I dislike being seen to fail.",
	},
	{
		"I often feel different from other people.",
		"I am drawn to deep and intense emotions.",
		"I long for what seems to be missing in my life.",
		"Authenticity matters more to me than fitting in.",
		"I express myself through a personal style.",
	},
	{
		"I need time alone to recharge.",
		"I prefer to observe before I take part.",
		"I collect knowledge on subjects that interest me.",
		"I guard my time and energy closely.",
		"I think things through rather than act on impulse.",
	},
	{
		"I anticipate what could go wrong.",
		"I look for people and systems I can trust.",
		"I question authority before I accept it.",
		"I prepare for worst-case scenarios.",
		"Loyalty is one of my strongest values.",
	},
	{
		"I keep my options open.",
		"I am always planning the next adventure.",
		"I reframe bad news in a positive light.",
		"I get bored with routine quickly.",
		"I have many interests at the same time.",
	},
	{
		"I take charge when a situation needs direction.",
		"I say what I think, even when it is uncomfortable.",
		"I protect people who cannot protect themselves.",
		"I dislike showing weakness.",
		"I push back when someone tries to control me.",
	},
	{
		"I avoid conflict whenever possible.",
		"I can see every side of an argument.",
		"I go along with others to keep the peace.",
		"I tend to put off important decisions.",
		"I feel most comfortable when everyone gets along.",
	},
}

func ItemID(n int) string { return fmt.Sprintf("en%02d", n) }

func New() instruments.Instrument {
	def := scoring.Definition{
		ID:                 ID,
		Category:           "enneagram",
		Algorithm:          scoring.TagEnneagram,
		Scale:              scoring.Scale{Min: 1, Max: 5},
		Dimensions:         Types,
		QuestionDimensions: make(map[string]string, 45),
		Axes:               Instincts,
		QuestionAxes:       make(map[string]string, 45),
	}
	var items []instruments.Item
	n := 0
	for t, texts := range statements {
		for _, text := range texts {
			id := ItemID(n + 1)
			def.QuestionDimensions[id] = strconv.Itoa(t + 1)
			def.QuestionAxes[id] = Instincts[n%len(Instincts)]
			items = append(items, instruments.Item{ID: id, Text: text})
			n++
		}
	}
	return instruments.Instrument{
		Definition: def,
		Title:      "Enneagram with instinctual variants (45 items)",
		Version:    "1",
		Items:      items,
	}
}
