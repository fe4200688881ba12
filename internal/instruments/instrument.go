package instruments

import (
	"errors"
	"fmt"

	"github.com/mind-engage/mindengage-psychometrics/internal/scoring"
)

// Instrument is a published assessment: its scoring definition plus the item
// text needed to administer it.
type Instrument struct {
	Definition scoring.Definition `json:"definition"`
	Title      string             `json:"title"`
	Version    string             `json:"version,omitempty"`
	Source     string             `json:"source,omitempty"` // citation or licence note
	Items      []Item             `json:"items,omitempty"`
}

type Item struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options,omitempty"` // for keyed items
}

func (i Instrument) ID() string { return i.Definition.ID }

// Summary is the catalogue listing entry.
type Summary struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Version   string      `json:"version,omitempty"`
	Algorithm scoring.Tag `json:"algorithm"`
	Items     int         `json:"items"`
}

func (i Instrument) Summary() Summary {
	tag, _ := scoring.Resolve(i.Definition)
	n := len(i.Items)
	if n == 0 {
		n = len(i.Definition.QuestionDimensions)
	}
	return Summary{ID: i.ID(), Title: i.Title, Version: i.Version, Algorithm: tag, Items: n}
}

// Validate runs structural checks on a definition. The engine tolerates all
// of these at scoring time; this is for definitions entering the catalogue
// or the store.
func Validate(def scoring.Definition) error {
	if def.ID == "" {
		return errors.New("definition.id is required")
	}
	if def.Scale != (scoring.Scale{}) && (def.Scale.Max <= def.Scale.Min || def.Scale.Max <= 0) {
		return fmt.Errorf("%s: invalid scale %d..%d", def.ID, def.Scale.Min, def.Scale.Max)
	}

	dims, err := uniqueSet(def.Dimensions)
	if err != nil {
		return fmt.Errorf("%s: dimensions: %w", def.ID, err)
	}
	axes, err := uniqueSet(def.Axes)
	if err != nil {
		return fmt.Errorf("%s: axes: %w", def.ID, err)
	}
	for a := range axes {
		if dims[a] {
			return fmt.Errorf("%s: axis %s shares its id with a dimension", def.ID, a)
		}
	}

	for q, d := range def.QuestionDimensions {
		if d == "" {
			return fmt.Errorf("%s: question %s has no dimension", def.ID, q)
		}
		if len(dims) > 0 && !dims[d] {
			return fmt.Errorf("%s: question %s maps to undeclared dimension %s", def.ID, q, d)
		}
	}
	for q, a := range def.QuestionAxes {
		if _, ok := def.QuestionDimensions[q]; !ok {
			return fmt.Errorf("%s: axis item %s has no dimension", def.ID, q)
		}
		if len(axes) > 0 && !axes[a] {
			return fmt.Errorf("%s: question %s maps to undeclared axis %s", def.ID, q, a)
		}
	}
	for _, q := range def.Reversed {
		if _, ok := def.QuestionDimensions[q]; !ok {
			return fmt.Errorf("%s: reversed item %s is not mapped", def.ID, q)
		}
	}
	for d, w := range def.Weights {
		if len(dims) > 0 && !dims[d] {
			return fmt.Errorf("%s: weight for undeclared dimension %s", def.ID, d)
		}
		if w < 0 {
			return fmt.Errorf("%s: negative weight for %s", def.ID, d)
		}
	}
	for _, d := range def.Protective {
		if len(dims) > 0 && !dims[d] {
			return fmt.Errorf("%s: protective dimension %s is not declared", def.ID, d)
		}
	}
	if len(def.Bands) > 0 {
		if err := def.Bands.Validate(); err != nil {
			return fmt.Errorf("%s: %w", def.ID, err)
		}
	}

	tag, _ := scoring.Resolve(def)
	if tag == scoring.TagCognitive {
		if len(def.AnswerKey) == 0 && len(def.QuestionDimensions) == 0 {
			return fmt.Errorf("%s: cognitive definition has no items", def.ID)
		}
		return nil
	}
	if len(def.QuestionDimensions) == 0 {
		return fmt.Errorf("%s: no question is mapped to a dimension", def.ID)
	}
	return nil
}

func uniqueSet(ids []string) (map[string]bool, error) {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			return nil, errors.New("empty id")
		}
		if set[id] {
			return nil, fmt.Errorf("duplicate id %s", id)
		}
		set[id] = true
	}
	return set, nil
}
