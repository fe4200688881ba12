package scoring

// Answer is one collected response. Value is a number for Likert items or a
// string/bool for correctness-graded items.
type Answer struct {
	QuestionID string         `json:"questionId"`
	Value      any            `json:"rawValue"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Scale is the declared response range of an assessment.
type Scale struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultScale is the 1–5 Likert range used when a definition declares none.
var DefaultScale = Scale{Min: 1, Max: 5}

func (s Scale) valid() bool { return s.Max > s.Min && s.Max > 0 }

// Definition is the resolved assessment definition supplied by the caller.
// It is treated as read-only.
type Definition struct {
	ID        string `json:"id"`
	Category  string `json:"category,omitempty"`
	Algorithm Tag    `json:"algorithm,omitempty"`
	Scale     Scale  `json:"scale"`

	// Dimensions holds the declared order; for subtype assessments these are
	// the categories.
	Dimensions         []string          `json:"dimensions"`
	QuestionDimensions map[string]string `json:"question_dimensions"`

	Axes         []string          `json:"axes,omitempty"`
	QuestionAxes map[string]string `json:"question_axes,omitempty"`

	Reversed   []string           `json:"reversed,omitempty"`
	AnswerKey  map[string]string  `json:"answer_key,omitempty"`
	Weights    map[string]float64 `json:"weights,omitempty"`
	Protective []string           `json:"protective,omitempty"`
	Bands      Bands              `json:"bands,omitempty"`
}

func (d Definition) scale() Scale {
	if d.Scale.valid() {
		return d.Scale
	}
	return DefaultScale
}

// Result is the flat, serialisation-friendly engine output.
type Result struct {
	OverallScore    float64            `json:"overallScore"`
	DimensionScores map[string]float64 `json:"dimensionScores"`
	Metadata        map[string]any     `json:"metadata"`
}

// DimensionScore is the derived value for one dimension.
type DimensionScore struct {
	Dimension  string
	Value      float64
	RawAverage float64
	Count      int
}

// RankEntry is one row of a category or axis ranking.
type RankEntry struct {
	ID         string  `json:"id"`
	Percentage float64 `json:"percentage"`
	Raw        float64 `json:"raw"`
	Count      int     `json:"count"`
}
