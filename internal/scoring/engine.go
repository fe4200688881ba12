package scoring

// Request is everything a variant needs for one scoring call.
type Request struct {
	Answers       []Answer
	Definition    Definition
	Bands         Bands
	StandardTable StandardTable
}

// Scorer is the capability shared by every variant:
// normalize → aggregate → classify.
type Scorer interface {
	Score(req Request) Result
}

// Engine dispatches a definition to its variant. It holds no per-call state
// and is safe for concurrent use.
type Engine struct {
	scorers map[Tag]Scorer
	bands   map[Tag]Bands
	table   StandardTable
}

// Engine options

type Option func(*Engine)

// WithBands replaces the default classification table of one variant.
// Invalid tables are ignored.
func WithBands(tag Tag, b Bands) Option {
	return func(e *Engine) {
		if b.Validate() == nil {
			e.bands[tag] = b
		}
	}
}

// WithStandardScoreTable replaces the correctness-ratio table.
func WithStandardScoreTable(t StandardTable) Option {
	return func(e *Engine) {
		if t.valid() {
			e.table = t
		}
	}
}

// NewEngine installs the built-in variants.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		scorers: map[Tag]Scorer{
			TagLinear:                linearScorer{},
			TagBigFive:               bigFiveScorer{},
			TagLikertMean:            likertMeanScorer{},
			TagBurnout:               burnoutScorer{},
			TagEmotionalIntelligence: emotionalScorer{},
			TagWeightedIndex:         weightedScorer{},
			TagDominantProfile:       dominantScorer{},
			TagHollandCode:           hollandScorer{},
			TagCognitive:             cognitiveScorer{},
			TagEnneagram:             compositeScorer{},
		},
		bands: map[Tag]Bands{
			TagLinear:                GenericBands,
			TagBigFive:               BigFiveBands,
			TagLikertMean:            LikertMeanBands,
			TagBurnout:               BurnoutBands,
			TagEmotionalIntelligence: EmotionalIntelligenceBands,
			TagWeightedIndex:         GenericBands,
			TagDominantProfile:       DominanceBands,
			TagHollandCode:           GenericBands,
			TagCognitive:             StandardScoreBands,
			TagEnneagram:             ConsistencyBands,
		},
		table: DefaultStandardTable,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Score runs the variant selected for def. It never fails; anomalies are
// reported in the result metadata.
func (e *Engine) Score(answers []Answer, def Definition) Result {
	tag, fallback := Resolve(def)
	s, ok := e.scorers[tag]
	if !ok {
		tag, fallback = TagLinear, true
		s = e.scorers[TagLinear]
	}

	bands := e.bands[tag]
	invalidBands := false
	if len(def.Bands) > 0 {
		if def.Bands.Validate() == nil {
			bands = def.Bands
		} else {
			invalidBands = true
		}
	}

	res := s.Score(Request{
		Answers:       answers,
		Definition:    def,
		Bands:         bands,
		StandardTable: e.table,
	})
	if res.Metadata == nil {
		res.Metadata = map[string]any{}
	}
	if res.DimensionScores == nil {
		res.DimensionScores = map[string]float64{}
	}
	res.Metadata[MetaAlgorithm] = string(tag)
	if fallback {
		res.Metadata[MetaFallback] = true
		res.Metadata[MetaRequested] = requested(def)
	}
	if invalidBands {
		res.Metadata[MetaInvalidBands] = true
	}
	return res
}

// Bands returns the default classification table of a variant.
func (e *Engine) Bands(tag Tag) Bands { return e.bands[tag] }

func requested(def Definition) string {
	switch {
	case def.Algorithm != "":
		return string(def.Algorithm)
	case def.ID != "":
		return def.ID
	default:
		return def.Category
	}
}

var defaultEngine = NewEngine()

// Score runs the default engine.
func Score(answers []Answer, def Definition) Result {
	return defaultEngine.Score(answers, def)
}
