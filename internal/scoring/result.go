package scoring

// Metadata keys.
const (
	MetaAlgorithm    = "algorithm"
	MetaFallback     = "algorithm_fallback"
	MetaRequested    = "requested_algorithm"
	MetaInvalidBands = "invalid_bands"

	MetaItemCounts  = "item_counts"
	MetaRawAverages = "raw_averages"
	MetaEmpty       = "empty_dimensions"
	MetaUnmapped    = "unmapped_answers"
	MetaClamped     = "clamped_answers"
	MetaInvalid     = "invalid_answers"

	MetaRegime          = "regime"
	MetaClassification  = "classification"
	MetaDimensionLabels = "dimension_labels"
	MetaDominant        = "dominant"
	MetaSecondary       = "secondary"
	MetaRanking         = "ranking"
	MetaCode            = "code"
	MetaWeights         = "weights"
	MetaRiskDimensions  = "risk_dimensions"
	MetaRiskAverages    = "risk_averages"

	MetaCorrect       = "correct"
	MetaTotal         = "total"
	MetaRatio         = "ratio"
	MetaStandardScore = "standard_score"
	MetaUnanswered    = "unanswered"

	MetaCompositeCode    = "composite_code"
	MetaDominantCategory = "dominant_category"
	MetaDominantAxis     = "dominant_axis"
	MetaCategoryRanking  = "category_ranking"
	MetaAxisRanking      = "axis_ranking"
	MetaAxisItemCounts   = "axis_item_counts"
	MetaWing             = "wing"
	MetaWingCode         = "wing_code"
	MetaConsistency      = "consistency"
	MetaConsistencyGap   = "consistency_gap"
	MetaConsistencyNote  = "consistency_note"
)

// newResult starts a result with the audit metadata every variant carries.
func newResult(g *aggregation, an anomalies, regime Regime) Result {
	raw := make(map[string]float64, len(g.order))
	for _, d := range g.order {
		raw[d] = Round2(g.acc[d].average())
	}
	return Result{
		DimensionScores: make(map[string]float64, len(g.order)),
		Metadata: map[string]any{
			MetaRegime:      string(regime),
			MetaItemCounts:  g.counts(),
			MetaRawAverages: raw,
			MetaEmpty:       g.empty(),
			MetaUnmapped:    nonNil(an.unmapped),
			MetaClamped:     nonNil(an.clamped),
			MetaInvalid:     nonNil(an.invalid),
		},
	}
}

// scoreDimensions rescales every accumulator in declared order.
func scoreDimensions(g *aggregation, regime Regime, s Scale) []DimensionScore {
	out := make([]DimensionScore, 0, len(g.order))
	for _, d := range g.order {
		a := g.acc[d]
		ds := DimensionScore{Dimension: d, RawAverage: a.average(), Count: a.count}
		if a.count > 0 {
			switch regime {
			case RegimeMean:
				ds.Value = MeanPreserving(ds.RawAverage)
			default:
				ds.Value = Percentage(ds.RawAverage, s)
			}
		}
		out = append(out, ds)
	}
	return out
}

// labelDimensions writes dimension values and their labels into res.
func labelDimensions(res *Result, scores []DimensionScore, bands Bands) {
	labels := make(map[string]string, len(scores))
	for _, ds := range scores {
		res.DimensionScores[ds.Dimension] = ds.Value
		if ds.Count > 0 {
			labels[ds.Dimension] = bands.Resolve(ds.Value)
		}
	}
	res.Metadata[MetaDimensionLabels] = labels
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
