package scoring

import "fmt"

// compositeScorer implements multi-axis subtype typing: every answer feeds a
// category accumulator and, when mapped, an axis accumulator. The two
// rankings are independent.
//
// Partially answered assessments still rank every declared category; an
// unanswered category sits at 0 % and the consistency signal drops instead
// of the call failing.
type compositeScorer struct{}

func (compositeScorer) Score(req Request) Result {
	def := req.Definition
	sc := def.scale()
	items, an := normalizeAnswers(req.Answers, def)
	cats := aggregateDimensions(items, def.Dimensions)
	axes := aggregateAxes(items, def.Axes)

	res := newResult(cats, an, RegimePercentage)
	catRank := rankAggregation(cats, sc)
	axisRank := rankAggregation(axes, sc)
	for _, r := range catRank {
		res.DimensionScores[r.ID] = r.Percentage
	}
	for _, r := range axisRank {
		if _, clash := res.DimensionScores[r.ID]; clash {
			continue // category wins; the axis value stays in axis_ranking
		}
		res.DimensionScores[r.ID] = r.Percentage
	}

	res.Metadata[MetaCategoryRanking] = catRank
	res.Metadata[MetaAxisRanking] = axisRank
	res.Metadata[MetaAxisItemCounts] = axes.counts()

	var domCat, domAxis RankEntry
	if len(catRank) > 0 {
		domCat = catRank[0]
		res.Metadata[MetaDominantCategory] = domCat.ID
	}
	if len(axisRank) > 0 {
		domAxis = axisRank[0]
		res.Metadata[MetaDominantAxis] = domAxis.ID
	}
	res.Metadata[MetaCompositeCode] = domCat.ID + domAxis.ID
	switch {
	case len(catRank) > 0 && len(axisRank) > 0:
		res.OverallScore = RoundHalfUp((domCat.Percentage + domAxis.Percentage) / 2)
	case len(catRank) > 0:
		res.OverallScore = domCat.Percentage
	}

	if wing, ok := wingOf(cats.order, catRank); ok {
		res.Metadata[MetaWing] = wing
		res.Metadata[MetaWingCode] = fmt.Sprintf("%sw%s", domCat.ID, wing)
	}

	gap := consistencyGap(catRank)
	level := req.Bands.Resolve(gap)
	res.Metadata[MetaConsistencyGap] = gap
	res.Metadata[MetaConsistency] = level
	if level == ConsistencyLow {
		res.Metadata[MetaConsistencyNote] = LowConsistencyNote
	}
	res.Metadata[MetaClassification] = level
	return res
}

// wingOf picks the circular neighbour of the dominant category with the
// higher percentage. Equal neighbours resolve to the one ranked first.
func wingOf(order []string, ranking []RankEntry) (string, bool) {
	n := len(order)
	if n < 3 || len(ranking) == 0 {
		return "", false
	}
	dom := ranking[0].ID
	idx := -1
	for i, id := range order {
		if id == dom {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", false
	}
	prev := order[(idx-1+n)%n]
	next := order[(idx+1)%n]
	for _, r := range ranking {
		if r.ID == prev || r.ID == next {
			return r.ID, true
		}
	}
	return "", false
}

// consistencyGap is the percentage distance between rank 0 and rank 2, or
// the last rank when fewer than three categories exist.
func consistencyGap(ranking []RankEntry) float64 {
	if len(ranking) < 2 {
		return 0
	}
	third := 2
	if len(ranking) < 3 {
		third = len(ranking) - 1
	}
	return ranking[0].Percentage - ranking[third].Percentage
}
