package scoring

import (
	"sort"
	"strings"
)

// rankDimensions orders dimension scores by reported percentage, highest
// first. The sort is stable over the declared order, so equal percentages
// keep ascending declared position even when the unrounded averages differ.
func rankDimensions(scores []DimensionScore) []RankEntry {
	out := make([]RankEntry, 0, len(scores))
	for _, ds := range scores {
		out = append(out, RankEntry{ID: ds.Dimension, Percentage: ds.Value, Raw: Round2(ds.RawAverage * float64(ds.Count)), Count: ds.Count})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Percentage > out[j].Percentage })
	return out
}

// rankAggregation ranks accumulators by the share of their own maximum
// attainable score (count × max).
func rankAggregation(g *aggregation, s Scale) []RankEntry {
	return rankDimensions(scoreDimensions(g, RegimePercentage, s))
}

func codeOf(ranking []RankEntry, n int) string {
	var b strings.Builder
	for i := 0; i < n && i < len(ranking); i++ {
		b.WriteString(ranking[i].ID)
	}
	return b.String()
}

// dominantScorer reports the primary and secondary dimensions and a two
// letter profile code.
type dominantScorer struct{}

func (dominantScorer) Score(req Request) Result {
	sc := req.Definition.scale()
	g, an := aggregate(req)
	res := newResult(g, an, RegimePercentage)
	scores := scoreDimensions(g, RegimePercentage, sc)
	labelDimensions(&res, scores, req.Bands)

	ranking := rankDimensions(scores)
	res.Metadata[MetaRanking] = ranking
	if len(ranking) > 0 {
		res.OverallScore = ranking[0].Percentage
		res.Metadata[MetaDominant] = ranking[0].ID
	}
	if len(ranking) > 1 {
		res.Metadata[MetaSecondary] = ranking[1].ID
	}
	res.Metadata[MetaCode] = codeOf(ranking, 2)
	res.Metadata[MetaClassification] = req.Bands.Resolve(res.OverallScore)
	return res
}

// hollandScorer reports a three letter interest code from the top ranked
// dimensions; the overall score is the mean of those three.
type hollandScorer struct{}

func (hollandScorer) Score(req Request) Result {
	sc := req.Definition.scale()
	g, an := aggregate(req)
	res := newResult(g, an, RegimePercentage)
	scores := scoreDimensions(g, RegimePercentage, sc)
	labelDimensions(&res, scores, req.Bands)

	ranking := rankDimensions(scores)
	res.Metadata[MetaRanking] = ranking
	top := 3
	if len(ranking) < top {
		top = len(ranking)
	}
	if top > 0 {
		sum := 0.0
		for _, r := range ranking[:top] {
			sum += g.get(r.ID).average() / float64(sc.Max)
		}
		res.OverallScore = RoundHalfUp(sum / float64(top) * 100)
		res.Metadata[MetaDominant] = ranking[0].ID
	}
	res.Metadata[MetaCode] = codeOf(ranking, 3)
	res.Metadata[MetaClassification] = req.Bands.Resolve(res.OverallScore)
	return res
}
