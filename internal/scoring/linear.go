package scoring

// aggregate runs the shared normalize → aggregate steps.
func aggregate(req Request) (*aggregation, anomalies) {
	items, an := normalizeAnswers(req.Answers, req.Definition)
	return aggregateDimensions(items, req.Definition.Dimensions), an
}

// meanRatio averages avg/max over the dimensions that received answers.
func meanRatio(scores []DimensionScore, s Scale) float64 {
	sum, n := 0.0, 0
	for _, ds := range scores {
		if ds.Count == 0 {
			continue
		}
		sum += ds.RawAverage / float64(s.Max)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// linearScorer is the generic fallback: count-weighted averages per
// dimension, reported as percentages.
type linearScorer struct{}

func (linearScorer) Score(req Request) Result {
	res, _ := scoreLinear(req)
	return res
}

func scoreLinear(req Request) (Result, []DimensionScore) {
	sc := req.Definition.scale()
	g, an := aggregate(req)
	res := newResult(g, an, RegimePercentage)
	scores := scoreDimensions(g, RegimePercentage, sc)
	labelDimensions(&res, scores, req.Bands)
	res.OverallScore = RoundHalfUp(meanRatio(scores, sc) * 100)
	res.Metadata[MetaClassification] = req.Bands.Resolve(res.OverallScore)
	return res, scores
}

// bigFiveScorer is linear scoring plus a trait ranking.
type bigFiveScorer struct{}

func (bigFiveScorer) Score(req Request) Result {
	res, scores := scoreLinear(req)
	ranking := rankDimensions(scores)
	res.Metadata[MetaRanking] = ranking
	if len(ranking) > 0 && ranking[0].Count > 0 {
		res.Metadata[MetaDominant] = ranking[0].ID
	}
	return res
}

// likertMeanScorer keeps the 1–5 mean for instruments whose published norms
// are Likert means rather than percentages.
type likertMeanScorer struct{}

func (likertMeanScorer) Score(req Request) Result {
	sc := req.Definition.scale()
	g, an := aggregate(req)
	res := newResult(g, an, RegimeMean)
	scores := scoreDimensions(g, RegimeMean, sc)
	labelDimensions(&res, scores, req.Bands)

	sum, n := 0.0, 0
	for _, ds := range scores {
		if ds.Count > 0 {
			sum += ds.RawAverage
			n++
		}
	}
	if n > 0 {
		res.OverallScore = Round2(sum / float64(n))
	}
	res.Metadata[MetaClassification] = req.Bands.Resolve(res.OverallScore)
	return res
}

// burnoutScorer reports Likert means; protective dimensions are flipped on
// the scale before they feed the risk labels and the overall index.
type burnoutScorer struct{}

func (burnoutScorer) Score(req Request) Result {
	def := req.Definition
	sc := def.scale()
	g, an := aggregate(req)
	res := newResult(g, an, RegimeMean)
	scores := scoreDimensions(g, RegimeMean, sc)

	protective := make(map[string]bool, len(def.Protective))
	for _, d := range def.Protective {
		protective[d] = true
	}

	labels := map[string]string{}
	riskAvg := map[string]float64{}
	risky := []string{}
	// the top two bands count as elevated risk
	elevated := len(req.Bands) - 2
	if elevated < 0 {
		elevated = 0
	}
	sum, n := 0.0, 0
	for _, ds := range scores {
		res.DimensionScores[ds.Dimension] = ds.Value
		if ds.Count == 0 {
			continue
		}
		risk := ds.RawAverage
		if protective[ds.Dimension] {
			risk = Reverse(risk, sc)
		}
		risk = Round2(risk)
		riskAvg[ds.Dimension] = risk
		labels[ds.Dimension] = req.Bands.Resolve(risk)
		if len(req.Bands) > 0 && risk >= req.Bands[elevated].Lower {
			risky = append(risky, ds.Dimension)
		}
		sum += risk
		n++
	}
	if n > 0 {
		res.OverallScore = Round2(sum / float64(n))
	}
	res.Metadata[MetaDimensionLabels] = labels
	res.Metadata[MetaRiskAverages] = riskAvg
	res.Metadata[MetaRiskDimensions] = risky
	res.Metadata[MetaClassification] = req.Bands.Resolve(res.OverallScore)
	return res
}

// emotionalScorer weights the overall score by item, not by dimension.
type emotionalScorer struct{}

func (emotionalScorer) Score(req Request) Result {
	sc := req.Definition.scale()
	g, an := aggregate(req)
	res := newResult(g, an, RegimePercentage)
	scores := scoreDimensions(g, RegimePercentage, sc)
	labelDimensions(&res, scores, req.Bands)

	sum, count := g.totals()
	if count > 0 {
		res.OverallScore = RoundHalfUp(sum / (float64(count) * float64(sc.Max)) * 100)
	}
	res.Metadata[MetaClassification] = req.Bands.Resolve(res.OverallScore)
	return res
}

// weightedScorer builds a composite index from declared dimension weights.
// Missing weights default to 1; negative weights count as 0.
type weightedScorer struct{}

func (weightedScorer) Score(req Request) Result {
	def := req.Definition
	sc := def.scale()
	g, an := aggregate(req)
	res := newResult(g, an, RegimePercentage)
	scores := scoreDimensions(g, RegimePercentage, sc)
	labelDimensions(&res, scores, req.Bands)

	used := make(map[string]float64, len(scores))
	num, den := 0.0, 0.0
	for _, ds := range scores {
		w, ok := def.Weights[ds.Dimension]
		if !ok {
			w = 1
		}
		if w < 0 {
			w = 0
		}
		used[ds.Dimension] = w
		if ds.Count == 0 {
			continue
		}
		num += w * ds.RawAverage / float64(sc.Max)
		den += w
	}
	if den > 0 {
		res.OverallScore = RoundHalfUp(num / den * 100)
	}
	res.Metadata[MetaWeights] = used
	res.Metadata[MetaClassification] = req.Bands.Resolve(res.OverallScore)
	return res
}
