package scoring

import (
	"math"
	"sort"
)

// GeneralDimension collects correctness items when a definition declares no
// dimensions.
const GeneralDimension = "general"

// cognitiveScorer grades answers for correctness and maps the correctness
// ratio onto a banded standard score.
//
// An answer is graded against AnswerKey when the question has a key, else it
// must be pre-graded (true/false, 1/0, "correct"). Keyed questions that were
// never answered count as incorrect.
type cognitiveScorer struct{}

func (cognitiveScorer) Score(req Request) Result {
	def := req.Definition
	var an anomalies

	graded := map[string]item{}
	order := []string{}
	for _, a := range req.Answers {
		key, keyed := def.AnswerKey[a.QuestionID]
		dim, mapped := def.QuestionDimensions[a.QuestionID]
		if !keyed && !mapped {
			an.unmapped = append(an.unmapped, a.QuestionID)
			continue
		}
		if dim == "" {
			dim = GeneralDimension
		}

		correct := false
		if keyed {
			c, ok := matchesKey(a.Value, key)
			if !ok {
				an.invalid = append(an.invalid, a.QuestionID)
			}
			correct = c
		} else {
			c, ok := truthy(a.Value)
			if !ok {
				an.invalid = append(an.invalid, a.QuestionID)
				continue
			}
			correct = c
		}

		v := 0.0
		if correct {
			v = 1
		}
		if _, seen := graded[a.QuestionID]; !seen {
			order = append(order, a.QuestionID)
		}
		graded[a.QuestionID] = item{question: a.QuestionID, dimension: dim, value: v}
	}

	unanswered := []string{}
	for q := range def.AnswerKey {
		if _, ok := graded[q]; ok {
			continue
		}
		dim := def.QuestionDimensions[q]
		if dim == "" {
			dim = GeneralDimension
		}
		unanswered = append(unanswered, q)
		graded[q] = item{question: q, dimension: dim, value: 0}
	}
	sort.Strings(unanswered)
	order = append(order, unanswered...)

	items := make([]item, 0, len(order))
	for _, q := range order {
		items = append(items, graded[q])
	}
	declared := def.Dimensions
	if len(declared) == 0 {
		declared = []string{GeneralDimension}
	}
	g := aggregateDimensions(items, declared)

	an.sort()
	res := newResult(g, an, RegimeStandardScore)
	for _, d := range g.order {
		a := g.acc[d]
		if a.count > 0 {
			res.DimensionScores[d] = RoundHalfUp(a.average() * 100)
		} else {
			res.DimensionScores[d] = 0
		}
	}

	correct, total := g.totals()
	res.Metadata[MetaCorrect] = int(correct)
	res.Metadata[MetaTotal] = total
	res.Metadata[MetaUnanswered] = unanswered
	if total == 0 {
		res.Metadata[MetaRatio] = 0.0
		res.Metadata[MetaStandardScore] = 0.0
		res.Metadata[MetaClassification] = ""
		return res
	}
	ratio := correct / float64(total)
	std := req.StandardTable.Lookup(ratio)
	res.OverallScore = std
	res.Metadata[MetaRatio] = math.Floor(ratio*10000+0.5) / 10000
	res.Metadata[MetaStandardScore] = std
	res.Metadata[MetaClassification] = req.Bands.Resolve(std)
	return res
}
