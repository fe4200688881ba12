package scoring

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// item is an answer after dimension resolution, clamping and reverse keying.
type item struct {
	question  string
	dimension string
	axis      string
	value     float64
}

// anomalies are absorbed input problems, reported as metadata flags.
type anomalies struct {
	unmapped []string
	clamped  []string
	invalid  []string
}

func (a *anomalies) sort() {
	sort.Strings(a.unmapped)
	sort.Strings(a.clamped)
	sort.Strings(a.invalid)
}

// Clamp pulls v into the declared scale.
func Clamp(v float64, s Scale) float64 {
	if v < float64(s.Min) {
		return float64(s.Min)
	}
	if v > float64(s.Max) {
		return float64(s.Max)
	}
	return v
}

// Reverse flips a value on the scale. On a 1-based scale this is (max+1)-v.
func Reverse(v float64, s Scale) float64 {
	return float64(s.Min+s.Max) - v
}

// normalizeAnswers resolves every answer to its dimension (and axis when the
// definition declares one) and applies clamping and reverse keying. A question
// answered twice keeps its last answer.
func normalizeAnswers(answers []Answer, def Definition) ([]item, anomalies) {
	var an anomalies
	sc := def.scale()
	reversed := make(map[string]struct{}, len(def.Reversed))
	for _, q := range def.Reversed {
		reversed[q] = struct{}{}
	}

	out := make([]item, 0, len(answers))
	pos := make(map[string]int, len(answers))
	for _, a := range answers {
		dim, ok := def.QuestionDimensions[a.QuestionID]
		if !ok || dim == "" {
			an.unmapped = append(an.unmapped, a.QuestionID)
			continue
		}
		v, ok := toFloat(a.Value)
		if !ok {
			an.invalid = append(an.invalid, a.QuestionID)
			continue
		}
		if c := Clamp(v, sc); c != v {
			an.clamped = append(an.clamped, a.QuestionID)
			v = c
		}
		if _, rev := reversed[a.QuestionID]; rev {
			v = Reverse(v, sc)
		}
		it := item{question: a.QuestionID, dimension: dim, axis: def.QuestionAxes[a.QuestionID], value: v}
		if i, seen := pos[a.QuestionID]; seen {
			out[i] = it
			continue
		}
		pos[a.QuestionID] = len(out)
		out = append(out, it)
	}
	an.sort()
	return out, an
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		x, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = x
	case string:
		x, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = x
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// --- aggregation ---

type accumulator struct {
	dimension string
	sum       float64
	count     int
}

func (a accumulator) average() float64 {
	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

// aggregation is a per-call accumulator set that keeps the declared order.
// Dimensions found in the question map but not declared are appended in the
// order they are first seen.
type aggregation struct {
	order []string
	acc   map[string]*accumulator
}

func newAggregation(declared []string) *aggregation {
	g := &aggregation{acc: make(map[string]*accumulator, len(declared))}
	for _, d := range declared {
		g.ensure(d)
	}
	return g
}

func (g *aggregation) ensure(dim string) *accumulator {
	if a, ok := g.acc[dim]; ok {
		return a
	}
	a := &accumulator{dimension: dim}
	g.acc[dim] = a
	g.order = append(g.order, dim)
	return a
}

func (g *aggregation) add(dim string, v float64) {
	a := g.ensure(dim)
	a.sum += v
	a.count++
}

func (g *aggregation) get(dim string) accumulator {
	if a, ok := g.acc[dim]; ok {
		return *a
	}
	return accumulator{dimension: dim}
}

func (g *aggregation) totals() (sum float64, count int) {
	for _, d := range g.order {
		sum += g.acc[d].sum
		count += g.acc[d].count
	}
	return sum, count
}

func (g *aggregation) empty() []string {
	out := []string{}
	for _, d := range g.order {
		if g.acc[d].count == 0 {
			out = append(out, d)
		}
	}
	return out
}

func (g *aggregation) counts() map[string]int {
	out := make(map[string]int, len(g.order))
	for _, d := range g.order {
		out[d] = g.acc[d].count
	}
	return out
}

// aggregateDimensions sums normalized items per dimension. Items are
// pre-declared in order so the result is independent of answer order.
func aggregateDimensions(items []item, declared []string) *aggregation {
	g := newAggregation(declared)
	// Undeclared dimensions are ordered by name so answer order never leaks in.
	var extra []string
	for _, it := range items {
		if _, ok := g.acc[it.dimension]; !ok {
			extra = append(extra, it.dimension)
		}
	}
	sort.Strings(extra)
	for _, d := range extra {
		g.ensure(d)
	}
	for _, it := range items {
		g.add(it.dimension, it.value)
	}
	return g
}

// aggregateAxes is aggregateDimensions over the secondary axis.
func aggregateAxes(items []item, declared []string) *aggregation {
	axisItems := make([]item, 0, len(items))
	for _, it := range items {
		if it.axis == "" {
			continue
		}
		axisItems = append(axisItems, item{question: it.question, dimension: it.axis, value: it.value})
	}
	return aggregateDimensions(axisItems, declared)
}
