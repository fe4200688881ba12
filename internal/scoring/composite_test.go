package scoring

import (
	"strconv"
	"testing"
)

var enneaCats = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
var enneaAxes = []string{"sp", "so", "sx"}

// scenarioB: 100 answers over 9 categories and 3 axes. Every category 3
// question is answered 5 and routed to sx; everything else is answered 1.
func scenarioB() ([]Answer, Definition) {
	def := Definition{
		ID:                 "eneagrama",
		Dimensions:         enneaCats,
		Axes:               enneaAxes,
		QuestionDimensions: map[string]string{},
		QuestionAxes:       map[string]string{},
	}
	var answers []Answer
	for i := 0; i < 100; i++ {
		q := "e" + strconv.Itoa(i)
		cat := enneaCats[i%9]
		def.QuestionDimensions[q] = cat
		v := 1
		if cat == "3" {
			def.QuestionAxes[q] = "sx"
			v = 5
		} else {
			def.QuestionAxes[q] = enneaAxes[i%3]
		}
		answers = append(answers, Answer{QuestionID: q, Value: v})
	}
	return answers, def
}

func TestScenarioBComposite(t *testing.T) {
	answers, def := scenarioB()
	res := Score(answers, def)

	if res.Metadata[MetaAlgorithm] != string(TagEnneagram) {
		t.Fatalf("algorithm = %v", res.Metadata[MetaAlgorithm])
	}
	if res.Metadata[MetaCompositeCode] != "3sx" {
		t.Fatalf("composite code = %v, want 3sx", res.Metadata[MetaCompositeCode])
	}
	if res.Metadata[MetaConsistency] != ConsistencyHigh {
		t.Fatalf("consistency = %v, want high", res.Metadata[MetaConsistency])
	}
	if _, ok := res.Metadata[MetaConsistencyNote]; ok {
		t.Fatal("high consistency must not carry the unreliable note")
	}
	if res.DimensionScores["3"] != 100 || res.DimensionScores["1"] != 20 {
		t.Fatalf("category scores = %v", res.DimensionScores)
	}
	// sx: 11 answers of 5 plus 22 answers of 1 → 77/165 → 47 %
	if res.DimensionScores["sx"] != 47 {
		t.Fatalf("sx = %v, want 47", res.DimensionScores["sx"])
	}
	if res.OverallScore != 74 {
		t.Fatalf("composite score = %v, want 74", res.OverallScore)
	}
	if res.Metadata[MetaConsistencyGap] != 80.0 {
		t.Fatalf("gap = %v, want 80", res.Metadata[MetaConsistencyGap])
	}
	// neighbours 2 and 4 tie at 20 %; the earlier declared one wins
	if res.Metadata[MetaWing] != "2" || res.Metadata[MetaWingCode] != "3w2" {
		t.Fatalf("wing = %v / %v", res.Metadata[MetaWing], res.Metadata[MetaWingCode])
	}
}

func TestCompositeTiesResolveByDeclaredOrder(t *testing.T) {
	def := Definition{
		Algorithm:          TagEnneagram,
		Dimensions:         []string{"1", "2", "3"},
		Axes:               []string{"sp", "sx"},
		QuestionDimensions: map[string]string{"a": "3", "b": "2", "c": "1"},
		QuestionAxes:       map[string]string{"a": "sx", "b": "sp", "c": "sp"},
	}
	answers := []Answer{
		{QuestionID: "a", Value: 4},
		{QuestionID: "b", Value: 4},
		{QuestionID: "c", Value: 2},
	}
	for i := 0; i < 5; i++ {
		res := Score(answers, def)
		if res.Metadata[MetaDominantCategory] != "2" {
			t.Fatalf("run %d: dominant = %v, want 2", i, res.Metadata[MetaDominantCategory])
		}
		// sp = (4+2)/2 = 3 → 60, sx = 4 → 80
		if res.Metadata[MetaCompositeCode] != "2sx" {
			t.Fatalf("run %d: code = %v", i, res.Metadata[MetaCompositeCode])
		}
		ranking := res.Metadata[MetaCategoryRanking].([]RankEntry)
		if ranking[0].ID != "2" || ranking[1].ID != "3" || ranking[2].ID != "1" {
			t.Fatalf("ranking = %v", ranking)
		}
	}
}

func TestCompositePartialAssessment(t *testing.T) {
	answers, def := scenarioB()
	// drop every answer for category 9
	var partial []Answer
	for _, a := range answers {
		if def.QuestionDimensions[a.QuestionID] != "9" {
			partial = append(partial, a)
		}
	}
	res := Score(partial, def)

	ranking := res.Metadata[MetaCategoryRanking].([]RankEntry)
	if len(ranking) != 9 {
		t.Fatalf("ranking has %d entries, want all 9", len(ranking))
	}
	last := ranking[len(ranking)-1]
	if last.ID != "9" || last.Percentage != 0 || last.Count != 0 {
		t.Fatalf("unanswered category = %+v", last)
	}
	empty := res.Metadata[MetaEmpty].([]string)
	if len(empty) != 1 || empty[0] != "9" {
		t.Fatalf("empty = %v", empty)
	}
	if res.Metadata[MetaCompositeCode] != "3sx" {
		t.Fatalf("code = %v", res.Metadata[MetaCompositeCode])
	}
}

func TestConsistencyLevels(t *testing.T) {
	cases := []struct {
		top, third int
		want       string
	}{
		{5, 5, ConsistencyLow},
		{5, 4, ConsistencyGood}, // 100 vs 80
		{4, 3, ConsistencyGood}, // 80 vs 60
		{5, 1, ConsistencyHigh}, // 100 vs 20
		{2, 2, ConsistencyLow},
	}
	for _, c := range cases {
		def := Definition{
			Algorithm:          TagEnneagram,
			Dimensions:         []string{"1", "2", "3"},
			QuestionDimensions: map[string]string{"a": "1", "b": "2", "c": "3"},
		}
		answers := []Answer{
			{QuestionID: "a", Value: c.top},
			{QuestionID: "b", Value: c.top},
			{QuestionID: "c", Value: c.third},
		}
		res := Score(answers, def)
		if got := res.Metadata[MetaConsistency]; got != c.want {
			t.Fatalf("top=%d third=%d: consistency = %v, want %s", c.top, c.third, got, c.want)
		}
		if c.want == ConsistencyLow && res.Metadata[MetaConsistencyNote] != LowConsistencyNote {
			t.Fatalf("low consistency must carry the note")
		}
	}
}

func TestConsistencyBandBoundaries(t *testing.T) {
	for gap, want := range map[float64]string{
		30: ConsistencyHigh, 29: ConsistencyGood, 20: ConsistencyGood,
		19: ConsistencyModerate, 10: ConsistencyModerate, 9: ConsistencyLow, 0: ConsistencyLow,
	} {
		if got := ConsistencyBands.Resolve(gap); got != want {
			t.Fatalf("gap %v → %s, want %s", gap, got, want)
		}
	}
}

func TestWingWrapsAround(t *testing.T) {
	ranking := []RankEntry{{ID: "9"}, {ID: "1"}, {ID: "8"}}
	order := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	wing, ok := wingOf(order, ranking)
	if !ok || wing != "1" {
		t.Fatalf("wing = %q (%v), want 1", wing, ok)
	}
	if _, ok := wingOf([]string{"1", "2"}, ranking); ok {
		t.Fatal("wing needs at least three categories")
	}
}

func TestCompositeTiesUseReportedPercentage(t *testing.T) {
	def := Definition{
		Algorithm:          TagEnneagram,
		Dimensions:         []string{"1", "2", "3"},
		Axes:               []string{"sp", "sx"},
		QuestionDimensions: map[string]string{},
		QuestionAxes:       map[string]string{},
	}
	var answers []Answer
	add := func(q, cat, axis string, v int) {
		def.QuestionDimensions[q] = cat
		def.QuestionAxes[q] = axis
		answers = append(answers, Answer{QuestionID: q, Value: v})
	}
	// category 1: 10/15 → 66.67 → 67
	add("a1", "1", "sp", 3)
	add("a2", "1", "sp", 3)
	add("a3", "1", "sp", 4)
	// category 2: 67/100 → 67, with a higher unrounded average
	for i := 0; i < 20; i++ {
		v := 3
		if i < 7 {
			v = 4
		}
		add("b"+strconv.Itoa(i), "2", "sp", v)
	}
	add("c1", "3", "sx", 1)

	res := Score(answers, def)
	ranking := res.Metadata[MetaCategoryRanking].([]RankEntry)
	if ranking[0].ID != "1" || ranking[1].ID != "2" || ranking[0].Percentage != 67 || ranking[1].Percentage != 67 {
		t.Fatalf("ranking = %+v", ranking)
	}
	if res.Metadata[MetaDominantCategory] != "1" || res.Metadata[MetaCompositeCode] != "1sp" {
		t.Fatalf("dominant = %v, code = %v", res.Metadata[MetaDominantCategory], res.Metadata[MetaCompositeCode])
	}
}

func TestCompositeAxisDoesNotOverwriteCategory(t *testing.T) {
	def := Definition{
		Algorithm:          TagEnneagram,
		Dimensions:         []string{"a", "b", "c"},
		Axes:               []string{"a"},
		QuestionDimensions: map[string]string{"q1": "a", "q2": "b"},
		QuestionAxes:       map[string]string{"q2": "a"},
	}
	res := Score([]Answer{{QuestionID: "q1", Value: 5}, {QuestionID: "q2", Value: 1}}, def)
	if res.DimensionScores["a"] != 100 {
		t.Fatalf("category a = %v, want 100", res.DimensionScores["a"])
	}
	axes := res.Metadata[MetaAxisRanking].([]RankEntry)
	if len(axes) != 1 || axes[0].Percentage != 20 {
		t.Fatalf("axis ranking = %+v", axes)
	}
}
