package instruments_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/mind-engage/mindengage-psychometrics/internal/instruments"
	"github.com/mind-engage/mindengage-psychometrics/internal/instruments/bigfive"
	_ "github.com/mind-engage/mindengage-psychometrics/internal/instruments/builtin"
	"github.com/mind-engage/mindengage-psychometrics/internal/instruments/cognitive"
	"github.com/mind-engage/mindengage-psychometrics/internal/instruments/enneagram"
	"github.com/mind-engage/mindengage-psychometrics/internal/scoring"
)

func TestBuiltinsRegistered(t *testing.T) {
	want := map[string]struct {
		tag   scoring.Tag
		items int
	}{
		bigfive.ID:   {scoring.TagBigFive, 50},
		cognitive.ID: {scoring.TagCognitive, 20},
		enneagram.ID: {scoring.TagEnneagram, 45},
	}
	list := instruments.List()
	if len(list) != len(want) {
		t.Fatalf("catalogue has %d entries: %+v", len(list), list)
	}
	for i, s := range list {
		if i > 0 && list[i-1].ID >= s.ID {
			t.Fatalf("list not ordered by id: %v", list)
		}
		w, ok := want[s.ID]
		if !ok {
			t.Fatalf("unexpected instrument %s", s.ID)
		}
		if s.Algorithm != w.tag || s.Items != w.items {
			t.Fatalf("%s: %s with %d items, want %s with %d", s.ID, s.Algorithm, s.Items, w.tag, w.items)
		}
	}
	if _, ok := instruments.Lookup("nope"); ok {
		t.Fatal("lookup of an unknown id succeeded")
	}
}

func TestBigFiveKeying(t *testing.T) {
	inst, ok := instruments.Lookup(bigfive.ID)
	if !ok {
		t.Fatal("big five not registered")
	}
	def := inst.Definition
	perDim := map[string]int{}
	for _, d := range def.QuestionDimensions {
		perDim[d]++
	}
	for _, d := range def.Dimensions {
		if perDim[d] != 10 {
			t.Fatalf("%s has %d items, want 10", d, perDim[d])
		}
	}
	if len(def.Reversed) != 18 {
		t.Fatalf("reversed items = %d, want 18", len(def.Reversed))
	}

	// agreeing with everything only scores high where no item is reversed
	var answers []scoring.Answer
	for i := 1; i <= 50; i++ {
		answers = append(answers, scoring.Answer{QuestionID: bigfive.ItemID(i), Value: 5})
	}
	res := scoring.Score(answers, def)
	want := map[string]float64{
		bigfive.Openness:          76, // 7 keyed, 3 reversed
		bigfive.Conscientiousness: 68,
		bigfive.Extraversion:      60,
		bigfive.Agreeableness:     68,
		bigfive.Neuroticism:       84,
	}
	if !reflect.DeepEqual(res.DimensionScores, want) {
		t.Fatalf("scores = %v, want %v", res.DimensionScores, want)
	}
}

func TestEnneagramAxesAreBalanced(t *testing.T) {
	inst, _ := instruments.Lookup(enneagram.ID)
	counts := map[string]int{}
	for _, a := range inst.Definition.QuestionAxes {
		counts[a]++
	}
	for _, a := range enneagram.Instincts {
		if counts[a] != 15 {
			t.Fatalf("axis %s has %d items, want 15", a, counts[a])
		}
	}

	var answers []scoring.Answer
	for q, typ := range inst.Definition.QuestionDimensions {
		v := 1
		if typ == "8" {
			v = 5
		}
		answers = append(answers, scoring.Answer{QuestionID: q, Value: v})
	}
	res := scoring.Score(answers, inst.Definition)
	if res.Metadata[scoring.MetaDominantCategory] != "8" {
		t.Fatalf("dominant = %v", res.Metadata[scoring.MetaDominantCategory])
	}
	if res.Metadata[scoring.MetaConsistency] != scoring.ConsistencyHigh {
		t.Fatalf("consistency = %v", res.Metadata[scoring.MetaConsistency])
	}
}

func TestCognitiveFullMarks(t *testing.T) {
	inst, _ := instruments.Lookup(cognitive.ID)
	var answers []scoring.Answer
	for i, k := range cognitive.Key {
		answers = append(answers, scoring.Answer{QuestionID: cognitive.ItemID(i + 1), Value: strings.ToLower(k)})
	}
	res := scoring.Score(answers, inst.Definition)
	if res.OverallScore != 145 || res.Metadata[scoring.MetaClassification] != "Muito Superior" {
		t.Fatalf("overall = %v (%v)", res.OverallScore, res.Metadata[scoring.MetaClassification])
	}
}

func TestValidate(t *testing.T) {
	base := func() scoring.Definition {
		return scoring.Definition{
			ID:                 "x",
			Dimensions:         []string{"a", "b"},
			QuestionDimensions: map[string]string{"q1": "a", "q2": "b"},
		}
	}
	if err := instruments.Validate(base()); err != nil {
		t.Fatalf("valid definition rejected: %v", err)
	}
	cases := map[string]func(*scoring.Definition){
		"no id":               func(d *scoring.Definition) { d.ID = "" },
		"bad scale":           func(d *scoring.Definition) { d.Scale = scoring.Scale{Min: 5, Max: 1} },
		"duplicate dimension": func(d *scoring.Definition) { d.Dimensions = []string{"a", "a"} },
		"undeclared mapping":  func(d *scoring.Definition) { d.QuestionDimensions["q3"] = "c" },
		"unmapped reversed":   func(d *scoring.Definition) { d.Reversed = []string{"q9"} },
		"negative weight":     func(d *scoring.Definition) { d.Weights = map[string]float64{"a": -1} },
		"unknown protective":  func(d *scoring.Definition) { d.Protective = []string{"z"} },
		"unsorted bands":      func(d *scoring.Definition) { d.Bands = scoring.Bands{{Lower: 5, Label: "x"}, {Lower: 1, Label: "y"}} },
		"axis without dim":    func(d *scoring.Definition) { d.QuestionAxes = map[string]string{"q7": "sp"} },
		"no items":            func(d *scoring.Definition) { d.QuestionDimensions = nil },
		"axis named like dim": func(d *scoring.Definition) { d.Axes = []string{"b"} },
	}
	for name, mutate := range cases {
		def := base()
		mutate(&def)
		if err := instruments.Validate(def); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
	keyed := scoring.Definition{ID: "k", Algorithm: scoring.TagCognitive, AnswerKey: map[string]string{"q1": "A"}}
	if err := instruments.Validate(keyed); err != nil {
		t.Fatalf("keyed cognitive definition rejected: %v", err)
	}
}

func TestImportExport(t *testing.T) {
	orig := bigfive.New()
	var buf bytes.Buffer
	if err := instruments.Export(&buf, orig); err != nil {
		t.Fatal(err)
	}
	got, err := instruments.Import(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, orig) {
		t.Fatal("import of an exported instrument differs")
	}

	if _, err := instruments.Import(strings.NewReader(`{"definition":{"id":"x","dimensons":["a"]}}`)); err == nil {
		t.Fatal("unknown field accepted")
	}
	if _, err := instruments.Import(strings.NewReader(`{"definition":{"id":"x","dimensions":["a","a"],"question_dimensions":{"q":"a"}}}`)); err == nil {
		t.Fatal("invalid definition accepted")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("duplicate registration did not panic")
		}
	}()
	instruments.Register(bigfive.New())
}
