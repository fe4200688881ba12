package scoring

import "testing"

func TestBandsResolve(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{-5, "Muito Baixo"},
		{0, "Muito Baixo"},
		{39.99, "Baixo"},
		{40, "Médio"},
		{80, "Muito Alto"},
		{100, "Muito Alto"},
	}
	for _, c := range cases {
		if got := GenericBands.Resolve(c.v); got != c.want {
			t.Fatalf("Resolve(%v) = %q, want %q", c.v, got, c.want)
		}
	}
	if got := (Bands{}).Resolve(50); got != "" {
		t.Fatalf("empty table resolved to %q", got)
	}
}

func TestBandsValidate(t *testing.T) {
	for name, b := range map[string]Bands{
		"generic":   GenericBands,
		"bigfive":   BigFiveBands,
		"likert":    LikertMeanBands,
		"burnout":   BurnoutBands,
		"emotional": EmotionalIntelligenceBands,
		"dominance": DominanceBands,
		"standard":  StandardScoreBands,
		"consist":   ConsistencyBands,
	} {
		if err := b.Validate(); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
	bad := []Bands{
		nil,
		{{0, "a"}, {10, ""}},
		{{10, "a"}, {0, "b"}},
	}
	for i, b := range bad {
		if b.Validate() == nil {
			t.Fatalf("case %d: expected an error", i)
		}
	}
}

func TestRounding(t *testing.T) {
	if RoundHalfUp(2.5) != 3 || RoundHalfUp(2.49) != 2 || RoundHalfUp(-0.5) != 0 {
		t.Fatal("RoundHalfUp must round halves up")
	}
	if Round2(2.125) != 2.13 || Round2(3.75) != 3.75 {
		t.Fatalf("Round2 = %v, %v", Round2(2.125), Round2(3.75))
	}
	if Percentage(4, Scale{1, 5}) != 80 || Percentage(3, Scale{0, 0}) != 0 {
		t.Fatal("Percentage")
	}
	if Percentage(3.5, Scale{1, 7}) != 50 {
		t.Fatalf("Percentage on 1-7 = %v", Percentage(3.5, Scale{1, 7}))
	}
}

func TestClampAndReverse(t *testing.T) {
	s := Scale{1, 7}
	if Clamp(0, s) != 1 || Clamp(9, s) != 7 || Clamp(4, s) != 4 {
		t.Fatal("Clamp")
	}
	if Reverse(1, s) != 7 || Reverse(4, s) != 4 {
		t.Fatal("Reverse")
	}
	if Reverse(2, Scale{0, 4}) != 2 || Reverse(0, Scale{0, 4}) != 4 {
		t.Fatal("Reverse on a zero-based scale")
	}
}

func TestInvalidScaleUsesDefault(t *testing.T) {
	def := Definition{
		Algorithm:          TagLinear,
		Scale:              Scale{Min: 5, Max: 1},
		Dimensions:         []string{"x"},
		QuestionDimensions: map[string]string{"q1": "x"},
	}
	if got := Score([]Answer{{QuestionID: "q1", Value: 4}}, def).DimensionScores["x"]; got != 80 {
		t.Fatalf("x = %v, want 80 on the 1-5 default", got)
	}
}
