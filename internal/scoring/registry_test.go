package scoring

import "testing"

func TestResolve(t *testing.T) {
	cases := []struct {
		name     string
		def      Definition
		want     Tag
		fallback bool
	}{
		{"explicit", Definition{Algorithm: TagHollandCode, ID: "disc"}, TagHollandCode, false},
		{"explicit alias", Definition{Algorithm: "Big Five"}, TagBigFive, false},
		{"versioned id", Definition{ID: "DISC-v2"}, TagDominantProfile, false},
		{"dotted version", Definition{ID: "bigfive.v10"}, TagBigFive, false},
		{"accented id", Definition{ID: "Inteligência Emocional"}, TagEmotionalIntelligence, false},
		{"portuguese id", Definition{ID: "eneagrama"}, TagEnneagram, false},
		{"category", Definition{ID: "custom-42", Category: "Vocacional"}, TagHollandCode, false},
		{"unknown algorithm", Definition{Algorithm: "mystery", ID: "disc"}, TagLinear, true},
		{"nothing", Definition{ID: "custom-42"}, TagLinear, true},
		{"empty", Definition{}, TagLinear, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tag, fb := Resolve(c.def)
			if tag != c.want || fb != c.fallback {
				t.Fatalf("Resolve = %s (%v), want %s (%v)", tag, fb, c.want, c.fallback)
			}
		})
	}
}

func TestEveryTagHasAScorerAndBands(t *testing.T) {
	e := NewEngine()
	for _, tag := range Tags {
		if !tag.Valid() {
			t.Fatalf("%s not valid", tag)
		}
		if _, ok := e.scorers[tag]; !ok {
			t.Fatalf("%s has no scorer", tag)
		}
		if err := e.bands[tag].Validate(); err != nil {
			t.Fatalf("%s: %v", tag, err)
		}
	}
	if Tag("nope").Valid() {
		t.Fatal("unknown tag reported valid")
	}
}
