package scoring

import "strings"

// Tag names one scorer variant from a closed set.
type Tag string

const (
	TagLinear                Tag = "linear"
	TagBigFive               Tag = "big_five"
	TagLikertMean            Tag = "likert_mean"
	TagBurnout               Tag = "burnout"
	TagEmotionalIntelligence Tag = "emotional_intelligence"
	TagWeightedIndex         Tag = "weighted_index"
	TagDominantProfile       Tag = "dominant_profile"
	TagHollandCode           Tag = "holland_code"
	TagCognitive             Tag = "cognitive"
	TagEnneagram             Tag = "enneagram"
)

// Tags lists every variant in a stable order.
var Tags = []Tag{
	TagLinear,
	TagBigFive,
	TagLikertMean,
	TagBurnout,
	TagEmotionalIntelligence,
	TagWeightedIndex,
	TagDominantProfile,
	TagHollandCode,
	TagCognitive,
	TagEnneagram,
}

// Valid reports whether t belongs to the closed set.
func (t Tag) Valid() bool {
	for _, k := range Tags {
		if k == t {
			return true
		}
	}
	return false
}

// aliases maps normalised assessment identifiers and categories to tags.
var aliases = map[string]Tag{
	"linear":  TagLinear,
	"generic": TagLinear,
	"likert":  TagLinear,

	"big_five":    TagBigFive,
	"bigfive":     TagBigFive,
	"big5":        TagBigFive,
	"ocean":       TagBigFive,
	"ipip_bfm_50": TagBigFive,

	"likert_mean": TagLikertMean,
	"mean":        TagLikertMean,
	"media":       TagLikertMean,
	"stress":      TagLikertMean,
	"estresse":    TagLikertMean,

	"burnout": TagBurnout,
	"mbi":     TagBurnout,

	"emotional_intelligence": TagEmotionalIntelligence,
	"inteligencia_emocional": TagEmotionalIntelligence,
	"eq":                     TagEmotionalIntelligence,

	"weighted_index": TagWeightedIndex,
	"weighted":       TagWeightedIndex,
	"indice":         TagWeightedIndex,

	"dominant_profile": TagDominantProfile,
	"disc":             TagDominantProfile,

	"holland_code": TagHollandCode,
	"holland":      TagHollandCode,
	"riasec":       TagHollandCode,
	"vocational":   TagHollandCode,
	"vocacional":   TagHollandCode,

	"cognitive": TagCognitive,
	"cognitivo": TagCognitive,
	"qi":        TagCognitive,
	"iq":        TagCognitive,
	"raven":     TagCognitive,
	"matrices":  TagCognitive,

	"enneagram": TagEnneagram,
	"eneagrama": TagEnneagram,
}

// Resolve picks the variant for a definition. It never fails: anything not
// recognised resolves to TagLinear and reports fallback=true.
//
// Order: explicit algorithm, assessment id, category.
func Resolve(def Definition) (tag Tag, fallback bool) {
	if def.Algorithm != "" {
		if def.Algorithm.Valid() {
			return def.Algorithm, false
		}
		if t, ok := lookupAlias(string(def.Algorithm)); ok {
			return t, false
		}
		return TagLinear, true
	}
	if t, ok := lookupAlias(def.ID); ok {
		return t, false
	}
	if t, ok := lookupAlias(def.Category); ok {
		return t, false
	}
	return TagLinear, true
}

func lookupAlias(s string) (Tag, bool) {
	key := aliasKey(s)
	if key == "" {
		return "", false
	}
	if t, ok := aliases[key]; ok {
		return t, true
	}
	// "bigfive_v2", "disc.v1" → strip a trailing version segment.
	if i := strings.LastIndexByte(key, '_'); i > 0 && isVersion(key[i+1:]) {
		if t, ok := aliases[key[:i]]; ok {
			return t, true
		}
	}
	return "", false
}

func aliasKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', ' ', '.', '/':
			return '_'
		case 'á', 'à', 'â', 'ã':
			return 'a'
		case 'é', 'ê':
			return 'e'
		case 'í':
			return 'i'
		case 'ó', 'ô', 'õ':
			return 'o'
		case 'ú':
			return 'u'
		case 'ç':
			return 'c'
		}
		return r
	}, s)
}

func isVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
