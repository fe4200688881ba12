package scoring

import (
	"strconv"
	"unicode"
)

// normalizeText does simple casefolding and drops punctuation and extra
// spaces, so "B)" and " b " compare equal.
func normalizeText(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range []rune(s) {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsPunct(r):
			// skip
		default:
			if space && len(out) > 0 {
				out = append(out, ' ')
			}
			space = false
			out = append(out, unicode.ToLower(r))
		}
	}
	return string(out)
}

// answerText renders a raw answer for comparison against a key.
func answerText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	default:
		f, ok := toFloat(v)
		if !ok {
			return "", false
		}
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
}

// matchesKey compares an answer with its key: numerically when both sides
// are numbers, else as normalized text.
func matchesKey(v any, key string) (correct, ok bool) {
	if kf, kok := toFloat(key); kok {
		if vf, vok := toFloat(v); vok {
			return vf == kf, true
		}
	}
	txt, ok := answerText(v)
	if !ok {
		return false, false
	}
	return normalizeText(txt) == normalizeText(key), true
}

// truthy accepts pre-graded answers for items without a key.
func truthy(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch normalizeText(t) {
		case "true", "correct", "correto", "certo", "1", "yes", "sim":
			return true, true
		case "false", "incorrect", "incorreto", "errado", "0", "no", "nao", "não":
			return false, true
		}
		return false, false
	default:
		f, ok := toFloat(v)
		if !ok {
			return false, false
		}
		return f == 1, true
	}
}
