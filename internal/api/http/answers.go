package http

import (
	"sort"

	"github.com/tidwall/gjson"

	"github.com/mind-engage/mindengage-psychometrics/internal/scoring"
)

// parseAnswers reads the "answers" member of a request body. It accepts the
// canonical list form
//
//	[{"questionId":"q1","rawValue":4}]
//
// with snake_case and short key spellings, and the compact object form
//
//	{"q1":4,"q2":"B"}
//
// Object answers come back sorted by question id.
func parseAnswers(body []byte) ([]scoring.Answer, bool) {
	node := gjson.GetBytes(body, "answers")
	switch {
	case !node.Exists() || node.Type == gjson.Null:
		return nil, true
	case node.IsArray():
		var out []scoring.Answer
		ok := true
		node.ForEach(func(_, a gjson.Result) bool {
			id := firstOf(a, "questionId", "question_id", "id").String()
			if id == "" {
				ok = false
				return false
			}
			ans := scoring.Answer{QuestionID: id, Value: value(firstOf(a, "rawValue", "raw_value", "value", "answer"))}
			if md := a.Get("metadata"); md.IsObject() {
				ans.Metadata, _ = md.Value().(map[string]any)
			}
			out = append(out, ans)
			return true
		})
		return out, ok
	case node.IsObject():
		var out []scoring.Answer
		node.ForEach(func(k, v gjson.Result) bool {
			out = append(out, scoring.Answer{QuestionID: k.String(), Value: value(v)})
			return true
		})
		sortAnswers(out)
		return out, true
	}
	return nil, false
}

func firstOf(r gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

func value(r gjson.Result) any {
	switch r.Type {
	case gjson.Number:
		return r.Num
	case gjson.String:
		return r.Str
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.JSON:
		return r.Raw // nested values are kept verbatim and end up invalid
	}
	return nil
}

func sortAnswers(a []scoring.Answer) {
	sort.Slice(a, func(i, j int) bool { return a[i].QuestionID < a[j].QuestionID })
}
