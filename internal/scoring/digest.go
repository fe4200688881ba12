package scoring

import (
	"encoding/hex"
	"encoding/json"
	"sort"

	"golang.org/x/crypto/blake2b"
)

// Digest fingerprints an answer set for one assessment. It is independent of
// answer order; a re-answered question contributes its last value.
func Digest(assessmentID string, answers []Answer) string {
	last := make(map[string]string, len(answers))
	for _, a := range answers {
		txt, ok := answerText(a.Value)
		if !ok {
			txt = "\x00"
		}
		last[a.QuestionID] = txt
	}
	qs := make([]string, 0, len(last))
	for q := range last {
		qs = append(qs, q)
	}
	sort.Strings(qs)

	// canonical form: JSON array of the id followed by [question, value]
	// pairs, so separators inside ids or text stay unambiguous
	canon := make([]any, 0, len(qs)+1)
	canon = append(canon, assessmentID)
	for _, q := range qs {
		canon = append(canon, [2]string{q, last[q]})
	}
	buf, _ := json.Marshal(canon)
	sum := blake2b.Sum256(buf)
	return hex.EncodeToString(sum[:])
}
