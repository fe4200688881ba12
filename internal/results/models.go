package results

import (
	"github.com/pkg/errors"

	"github.com/mind-engage/mindengage-psychometrics/internal/scoring"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid submission")
)

// Submission is one answer set to score. ID is the caller's idempotency key:
// submitting the same ID again for the same assessment replaces the earlier
// result.
type Submission struct {
	ID           string           `json:"submissionId,omitempty"`
	AssessmentID string           `json:"assessmentId"`
	Subject      string           `json:"subject,omitempty"` // opaque respondent reference
	Answers      []scoring.Answer `json:"answers"`
}

// Record is a stored, scored submission.
type Record struct {
	ID           string           `json:"id"`
	Code         string           `json:"code,omitempty"`
	SubmissionID string           `json:"submissionId"`
	AssessmentID string           `json:"assessmentId"`
	Subject      string           `json:"subject,omitempty"`
	Algorithm    string           `json:"algorithm"`
	Result       scoring.Result   `json:"result"`
	Answers      []scoring.Answer `json:"answers,omitempty"`
	Digest       string           `json:"digest"`
	CreatedAt    int64            `json:"createdAt"`
	Receipt      string           `json:"receipt,omitempty"` // issued on submit, never stored

	Seq int64 `json:"-"`
}

type ListOpts struct {
	AssessmentID string
	Subject      string
	Limit        int
	Offset       int
}

func (o ListOpts) limit() int {
	if o.Limit <= 0 || o.Limit > 500 {
		return 50
	}
	return o.Limit
}

// ReliabilityReport is Cronbach's alpha per dimension over the stored
// submissions of one assessment.
type ReliabilityReport struct {
	AssessmentID string             `json:"assessmentId"`
	Submissions  int                `json:"submissions"`
	Alpha        map[string]float64 `json:"alpha"`
}
