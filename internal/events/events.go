// Package events records and announces domain events. Every event is
// appended to the SQL event_log and, when a broker is configured, published
// on a topic exchange.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nuid"
)

const TypeAssessmentScored = "assessment.scored"

type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Key       string          `json:"key"` // natural key, e.g. result id
	Data      json.RawMessage `json:"data"`
	CreatedAt int64           `json:"created_at"`
}

// New stamps an event with a fresh id.
func New(typ, key string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:        nuid.Next(),
		Type:      typ,
		Key:       key,
		Data:      data,
		CreatedAt: time.Now().Unix(),
	}, nil
}

// Sink receives events.
type Sink interface {
	Emit(ctx context.Context, e Event) error
}

// Multi delivers to every sink and reports all failures.
type Multi []Sink

func (m Multi) Emit(ctx context.Context, e Event) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Emit(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every event.
type Discard struct{}

func (Discard) Emit(context.Context, Event) error { return nil }

// ScoredPayload is the body of an assessment.scored event.
type ScoredPayload struct {
	ResultID       string  `json:"result_id"`
	Code           string  `json:"code,omitempty"`
	SubmissionID   string  `json:"submission_id"`
	AssessmentID   string  `json:"assessment_id"`
	Subject        string  `json:"subject,omitempty"`
	Algorithm      string  `json:"algorithm"`
	OverallScore   float64 `json:"overall_score"`
	Classification string  `json:"classification,omitempty"`
	Digest         string  `json:"digest"`
}
