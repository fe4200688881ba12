package results

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/mind-engage/mindengage-psychometrics/internal/scoring"
)

type Store interface {
	PutDefinition(ctx context.Context, def scoring.Definition) error
	GetDefinition(ctx context.Context, id string) (scoring.Definition, error)

	// SaveResult stores r, replacing any result with the same assessment and
	// submission id, and returns it with its sequence number.
	SaveResult(ctx context.Context, r Record) (Record, error)
	GetResult(ctx context.Context, id string) (Record, error)
	GetResultBySeq(ctx context.Context, seq int64) (Record, error)
	ListResults(ctx context.Context, opts ListOpts) ([]Record, error)
	ListAnswerSets(ctx context.Context, assessmentID string) ([][]scoring.Answer, error)
}

type memoryStore struct {
	mu      sync.RWMutex
	defs    map[string]scoring.Definition
	results map[string]Record
	bySub   map[string]string // assessment + submission -> result id
	seq     int64
}

func NewInMemoryStore() Store {
	return &memoryStore{
		defs:    map[string]scoring.Definition{},
		results: map[string]Record{},
		bySub:   map[string]string{},
	}
}

func subKey(assessmentID, submissionID string) string {
	return assessmentID + "\x00" + submissionID
}

func (m *memoryStore) PutDefinition(_ context.Context, def scoring.Definition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defs[def.ID] = def
	return nil
}

func (m *memoryStore) GetDefinition(_ context.Context, id string) (scoring.Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.defs[id]
	if !ok {
		return scoring.Definition{}, errors.Wrapf(ErrNotFound, "definition %s", id)
	}
	return d, nil
}

func (m *memoryStore) SaveResult(_ context.Context, r Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := subKey(r.AssessmentID, r.SubmissionID)
	if old, ok := m.bySub[key]; ok {
		delete(m.results, old)
	}
	m.seq++
	r.Seq = m.seq
	m.results[r.ID] = r
	m.bySub[key] = r.ID
	return r, nil
}

func (m *memoryStore) GetResult(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.results[id]
	if !ok {
		return Record{}, errors.Wrapf(ErrNotFound, "result %s", id)
	}
	return r, nil
}

func (m *memoryStore) GetResultBySeq(_ context.Context, seq int64) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.results {
		if r.Seq == seq {
			return r, nil
		}
	}
	return Record{}, errors.Wrapf(ErrNotFound, "result #%d", seq)
}

// sorted returns matching records, newest first. Caller holds the lock.
func (m *memoryStore) sorted(assessmentID, subject string) []Record {
	out := make([]Record, 0, len(m.results))
	for _, r := range m.results {
		if assessmentID != "" && r.AssessmentID != assessmentID {
			continue
		}
		if subject != "" && r.Subject != subject {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq > out[j].Seq })
	return out
}

func (m *memoryStore) ListResults(_ context.Context, opts ListOpts) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.sorted(opts.AssessmentID, opts.Subject)
	if opts.Offset > 0 {
		if opts.Offset >= len(all) {
			return []Record{}, nil
		}
		all = all[opts.Offset:]
	}
	if n := opts.limit(); len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (m *memoryStore) ListAnswerSets(_ context.Context, assessmentID string) ([][]scoring.Answer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recs := m.sorted(assessmentID, "")
	out := make([][]scoring.Answer, 0, len(recs))
	for i := len(recs) - 1; i >= 0; i-- {
		out = append(out, recs[i].Answers)
	}
	return out, nil
}
