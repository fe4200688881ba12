package results

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mind-engage/mindengage-psychometrics/internal/events"
	"github.com/mind-engage/mindengage-psychometrics/internal/instruments"
	"github.com/mind-engage/mindengage-psychometrics/internal/metrics"
	"github.com/mind-engage/mindengage-psychometrics/internal/receipt"
	"github.com/mind-engage/mindengage-psychometrics/internal/scoring"
)

// Service is the stateful side of scoring: it resolves definitions, scores,
// persists, and announces results. The engine itself stays pure.
type Service struct {
	store    Store
	cache    DefinitionCache
	engine   *scoring.Engine
	sink     events.Sink
	receipts *receipt.Issuer
	codes    *Codes
	now      func() time.Time
}

type Option func(*Service)

func WithCache(c DefinitionCache) Option    { return func(s *Service) { s.cache = c } }
func WithEngine(e *scoring.Engine) Option   { return func(s *Service) { s.engine = e } }
func WithEvents(sink events.Sink) Option    { return func(s *Service) { s.sink = sink } }
func WithReceipts(i *receipt.Issuer) Option { return func(s *Service) { s.receipts = i } }
func WithCodes(c *Codes) Option             { return func(s *Service) { s.codes = c } }

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		cache:  NopCache{},
		engine: scoring.NewEngine(),
		sink:   events.Discard{},
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Engine() *scoring.Engine { return s.engine }

// PutDefinition validates and stores a custom definition.
func (s *Service) PutDefinition(ctx context.Context, def scoring.Definition) error {
	if err := instruments.Validate(def); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	if err := s.store.PutDefinition(ctx, def); err != nil {
		return err
	}
	s.cache.Delete(ctx, def.ID)
	return nil
}

// Definition resolves an assessment id: cache, then store, then the built-in
// catalogue. Stored definitions shadow built-ins with the same id.
func (s *Service) Definition(ctx context.Context, id string) (scoring.Definition, error) {
	if def, ok := s.cache.Get(ctx, id); ok {
		return def, nil
	}
	def, err := s.store.GetDefinition(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		inst, ok := instruments.Lookup(id)
		if !ok {
			return scoring.Definition{}, errors.Wrapf(ErrNotFound, "assessment %s", id)
		}
		def = inst.Definition
	default:
		return scoring.Definition{}, err
	}
	s.cache.Set(ctx, def)
	return def, nil
}

// Submit scores a submission against its assessment and stores the result.
// Event delivery failures are logged; the stored result stands.
func (s *Service) Submit(ctx context.Context, sub Submission) (Record, error) {
	sub.AssessmentID = strings.TrimSpace(sub.AssessmentID)
	if sub.AssessmentID == "" {
		return Record{}, errors.Wrap(ErrInvalid, "assessmentId is required")
	}
	def, err := s.Definition(ctx, sub.AssessmentID)
	if err != nil {
		metrics.SubmissionErrors.WithLabelValues("definition").Inc()
		return Record{}, err
	}

	start := time.Now()
	res := s.engine.Score(sub.Answers, def)
	metrics.ObserveResult(res, time.Since(start))

	rec := Record{
		ID:           uuid.NewString(),
		SubmissionID: sub.ID,
		AssessmentID: sub.AssessmentID,
		Subject:      sub.Subject,
		Algorithm:    res.Metadata[scoring.MetaAlgorithm].(string),
		Result:       res,
		Answers:      sub.Answers,
		Digest:       scoring.Digest(sub.AssessmentID, sub.Answers),
		CreatedAt:    s.now().Unix(),
	}
	if rec.SubmissionID == "" {
		rec.SubmissionID = rec.ID
	}
	rec, err = s.store.SaveResult(ctx, rec)
	if err != nil {
		metrics.SubmissionErrors.WithLabelValues("store").Inc()
		return Record{}, errors.Wrap(err, "save result")
	}
	s.decorate(&rec)

	classification, _ := res.Metadata[scoring.MetaClassification].(string)
	ev, err := events.New(events.TypeAssessmentScored, rec.ID, events.ScoredPayload{
		ResultID:       rec.ID,
		Code:           rec.Code,
		SubmissionID:   rec.SubmissionID,
		AssessmentID:   rec.AssessmentID,
		Subject:        rec.Subject,
		Algorithm:      rec.Algorithm,
		OverallScore:   res.OverallScore,
		Classification: classification,
		Digest:         rec.Digest,
	})
	if err == nil {
		err = s.sink.Emit(ctx, ev)
	}
	if err != nil {
		metrics.SubmissionErrors.WithLabelValues("event").Inc()
		log.Printf("result %s: emit %s: %v", rec.ID, events.TypeAssessmentScored, err)
	}

	if s.receipts != nil {
		tok, err := s.receipts.Issue(receipt.Claims{
			ResultID:     rec.ID,
			AssessmentID: rec.AssessmentID,
			Algorithm:    rec.Algorithm,
			Overall:      res.OverallScore,
			Digest:       rec.Digest,
		})
		if err != nil {
			metrics.SubmissionErrors.WithLabelValues("receipt").Inc()
			log.Printf("result %s: receipt: %v", rec.ID, err)
		}
		rec.Receipt = tok
	}
	return rec, nil
}

// Result looks a record up by id or public code.
func (s *Service) Result(ctx context.Context, idOrCode string) (Record, error) {
	rec, err := s.store.GetResult(ctx, idOrCode)
	if errors.Is(err, ErrNotFound) && s.codes != nil {
		if seq, ok := s.codes.Decode(idOrCode); ok {
			rec, err = s.store.GetResultBySeq(ctx, seq)
		}
	}
	if err != nil {
		return Record{}, err
	}
	s.decorate(&rec)
	return rec, nil
}

func (s *Service) Results(ctx context.Context, opts ListOpts) ([]Record, error) {
	list, err := s.store.ListResults(ctx, opts)
	if err != nil {
		return nil, err
	}
	for i := range list {
		s.decorate(&list[i])
	}
	return list, nil
}

// Reliability computes Cronbach's alpha per dimension over every stored
// submission of an assessment.
func (s *Service) Reliability(ctx context.Context, assessmentID string) (ReliabilityReport, error) {
	def, err := s.Definition(ctx, assessmentID)
	if err != nil {
		return ReliabilityReport{}, err
	}
	sets, err := s.store.ListAnswerSets(ctx, assessmentID)
	if err != nil {
		return ReliabilityReport{}, err
	}
	return ReliabilityReport{
		AssessmentID: assessmentID,
		Submissions:  len(sets),
		Alpha:        scoring.Reliability(sets, def),
	}, nil
}

// VerifyReceipt checks a receipt against the stored result it names.
func (s *Service) VerifyReceipt(ctx context.Context, token string) (*receipt.Claims, error) {
	if s.receipts == nil {
		return nil, errors.New("receipts are not enabled")
	}
	c, err := s.receipts.Verify(token)
	if err != nil {
		return nil, err
	}
	rec, err := s.store.GetResult(ctx, c.ResultID)
	if err != nil {
		return nil, err
	}
	if rec.Digest != c.Digest || rec.Result.OverallScore != c.Overall {
		// stored record no longer matches what was signed
		return nil, errors.Wrap(receipt.ErrInvalid, "receipt does not match the stored result")
	}
	return c, nil
}

func (s *Service) decorate(r *Record) {
	if s.codes != nil {
		r.Code = s.codes.Encode(r.Seq)
	}
}
