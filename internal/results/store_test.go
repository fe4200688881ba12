package results

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/mind-engage/mindengage-psychometrics/internal/db"
	"github.com/mind-engage/mindengage-psychometrics/internal/scoring"
)

func newSQLiteStore(t *testing.T) Store {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "results.db") + "?_pragma=busy_timeout(5000)"
	h, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { h.Close() })
	return NewSQLStore(h, string(db.DriverSQLite))
}

// eachStore runs fn against every Store implementation.
func eachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	for name, mk := range map[string]func(*testing.T) Store{
		"memory": func(*testing.T) Store { return NewInMemoryStore() },
		"sqlite": newSQLiteStore,
	} {
		t.Run(name, func(t *testing.T) { fn(t, mk(t)) })
	}
}

func record(id, assessment, submission, subject string, overall float64) Record {
	return Record{
		ID:           id,
		SubmissionID: submission,
		AssessmentID: assessment,
		Subject:      subject,
		Algorithm:    "linear",
		Result:       scoring.Result{OverallScore: overall, DimensionScores: map[string]float64{"x": overall}, Metadata: map[string]any{}},
		Answers:      []scoring.Answer{{QuestionID: "q1", Value: 3.0}},
		Digest:       "d-" + id,
		CreatedAt:    1,
	}
}

func TestStoreDefinitions(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		if _, err := s.GetDefinition(ctx, "x"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
		def := scoring.Definition{ID: "x", Dimensions: []string{"a"}, QuestionDimensions: map[string]string{"q1": "a"}}
		if err := s.PutDefinition(ctx, def); err != nil {
			t.Fatal(err)
		}
		def.Reversed = []string{"q1"}
		if err := s.PutDefinition(ctx, def); err != nil {
			t.Fatal(err)
		}
		got, err := s.GetDefinition(ctx, "x")
		if err != nil {
			t.Fatal(err)
		}
		if len(got.Reversed) != 1 || got.QuestionDimensions["q1"] != "a" {
			t.Fatalf("definition = %+v", got)
		}
	})
}

func TestStoreResubmissionReplaces(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		first, err := s.SaveResult(ctx, record("r1", "a", "sub-1", "p1", 40))
		if err != nil {
			t.Fatal(err)
		}
		second, err := s.SaveResult(ctx, record("r2", "a", "sub-1", "p1", 80))
		if err != nil {
			t.Fatal(err)
		}
		if second.Seq <= first.Seq {
			t.Fatalf("seq %d after %d", second.Seq, first.Seq)
		}
		if _, err := s.GetResult(ctx, "r1"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("replaced result still readable: %v", err)
		}
		got, err := s.GetResult(ctx, "r2")
		if err != nil {
			t.Fatal(err)
		}
		if got.Result.OverallScore != 80 || got.Digest != "d-r2" || len(got.Answers) != 1 {
			t.Fatalf("record = %+v", got)
		}
		bySeq, err := s.GetResultBySeq(ctx, second.Seq)
		if err != nil || bySeq.ID != "r2" {
			t.Fatalf("by seq = %+v (%v)", bySeq, err)
		}

		// same submission id on another assessment is a different result
		if _, err := s.SaveResult(ctx, record("r3", "b", "sub-1", "p1", 10)); err != nil {
			t.Fatal(err)
		}
		if _, err := s.GetResult(ctx, "r2"); err != nil {
			t.Fatalf("r2 lost: %v", err)
		}
	})
}

func TestStoreListResults(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for _, r := range []Record{
			record("r1", "a", "s1", "p1", 10),
			record("r2", "a", "s2", "p2", 20),
			record("r3", "b", "s3", "p1", 30),
			record("r4", "a", "s4", "p1", 40),
		} {
			if _, err := s.SaveResult(ctx, r); err != nil {
				t.Fatal(err)
			}
		}
		ids := func(opts ListOpts) []string {
			t.Helper()
			list, err := s.ListResults(ctx, opts)
			if err != nil {
				t.Fatal(err)
			}
			out := []string{}
			for _, r := range list {
				out = append(out, r.ID)
			}
			return out
		}
		check := func(got []string, want ...string) {
			t.Helper()
			if len(got) != len(want) {
				t.Fatalf("ids = %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("ids = %v, want %v", got, want)
				}
			}
		}
		check(ids(ListOpts{}), "r4", "r3", "r2", "r1")
		check(ids(ListOpts{AssessmentID: "a"}), "r4", "r2", "r1")
		check(ids(ListOpts{AssessmentID: "a", Subject: "p1"}), "r4", "r1")
		check(ids(ListOpts{Limit: 2, Offset: 1}), "r3", "r2")
		check(ids(ListOpts{Offset: 10}))

		sets, err := s.ListAnswerSets(ctx, "a")
		if err != nil {
			t.Fatal(err)
		}
		if len(sets) != 3 {
			t.Fatalf("answer sets = %d, want 3", len(sets))
		}
	})
}
