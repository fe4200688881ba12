package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/mind-engage/mindengage-psychometrics/internal/scoring"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutDefinition(ctx context.Context, def scoring.Definition) error {
	buf, err := json.Marshal(def)
	if err != nil {
		return errors.Wrap(err, "encode definition")
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO definitions (id,definition_json,updated_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (id) DO UPDATE SET definition_json=EXCLUDED.definition_json, updated_at=EXCLUDED.updated_at`,
		def.ID, string(buf), time.Now().Unix())
	return errors.Wrapf(err, "put definition %s", def.ID)
}

func (s *SQLStore) GetDefinition(ctx context.Context, id string) (scoring.Definition, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT definition_json FROM definitions WHERE id=$1`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return scoring.Definition{}, errors.Wrapf(ErrNotFound, "definition %s", id)
	}
	if err != nil {
		return scoring.Definition{}, errors.Wrapf(err, "get definition %s", id)
	}
	var def scoring.Definition
	if err := json.Unmarshal([]byte(raw), &def); err != nil {
		return scoring.Definition{}, errors.Wrapf(err, "decode definition %s", id)
	}
	return def, nil
}

func (s *SQLStore) SaveResult(ctx context.Context, r Record) (Record, error) {
	resJSON, err := json.Marshal(r.Result)
	if err != nil {
		return Record{}, errors.Wrap(err, "encode result")
	}
	ansJSON, err := json.Marshal(r.Answers)
	if err != nil {
		return Record{}, errors.Wrap(err, "encode answers")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, errors.Wrap(err, "begin")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM results WHERE assessment_id=$1 AND submission_id=$2`,
		r.AssessmentID, r.SubmissionID); err != nil {
		return Record{}, errors.Wrap(err, "replace result")
	}
	err = tx.QueryRowContext(ctx, `INSERT INTO results
		(id,submission_id,assessment_id,subject,algorithm,overall_score,result_json,answers_json,digest,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING seq`,
		r.ID, r.SubmissionID, r.AssessmentID, r.Subject, r.Algorithm, r.Result.OverallScore,
		string(resJSON), string(ansJSON), r.Digest, r.CreatedAt).Scan(&r.Seq)
	if err != nil {
		return Record{}, errors.Wrap(err, "insert result")
	}
	if err := tx.Commit(); err != nil {
		return Record{}, errors.Wrap(err, "commit")
	}
	return r, nil
}

const resultCols = `seq,id,submission_id,assessment_id,subject,algorithm,result_json,answers_json,digest,created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var r Record
	var resJSON, ansJSON string
	if err := row.Scan(&r.Seq, &r.ID, &r.SubmissionID, &r.AssessmentID, &r.Subject, &r.Algorithm,
		&resJSON, &ansJSON, &r.Digest, &r.CreatedAt); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(resJSON), &r.Result); err != nil {
		return Record{}, errors.Wrapf(err, "decode result %s", r.ID)
	}
	if err := json.Unmarshal([]byte(ansJSON), &r.Answers); err != nil {
		return Record{}, errors.Wrapf(err, "decode answers %s", r.ID)
	}
	return r, nil
}

func (s *SQLStore) getOne(ctx context.Context, where string, arg any, what string) (Record, error) {
	r, err := scanRecord(s.db.QueryRowContext(ctx, `SELECT `+resultCols+` FROM results WHERE `+where+`=$1`, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, errors.Wrapf(ErrNotFound, "result %s", what)
	}
	if err != nil {
		return Record{}, errors.Wrapf(err, "get result %s", what)
	}
	return r, nil
}

func (s *SQLStore) GetResult(ctx context.Context, id string) (Record, error) {
	return s.getOne(ctx, "id", id, id)
}

func (s *SQLStore) GetResultBySeq(ctx context.Context, seq int64) (Record, error) {
	return s.getOne(ctx, "seq", seq, "#"+strconv.FormatInt(seq, 10))
}

func (s *SQLStore) ListResults(ctx context.Context, opts ListOpts) ([]Record, error) {
	var (
		where []string
		args  []any
	)
	if opts.AssessmentID != "" {
		args = append(args, opts.AssessmentID)
		where = append(where, "assessment_id=$"+strconv.Itoa(len(args)))
	}
	if opts.Subject != "" {
		args = append(args, opts.Subject)
		where = append(where, "subject=$"+strconv.Itoa(len(args)))
	}
	q := `SELECT ` + resultCols + ` FROM results`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, opts.limit(), offset)
	q += ` ORDER BY seq DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list results")
	}
	defer rows.Close()
	out := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan result")
		}
		out = append(out, r)
	}
	return out, errors.Wrap(rows.Err(), "list results")
}

func (s *SQLStore) ListAnswerSets(ctx context.Context, assessmentID string) ([][]scoring.Answer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT answers_json FROM results WHERE assessment_id=$1 ORDER BY seq`, assessmentID)
	if err != nil {
		return nil, errors.Wrap(err, "list answer sets")
	}
	defer rows.Close()
	out := [][]scoring.Answer{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.Wrap(err, "scan answers")
		}
		var answers []scoring.Answer
		if err := json.Unmarshal([]byte(raw), &answers); err != nil {
			return nil, errors.Wrap(err, "decode answers")
		}
		out = append(out, answers)
	}
	return out, errors.Wrap(rows.Err(), "list answer sets")
}
