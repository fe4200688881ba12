package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/tidwall/gjson"

	"github.com/mind-engage/mindengage-psychometrics/internal/results"
)

// POST /assessments/{id}/submissions
func SubmitHandler(svc *results.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
		if err != nil || !gjson.ValidBytes(body) {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		answers, ok := parseAnswers(body)
		if !ok {
			http.Error(w, "answers: every answer needs a questionId", http.StatusBadRequest)
			return
		}
		doc := gjson.ParseBytes(body)
		sub := results.Submission{
			ID:           firstOf(doc, "submissionId", "submission_id").String(),
			AssessmentID: chi.URLParam(r, "id"),
			Subject:      firstOf(doc, "subject", "participantId", "participant_id").String(),
			Answers:      answers,
		}
		rec, err := svc.Submit(r.Context(), sub)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, rec)
	}
}

// GET /results/{id}  (id or public code)
func GetResultHandler(svc *results.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.Result(r.Context(), strings.TrimSpace(chi.URLParam(r, "id")))
		if err != nil {
			respondError(w, err)
			return
		}
		if r.URL.Query().Get("answers") != "true" {
			rec.Answers = nil
		}
		respondJSON(w, http.StatusOK, rec)
	}
}

// GET /results?assessment=&subject=&limit=&offset=
func ListResultsHandler(svc *results.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		list, err := svc.Results(r.Context(), results.ListOpts{
			AssessmentID: strings.TrimSpace(q.Get("assessment")),
			Subject:      strings.TrimSpace(q.Get("subject")),
			Limit:        parseIntDefault(q.Get("limit"), 50),
			Offset:       parseIntDefault(q.Get("offset"), 0),
		})
		if err != nil {
			respondError(w, err)
			return
		}
		for i := range list {
			list[i].Answers = nil
		}
		respondJSON(w, http.StatusOK, list)
	}
}

// GET /assessments/{id}/reliability
func ReliabilityHandler(svc *results.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := svc.Reliability(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, rep)
	}
}

// POST /receipts/verify  {"receipt":"<jwt>"}
func VerifyReceiptHandler(svc *results.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		tok := gjson.GetBytes(body, "receipt").String()
		if tok == "" {
			http.Error(w, "receipt required", http.StatusBadRequest)
			return
		}
		c, err := svc.VerifyReceipt(r.Context(), tok)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"valid": true, "claims": c})
	}
}
