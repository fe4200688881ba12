package http

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mind-engage/mindengage-psychometrics/internal/metrics"
	"github.com/mind-engage/mindengage-psychometrics/internal/results"
	"github.com/mind-engage/mindengage-psychometrics/internal/scoring"
)

const maxBody = 4 << 20

// POST /score
//
// Stateless scoring. The body carries either an inline "definition" or an
// "assessmentId" resolved through the catalogue, plus "answers". Nothing is
// stored.
func ScoreHandler(svc *results.Service) http.HandlerFunc {
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

		var def scoring.Definition
		if raw := gjson.GetBytes(body, "definition"); raw.IsObject() {
			if err := json.Unmarshal([]byte(raw.Raw), &def); err != nil {
				http.Error(w, "definition: "+err.Error(), http.StatusBadRequest)
				return
			}
		} else if id := gjson.GetBytes(body, "assessmentId").String(); id != "" {
			def, err = svc.Definition(r.Context(), id)
			if err != nil {
				respondError(w, err)
				return
			}
		} else {
			http.Error(w, "definition or assessmentId required", http.StatusBadRequest)
			return
		}

		start := time.Now()
		res := svc.Engine().Score(answers, def)
		metrics.ObserveResult(res, time.Since(start))
		respondJSON(w, http.StatusOK, res)
	}
}

type algorithmInfo struct {
	Tag   scoring.Tag   `json:"tag"`
	Bands scoring.Bands `json:"bands"`
}

// GET /algorithms
func AlgorithmsHandler(svc *results.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]algorithmInfo, 0, len(scoring.Tags))
		for _, t := range scoring.Tags {
			out = append(out, algorithmInfo{Tag: t, Bands: svc.Engine().Bands(t)})
		}
		respondJSON(w, http.StatusOK, out)
	}
}
