package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-psychometrics/internal/instruments"
	"github.com/mind-engage/mindengage-psychometrics/internal/results"
	"github.com/mind-engage/mindengage-psychometrics/internal/scoring"
)

// GET /instruments
func ListInstrumentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, instruments.List())
	}
}

// GET /instruments/{id}
//
// ?items=false drops item text; the answer key of cognitive instruments is
// never served.
func GetInstrumentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		inst, ok := instruments.Lookup(id)
		if !ok {
			http.Error(w, "instrument not found", http.StatusNotFound)
			return
		}
		inst.Definition.AnswerKey = nil
		if r.URL.Query().Get("items") == "false" {
			inst.Items = nil
		}
		w.Header().Set("Content-Type", "application/json")
		_ = instruments.Export(w, inst)
	}
}

// POST /definitions
//
// Accepts a bare definition or an exported instrument document.
func PutDefinitionHandler(svc *results.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		var doc struct {
			Definition *scoring.Definition `json:"definition"`
		}
		if err := json.Unmarshal(body, &doc); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		var def scoring.Definition
		if doc.Definition != nil {
			def = *doc.Definition
		} else if err := json.Unmarshal(body, &def); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := svc.PutDefinition(r.Context(), def); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]string{"id": def.ID})
	}
}

// GET /definitions/{id}
//
// Resolves through the built-in catalogue too, so answer keys are stripped
// here as well.
func GetDefinitionHandler(svc *results.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def, err := svc.Definition(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, err)
			return
		}
		def.AnswerKey = nil
		respondJSON(w, http.StatusOK, def)
	}
}
