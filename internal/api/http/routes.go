package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-psychometrics/internal/metrics"
	"github.com/mind-engage/mindengage-psychometrics/internal/results"
)

// Pinger reports backend readiness; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Mount registers every scoring route on r.
func Mount(r chi.Router, svc *results.Service, ready Pinger) {
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("ok")) })
	r.Get("/readyz", ReadyHandler(ready))
	r.Handle("/metrics", metrics.Handler())

	r.Post("/score", ScoreHandler(svc))
	r.Get("/algorithms", AlgorithmsHandler(svc))

	r.Get("/instruments", ListInstrumentsHandler())
	r.Get("/instruments/{id}", GetInstrumentHandler())
	r.Post("/definitions", PutDefinitionHandler(svc))
	r.Get("/definitions/{id}", GetDefinitionHandler(svc))

	r.Route("/assessments/{id}", func(ar chi.Router) {
		ar.Post("/submissions", SubmitHandler(svc))
		ar.Get("/reliability", ReliabilityHandler(svc))
	})
	r.Get("/results", ListResultsHandler(svc))
	r.Get("/results/{id}", GetResultHandler(svc))
	r.Post("/receipts/verify", VerifyReceiptHandler(svc))
}

// GET /readyz
func ReadyHandler(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := p.PingContext(ctx); err != nil {
				http.Error(w, "db: "+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.Write([]byte("ready"))
	}
}
