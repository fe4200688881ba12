package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	api "github.com/mind-engage/mindengage-psychometrics/internal/api/http"
	"github.com/mind-engage/mindengage-psychometrics/internal/config"
	"github.com/mind-engage/mindengage-psychometrics/internal/db"
	"github.com/mind-engage/mindengage-psychometrics/internal/events"
	_ "github.com/mind-engage/mindengage-psychometrics/internal/instruments/builtin"
	"github.com/mind-engage/mindengage-psychometrics/internal/receipt"
	"github.com/mind-engage/mindengage-psychometrics/internal/results"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()
	store := results.NewSQLStore(dbh, cfg.DBDriver)

	// --- Events: local log always, broker when configured ---
	pub, err := events.NewPublisher(cfg.AMQPURI, cfg.AMQPExchange)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer pub.Close()
	sink := events.Multi{events.NewEventRepo(dbh, cfg.SiteID)}
	if pub.Enabled() {
		sink = append(sink, pub)
	}

	codes, err := results.NewCodes(cfg.CodeSalt)
	if err != nil {
		log.Fatalf("codes: %v", err)
	}
	opts := []results.Option{
		results.WithEvents(sink),
		results.WithReceipts(receipt.NewIssuer(cfg.ReceiptSecret, cfg.ReceiptTTL)),
		results.WithCodes(codes),
	}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		opts = append(opts, results.WithCache(results.NewRedisCache(rdb, cfg.RedisTTL)))
	}
	svc := results.NewService(store, opts...)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))
	api.Mount(r, svc, dbh)

	log.Printf("listening on %s (mode=%s, db=%s, amqp=%t, redis=%t)",
		cfg.HTTPAddr, cfg.Mode, cfg.DBDriver, pub.Enabled(), cfg.RedisAddr != "")
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal(err)
	}
}
