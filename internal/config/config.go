package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string // sqlite|postgres
	DBDSN    string

	// Event fan-out. An empty AMQPURI keeps events in the local log only.
	AMQPURI      string
	AMQPExchange string
	SiteID       string

	// Definition cache. Empty address disables it.
	RedisAddr string
	RedisTTL  time.Duration

	ReceiptSecret string
	ReceiptTTL    time.Duration
	CodeSalt      string

	CORSOrigins []string
}

// FromEnv reads the process environment. Missing values fall back to
// defaults suitable for a local sqlite deployment.
func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	origins := "http://localhost:3000,http://localhost:3010"
	if mode == ModeOnline {
		origins = "https://psychometrics.mindengage.ai"
	}
	return Config{
		Mode:          mode,
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		DBDriver:      envOr("DB_DRIVER", "sqlite"),
		DBDSN:         envOr("DB_DSN", ""),
		AMQPURI:       os.Getenv("AMQP_URI"),
		AMQPExchange:  envOr("AMQP_EXCHANGE", "psychometrics.events"),
		SiteID:        envOr("SITE_ID", "local"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisTTL:      envDuration("REDIS_TTL", 10*time.Minute),
		ReceiptSecret: envOr("RECEIPT_SECRET", "dev-secret-change-me"),
		ReceiptTTL:    envDuration("RECEIPT_TTL", 0),
		CodeSalt:      envOr("CODE_SALT", "mindengage-psychometrics"),
		CORSOrigins:   csvOr("CORS_ORIGINS", origins),
	}
}

// Load reads dotenv files (missing ones are skipped), then lets flags,
// PSY_* variables and an optional JSON -config file override FromEnv.
func Load(args []string, dotenv ...string) (Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, f := range dotenv {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return Config{}, err
			}
		}
	}
	cfg := FromEnv()

	fs := flag.NewFlagSet("scored", flag.ContinueOnError)
	mode := fs.String("mode", string(cfg.Mode), "offline|online")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "listen address")
	fs.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "sqlite|postgres")
	fs.StringVar(&cfg.DBDSN, "db-dsn", cfg.DBDSN, "database DSN")
	fs.StringVar(&cfg.AMQPURI, "amqp-uri", cfg.AMQPURI, "AMQP broker URI, empty disables publishing")
	fs.StringVar(&cfg.AMQPExchange, "amqp-exchange", cfg.AMQPExchange, "topic exchange for events")
	fs.StringVar(&cfg.SiteID, "site-id", cfg.SiteID, "site id stamped on logged events")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address for the definition cache")
	fs.DurationVar(&cfg.RedisTTL, "redis-ttl", cfg.RedisTTL, "definition cache TTL")
	fs.StringVar(&cfg.ReceiptSecret, "receipt-secret", cfg.ReceiptSecret, "HMAC secret for result receipts")
	fs.DurationVar(&cfg.ReceiptTTL, "receipt-ttl", cfg.ReceiptTTL, "receipt lifetime, 0 never expires")
	fs.StringVar(&cfg.CodeSalt, "code-salt", cfg.CodeSalt, "salt for public result codes")
	origins := fs.String("cors-origins", strings.Join(cfg.CORSOrigins, ","), "comma separated allowed origins")
	fs.String("config", "", "JSON config file")

	if err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix("PSY"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.JSONParser),
	); err != nil {
		return Config{}, err
	}
	cfg.Mode = Mode(*mode)
	cfg.CORSOrigins = splitCSV(*origins)
	return cfg, nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
		return def
	}
	return d
}
func csvOr(k, def string) []string {
	return splitCSV(envOr(k, def))
}
func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
