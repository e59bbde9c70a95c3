package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// DB
	DatabaseURL string
	LogSQL      bool

	// Tokens
	Issuer     string
	Audience   string
	TokenTTL   time.Duration
	SigningKey string

	// HTTP
	Addr        string
	CORSOrigins []string
	GlobalLimit int
	AuthLimit   int

	// Websocket
	WSPingInterval time.Duration
}

func Load() Config {
	return Config{
		DatabaseURL: must("DATABASE_URL"),
		LogSQL:      getbool("LOG_SQL", false),

		Issuer:     getenv("ISSUER", "carelink"),
		Audience:   getenv("AUDIENCE", "carelink-clients"),
		TokenTTL:   getdur("TOKEN_TTL", 24*time.Hour),
		SigningKey: must("SIGNING_KEY"),

		Addr:        getenv("ADDR", ":3000"),
		CORSOrigins: getlist("CORS_ORIGINS"),
		GlobalLimit: getint("RATE_LIMIT_PER_MINUTE", 100),
		AuthLimit:   getint("AUTH_RATE_LIMIT_PER_MINUTE", 10),

		WSPingInterval: getdur("WS_PING_INTERVAL", 30*time.Second),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		slog.Warn("invalid duration, using default", "key", k, "value", v, "default", def)
	}
	return def
}

func getlist(k string) []string {
	v := os.Getenv(k)
	if v == "" {
		return nil
	}
	return strings.Split(v, ",")
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("missing required env", "key", k)
		os.Exit(1)
	}
	return v
}
