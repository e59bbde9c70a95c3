package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Karab-o/CareLink/internal/config"
	"github.com/Karab-o/CareLink/internal/observability/logging"
	"github.com/Karab-o/CareLink/internal/observability/metrics"
	obsmw "github.com/Karab-o/CareLink/internal/observability/middleware"
	"github.com/Karab-o/CareLink/internal/registry"
	"github.com/Karab-o/CareLink/internal/service/impl"
	"github.com/Karab-o/CareLink/internal/store"
	httpx "github.com/Karab-o/CareLink/internal/transport/http"
	"github.com/Karab-o/CareLink/internal/transport/ws"
	"github.com/Karab-o/CareLink/pkg/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: "carelink",
		Environment: env,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	slog.SetDefault(logger)
	metrics.MustRegister("carelink")

	logger.Info("starting service")

	cfg := config.Load()

	gdb, err := db.OpenGorm(db.Config{DSN: cfg.DatabaseURL, LogSQL: cfg.LogSQL})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}

	st := store.New(gdb)
	if err := st.AutoMigrate(context.Background()); err != nil {
		logger.Error("auto migrate", "error", err)
		os.Exit(1)
	}

	reg := registry.New()

	pw := impl.NewPasswordServiceArgon2id()
	ts := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:     cfg.Issuer,
		Audience:   cfg.Audience,
		TTL:        cfg.TokenTTL,
		SigningKey: []byte(cfg.SigningKey),
	})
	as := impl.NewAuthServiceImpl(st, pw, ts)
	cs := impl.NewContactServiceImpl(st)
	als := impl.NewAlertServiceImpl(st, reg)

	wsHandler := ws.NewHandler(ts, als, reg, cfg.WSPingInterval)

	h := httpx.NewHandler(as, cs, als, reg)
	mux := httpx.NewRouter(h, ts, httpx.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		GlobalLimit: cfg.GlobalLimit,
		AuthLimit:   cfg.AuthLimit,
		WSHandler:   wsHandler,
	})

	handler := obsmw.WithRequestAndTrace(obsmw.WithMetrics(mux))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("carelink listening", "addr", cfg.Addr, "issuer", cfg.Issuer)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
