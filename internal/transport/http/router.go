package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/Karab-o/CareLink/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	CORSOrigins    []string
	GlobalLimit    int // requests per minute per IP
	AuthLimit      int // requests per minute per IP on /v1/auth
	WSHandler      http.Handler
	RequestTimeout time.Duration
}

func NewRouter(h *Handler, tokens service.TokenService, cfg RouterConfig) http.Handler {
	if cfg.GlobalLimit <= 0 {
		cfg.GlobalLimit = 100
	}
	if cfg.AuthLimit <= 0 {
		cfg.AuthLimit = 10
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	c := cors.Options{
		AllowedOrigins:   originsIfSet(cfg.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	r.Use(cors.Handler(c))

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	// /ws hijacks the connection; keep it out of the timeout and rate-limit
	// wrappers meant for request/response traffic.
	if cfg.WSHandler != nil {
		r.Handle("/ws", cfg.WSHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
		r.Use(httprate.LimitByIP(cfg.GlobalLimit, time.Minute))

		r.Route("/v1/auth", func(r chi.Router) {
			// tighter budget on credential endpoints
			r.Use(httprate.LimitByIP(cfg.AuthLimit, time.Minute))
			r.Post("/register", h.handleRegister)
			r.Post("/login", h.handleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(tokens))

			r.Get("/v1/users/me", h.handleProfile)

			r.Route("/v1/contacts", func(r chi.Router) {
				r.Post("/", h.handleAddContact)
				r.Get("/", h.handleListContacts)
				r.Delete("/{index}", h.handleRemoveContact)
			})

			r.Route("/v1/alerts", func(r chi.Router) {
				r.Post("/", h.handleDispatchAlert)
				r.Get("/", h.handleAlertHistory)
			})

			r.Get("/v1/socket/status", h.handleSocketStatus)
		})
	})

	return r
}

func originsIfSet(in []string) []string {
	out := []string{}
	for _, o := range in {
		if s := strings.TrimSpace(o); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
