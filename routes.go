package main

import (
	"net/http"

	"portfolio-complete/config"
	"portfolio-complete/handlers/api/admin"
	"portfolio-complete/handlers/api/portfolio"
	ratelimit "portfolio-complete/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func newRouter(cfg *config.Config, svc portfolio.DocumentService, socketHandler http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Origin", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("you are all set"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "healthy")
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", portfolio.HandleGet(svc))
			r.Group(func(r chi.Router) {
				if cfg.RateLimit.Enabled {
					r.Use(ratelimit.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Handler)
				}
				r.Post("/", portfolio.HandleReplace(svc))
				r.Put("/", portfolio.HandleReplace(svc))
			})
		})
		r.Post("/admin/verify", admin.HandleVerify(cfg.Admin.Secret))
	})

	if socketHandler != nil {
		r.Handle("/socket.io/", socketHandler)
	}
	return r
}
