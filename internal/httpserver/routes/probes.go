package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrSnakeDoc/banho/internal/httpserver/deps"
	"github.com/MrSnakeDoc/banho/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/banho/internal/httpserver/mw"
)

func init() { Register(registerProbes) }

func registerProbes(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.With(adminOnly(d)).Get("/readyz", handlers.Readyz(d))
	r.With(adminOnly(d)).Get("/infra", handlers.Infra(d))
	r.With(adminOnly(d)).Handle("/metrics", promhttp.Handler())
	r.With(adminOnly(d), mw.EnforceHost(d.AllowedHosts, d.Logger)).Post("/reload", handlers.Reload(d))
}
