package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/banho/internal/httpserver/deps"
	"github.com/MrSnakeDoc/banho/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/banho/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	r.Route("/admin", func(a chi.Router) {
		a.Use(adminOnly(d), mw.EnforceHost(d.AllowedHosts, d.Logger))
		a.Get("/users/{id}/data", handlers.AdminUserData(d))
		a.Post("/users/{id}/{action}", handlers.AdminUserAction(d))
	})
}
