package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/banho/internal/httpserver/deps"
	"github.com/MrSnakeDoc/banho/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/banho/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	submit := mw.RateLimit(mw.RateLimitConfig{
		RPS:        d.SubmitRPS,
		Burst:      d.SubmitBurst,
		MaxEntries: 10_000,
		TrustProxy: d.TrustProxy,
	})

	r.Route("/api", func(api chi.Router) {
		api.Get("/stories", handlers.Stories(d))
		api.Get("/stories/{id}", handlers.Story(d))
		api.Get("/testimonials", handlers.Testimonials(d))
		api.Get("/testimonials/categories", handlers.TestimonialCategories(d))
		api.Get("/postcards", handlers.Postcards(d))
		api.Get("/postcards/categories", handlers.PostcardCategories(d))
		api.Get("/postcards/base", handlers.BasePostcards(d))
		api.Get("/communities", handlers.Communities(d))

		api.Get("/biblioteca", handlers.BibliotecaItems(d))
		api.Get("/biblioteca/categorias", handlers.BibliotecaCategories(d))
		api.Get("/biblioteca/categoria/{id}", handlers.BibliotecaByCategory(d))
		api.Get("/galeria/years", handlers.GaleriaYears(d))
		api.Get("/galeria/images", handlers.GaleriaImages(d))
		api.Get("/programacao/eventos", handlers.ProgramacaoEvents(d))
		api.Get("/programacao/categorias", handlers.ProgramacaoCategories(d))
		api.Get("/programacao/categoria/{id}", handlers.ProgramacaoByCategory(d))

		api.Group(func(w chi.Router) {
			w.Use(submit)
			w.Post("/stories", handlers.CreateStory(d))
			w.Put("/stories/{id}", handlers.UpdateStory(d))
			w.Delete("/stories/{id}", handlers.DeleteStory(d))
			w.Post("/testimonials", handlers.CreateTestimonial(d))
			w.Post("/postcards", handlers.CreatePostcard(d))
			w.Post("/communities", handlers.CreateCommunity(d))
			w.Put("/communities/{id}", handlers.UpdateCommunity(d))
			w.Delete("/communities/{id}", handlers.DeleteCommunity(d))
		})
	})
}
