package campus

import (
	"net/http"

	"github.com/CampusPulse/CP-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/geometry", GeometryHandler)
	r.Get("/resolve/{key}", ResolveHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitMiddleware(rate.Limit(10), 20))
		r.Get("/search", SearchHandler)
	})

	return r
}
