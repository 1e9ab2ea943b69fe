package occupancy

import (
	"net/http"

	"github.com/CampusPulse/CP-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/dates", DatesHandler)
	r.Get("/metadata", MetadataHandler)
	r.Get("/ranges", RangesHandler)
	r.Get("/heatmap", HeatmapHandler)
	r.Get("/timeline", TimelineHandler)
	r.Get("/series", SeriesHandler)

	return r
}

func SetupOpsRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.OpsTokenMiddleware)
	r.Get("/unresolved", UnresolvedHandler)

	return r
}
