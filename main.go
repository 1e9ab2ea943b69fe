package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/CampusPulse/CP-Backend/internal/campus"
	"github.com/CampusPulse/CP-Backend/internal/db"
	"github.com/CampusPulse/CP-Backend/internal/middleware"
	"github.com/CampusPulse/CP-Backend/internal/occupancy"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	// Build order matters: the occupancy index bridges raw keys through the
	// facility registry. Both are immutable once built, so no query ever
	// observes a partially initialized state.
	campus.Init()
	occupancy.Init()

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)

	r.Mount("/campus", campus.SetupRoutes())
	r.Mount("/occupancy", occupancy.SetupRoutes())
	r.Mount("/ops", occupancy.SetupOpsRoutes())

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
