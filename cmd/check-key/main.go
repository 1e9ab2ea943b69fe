package main

import (
	"fmt"
	"log"
	"os"

	"github.com/CampusPulse/CP-Backend/internal/campus"
	"github.com/CampusPulse/CP-Backend/internal/db"
	"github.com/joho/godotenv"
)

// check-key resolves raw building keys against the loaded registry, for
// chasing down unresolved keys reported by /ops/unresolved.
func main() {
	_ = godotenv.Load(".env.local")

	if len(os.Args) < 2 {
		log.Fatal("usage: check-key <raw-key> [raw-key ...]")
	}

	db.Connect()
	campus.Init()

	for _, key := range os.Args[1:] {
		cid, ok := campus.Reg.Resolve(key)
		if !ok {
			fmt.Printf("%-10s -> (unresolved)\n", key)
			continue
		}
		f := campus.Reg.FacilityByID(cid)
		fmt.Printf("%-10s -> %s | %s (%s)\n", key, cid, f.DisplayName, f.Category)
	}
}
