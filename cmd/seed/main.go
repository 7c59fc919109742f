// Command seed provisions the built-in demo inventory directly into the
// configured seat store, outside the running server. Useful for loading a
// PostgreSQL database before a load test or a frontend demo.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"ticketly/internal/seats"
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/database"
	"ticketly/internal/venues"

	"github.com/joho/godotenv"
)

func main() {
	seed := flag.Int64("seed", 1, "seed for the demo state assignment")
	statesOnly := flag.Bool("all-available", false, "skip demo state simulation, every seat starts AVAILABLE")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	if !cfg.UsesPostgres() {
		log.Fatalf("STORE_BACKEND must be %q to seed a database, got %q", config.StoreBackendPostgres, cfg.StoreBackend)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	store := seats.NewGormStore(db.GetPostgreSQL())

	topology := venues.DemoTopology()
	inventory, err := venues.Generate(topology)
	if err != nil {
		log.Fatalf("Failed to generate inventory: %v", err)
	}
	if !*statesOnly {
		inventory = venues.NewDemoSeeder(*seed).Apply(inventory)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := store.Seed(ctx, inventory); err != nil {
		log.Fatalf("Failed to seed inventory: %v", err)
	}

	counts := map[seats.SeatState]int{}
	for i := range inventory {
		counts[inventory[i].State]++
	}

	fmt.Printf("Seeded venue %q with %d seats\n", topology.VenueID, len(inventory))
	for _, state := range []seats.SeatState{seats.StateAvailable, seats.StateReserved, seats.StateSold} {
		fmt.Printf("  %-10s %d\n", state, counts[state])
	}
}
