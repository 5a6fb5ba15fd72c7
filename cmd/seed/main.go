// Command main seeds the development database with fake data.
package main

import (
	"flag"
	"log"

	"microblog/internal/config"
	"microblog/internal/database"
	"microblog/internal/seed"
)

func main() {
	userCount := flag.Int("users", 15, "number of users to create")
	statusCount := flag.Int("statuses", 5, "statuses per user")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, *userCount, *statusCount); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
