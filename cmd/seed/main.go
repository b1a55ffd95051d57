// Command seed loads the demo fixtures into a sqlite or postgres database.
package main

import (
	"flag"
	"log"

	"thaichat/internal/config"
	"thaichat/internal/database"
	"thaichat/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	clean := flag.Bool("clean", false, "wipe existing data before seeding")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.StorageDriver == config.DriverMemory {
		log.Fatal("The memory driver seeds itself at startup; set STORAGE_DRIVER=sqlite or postgres")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Database(db, *clean); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
