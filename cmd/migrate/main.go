// Command migrate applies the Fameboard database schema. Connect skips
// AutoMigrate in production, so deployments run this explicitly.
package main

import (
	"log"

	"fameboard/internal/config"
	"fameboard/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	models := database.PersistentModels()
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Printf("Schema applied for %d models", len(models))
}
