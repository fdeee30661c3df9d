// Command seed populates the Fameboard database with demo data.
package main

import (
	"flag"
	"log"

	"fameboard/internal/config"
	"fameboard/internal/database"
	"fameboard/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	mix := flag.String("mix", "default", "Content mix to use (default, hostile)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d posts, clean=%v, mix=%s\n", *numUsers, *numPosts, *shouldClean, *mix)

	distribution, ok := seed.Distributions[*mix]
	if !ok {
		log.Fatalf("Unknown content mix %q", *mix)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := seed.Areas(db); err != nil {
		log.Fatalf("Built-in area seeding failed: %v", err)
	}

	users, err := s.SeedSocialMesh(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}

	if _, err := s.SeedActivity(users, *numPosts, distribution); err != nil {
		log.Fatalf("Activity seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}
