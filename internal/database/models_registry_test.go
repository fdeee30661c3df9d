package database

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestPersistentModelsMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(PersistentModels()...); err != nil {
		t.Fatalf("migrate registry: %v", err)
	}

	for _, table := range []string{"users", "expertise_areas", "fames", "posts", "post_classifications", "post_ratings", "user_follows", "community_members"} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("expected table %q after migration", table)
		}
	}
}
