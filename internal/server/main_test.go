package server

import (
	"testing"

	"fameboard/internal/config"
	"fameboard/internal/database"
	"fameboard/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServerDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret-0123456789abcdef-long-enough",
		Port:      "0",
		Env:       "test",
	}
}

func newTestServer(t *testing.T, db *gorm.DB) *Server {
	t.Helper()

	srv, err := NewServerWithDeps(testConfig(), db, nil)
	if err != nil {
		t.Fatalf("create server: %v", err)
	}
	return srv
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return &user
}

func seedArea(t *testing.T, db *gorm.DB, name string) *models.ExpertiseArea {
	t.Helper()

	area := models.ExpertiseArea{Name: name, Label: name}
	if err := db.Create(&area).Error; err != nil {
		t.Fatalf("seed area %s: %v", name, err)
	}
	return &area
}
