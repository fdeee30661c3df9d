package repository

import (
	"fmt"
	"testing"

	"fameboard/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.ExpertiseArea{},
		&models.Fame{},
		&models.Post{},
		&models.PostClassification{},
		&models.PostRating{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "hashed-password",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &user
}

func createTestArea(t *testing.T, db *gorm.DB, name string) *models.ExpertiseArea {
	t.Helper()

	area := models.ExpertiseArea{Name: name, Label: labelFor(name)}
	if err := db.Create(&area).Error; err != nil {
		t.Fatalf("create area %s: %v", name, err)
	}
	return &area
}
