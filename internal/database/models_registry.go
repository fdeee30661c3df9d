package database

import "fameboard/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.ExpertiseArea{},
		&models.Fame{},
		&models.Post{},
		&models.PostClassification{},
		&models.PostRating{},
	}
}
