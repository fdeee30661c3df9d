package seed

import (
	"fmt"

	"fameboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInArea is a permanent system expertise area.
type BuiltInArea struct {
	Name  string
	Label string
}

// BuiltInAreas defines the permanent expertise areas. They match the
// classifier's built-in topic dictionary so every classification made by a
// fresh deployment lands in a known community.
var BuiltInAreas = []BuiltInArea{
	{Name: "science", Label: "Science"},
	{Name: "health", Label: "Health"},
	{Name: "finance", Label: "Finance"},
	{Name: "history", Label: "History"},
	{Name: "technology", Label: "Technology"},
}

// Areas seeds the permanent built-in expertise areas. It is idempotent:
// rerunning updates labels in place without duplicating rows.
func Areas(db *gorm.DB) error {
	for _, item := range BuiltInAreas {
		area := models.ExpertiseArea{
			Name:  item.Name,
			Label: item.Label,
		}

		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"label", "updated_at"}),
		}).Create(&area).Error; err != nil {
			return fmt.Errorf("seed built-in area %s: %w", item.Name, err)
		}
	}

	return nil
}
