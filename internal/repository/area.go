package repository

import (
	"context"
	"errors"
	"strings"

	"fameboard/internal/models"

	"gorm.io/gorm"
)

// AreaRepository defines persistence operations for expertise areas.
type AreaRepository interface {
	GetByID(ctx context.Context, id uint) (*models.ExpertiseArea, error)
	GetByName(ctx context.Context, name string) (*models.ExpertiseArea, error)
	// FirstOrCreate resolves an area by its canonical name, creating it
	// when the classifier reports a topic the table has not seen yet.
	FirstOrCreate(ctx context.Context, name string) (*models.ExpertiseArea, error)
	List(ctx context.Context) ([]models.ExpertiseArea, error)
}

type areaRepository struct {
	db *gorm.DB
}

// NewAreaRepository returns a new AreaRepository implementation.
func NewAreaRepository(db *gorm.DB) AreaRepository {
	return &areaRepository{db: db}
}

func (r *areaRepository) GetByID(ctx context.Context, id uint) (*models.ExpertiseArea, error) {
	var area models.ExpertiseArea
	if err := r.db.WithContext(ctx).First(&area, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("ExpertiseArea", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &area, nil
}

func (r *areaRepository) GetByName(ctx context.Context, name string) (*models.ExpertiseArea, error) {
	var area models.ExpertiseArea
	name = strings.ToLower(strings.TrimSpace(name))
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&area).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("ExpertiseArea", name)
		}
		return nil, models.NewInternalError(err)
	}
	return &area, nil
}

func (r *areaRepository) FirstOrCreate(ctx context.Context, name string) (*models.ExpertiseArea, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	area := models.ExpertiseArea{Name: name, Label: labelFor(name)}
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		FirstOrCreate(&area).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &area, nil
}

// labelFor derives a display label from a canonical area name.
func labelFor(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func (r *areaRepository) List(ctx context.Context) ([]models.ExpertiseArea, error) {
	var areas []models.ExpertiseArea
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&areas).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return areas, nil
}
