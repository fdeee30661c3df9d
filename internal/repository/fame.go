package repository

import (
	"context"
	"errors"

	"fameboard/internal/cache"
	"fameboard/internal/models"
	"fameboard/internal/observability"

	"gorm.io/gorm"
)

// demoteAttempts bounds the optimistic retry loop on concurrent demotions.
const demoteAttempts = 3

// FameRepository defines persistence operations for the fame ledger.
type FameRepository interface {
	// GetFame returns the fame record for a user in an area, or (nil, nil)
	// when the user has no standing there yet.
	GetFame(ctx context.Context, userID, areaID uint) (*models.Fame, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Fame, error)
	// Demote lowers the user's fame one level in the given area. A user
	// with no record starts directly at the first-offense level. The
	// returned bool is true when the user was already at the floor and
	// the demotion could not be applied, which callers treat as the ban
	// signal.
	Demote(ctx context.Context, userID, areaID uint) (models.FameLevel, bool, error)
	// NegativeRecords returns every fame record below zero, with user and
	// area preloaded, ordered worst rank first and newest account first
	// within a rank.
	NegativeRecords(ctx context.Context) ([]models.Fame, error)
}

type fameRepository struct {
	db *gorm.DB
}

// NewFameRepository returns a new FameRepository implementation.
func NewFameRepository(db *gorm.DB) FameRepository {
	return &fameRepository{db: db}
}

func (r *fameRepository) GetFame(ctx context.Context, userID, areaID uint) (*models.Fame, error) {
	var fame models.Fame
	key := cache.FameKey(userID, areaID)

	err := cache.Aside(ctx, key, &fame, cache.FameTTL, func() error {
		err := r.db.WithContext(ctx).
			Where("user_id = ? AND expertise_area_id = ?", userID, areaID).
			First(&fame).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Fame", userID)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		if models.IsCode(err, "NOT_FOUND") {
			return nil, nil
		}
		return nil, err
	}
	return &fame, nil
}

func (r *fameRepository) ListByUser(ctx context.Context, userID uint) ([]models.Fame, error) {
	var fames []models.Fame
	key := cache.UserFameKey(userID)

	err := cache.Aside(ctx, key, &fames, cache.FameTTL, func() error {
		err := r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Preload("ExpertiseArea").
			Order("rank DESC").
			Find(&fames).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return fames, nil
}

func (r *fameRepository) Demote(ctx context.Context, userID, areaID uint) (models.FameLevel, bool, error) {
	for attempt := 0; attempt < demoteAttempts; attempt++ {
		var fame models.Fame
		err := r.db.WithContext(ctx).
			Where("user_id = ? AND expertise_area_id = ?", userID, areaID).
			First(&fame).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			fame = models.Fame{
				UserID:          userID,
				ExpertiseAreaID: areaID,
				Level:           models.FameFirstOffense,
			}
			createErr := r.db.WithContext(ctx).Create(&fame).Error
			if createErr == nil {
				cache.InvalidateFame(ctx, userID, areaID)
				return fame.Level, false, nil
			}
			if isUniqueConstraintError(createErr) {
				// Another submission created the record first. Re-read
				// and demote the winner's row instead.
				observability.DemotionConflicts.Inc()
				continue
			}
			return "", false, models.NewInternalError(createErr)
		}
		if err != nil {
			return "", false, models.NewInternalError(err)
		}

		lower, ok := fame.Level.NextLower()
		if !ok {
			// Already at the floor. The record stays untouched and the
			// caller escalates to a ban.
			return fame.Level, true, nil
		}

		// Conditional update guarded on the rank we read. A concurrent
		// demotion moves the rank and zeroes RowsAffected, so no level
		// is ever skipped.
		res := r.db.WithContext(ctx).
			Model(&models.Fame{}).
			Where("id = ? AND rank = ?", fame.ID, fame.Rank).
			Updates(map[string]any{"level": lower, "rank": lower.Rank()})
		if res.Error != nil {
			return "", false, models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			observability.DemotionConflicts.Inc()
			continue
		}

		cache.InvalidateFame(ctx, userID, areaID)
		return lower, false, nil
	}
	return "", false, models.NewConflictError("fame record changed concurrently, demotion not applied")
}

func (r *fameRepository) NegativeRecords(ctx context.Context) ([]models.Fame, error) {
	var fames []models.Fame
	err := r.db.WithContext(ctx).
		Joins("User").
		Joins("ExpertiseArea").
		Where("rank < 0").
		Order("rank ASC").
		Order("\"User\".created_at DESC").
		Find(&fames).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return fames, nil
}
