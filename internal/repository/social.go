package repository

import (
	"context"

	"fameboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SocialRepository defines persistence operations for the follow graph and
// community membership.
type SocialRepository interface {
	// Follow records a follow edge. The bool reports whether the edge was
	// newly created, so repeated follows stay idempotent.
	Follow(ctx context.Context, followerID, followeeID uint) (bool, error)
	// Unfollow removes a follow edge. The bool reports whether an edge
	// existed to remove.
	Unfollow(ctx context.Context, followerID, followeeID uint) (bool, error)
	Following(ctx context.Context, userID uint, w Window) ([]models.User, error)
	Followers(ctx context.Context, userID uint, w Window) ([]models.User, error)
	FolloweeIDs(ctx context.Context, userID uint) ([]uint, error)

	// JoinCommunity enrolls a user in an expertise area's community. The
	// bool reports whether the membership was newly created.
	JoinCommunity(ctx context.Context, userID, areaID uint) (bool, error)
	// LeaveCommunity removes a membership. The bool reports whether a
	// membership existed to remove.
	LeaveCommunity(ctx context.Context, userID, areaID uint) (bool, error)
	IsCommunityMember(ctx context.Context, userID, areaID uint) (bool, error)
	CommunityIDs(ctx context.Context, userID uint) ([]uint, error)
	CommunityMembers(ctx context.Context, areaID uint) ([]models.User, error)
}

type socialRepository struct {
	db *gorm.DB
}

// NewSocialRepository returns a new SocialRepository implementation.
func NewSocialRepository(db *gorm.DB) SocialRepository {
	return &socialRepository{db: db}
}

type userFollow struct {
	FollowerID uint
	FolloweeID uint
}

func (userFollow) TableName() string { return "user_follows" }

type communityMember struct {
	UserID          uint
	ExpertiseAreaID uint
}

func (communityMember) TableName() string { return "community_members" }

func (r *socialRepository) Follow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	edge := userFollow{FollowerID: followerID, FolloweeID: followeeID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *socialRepository) Unfollow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&userFollow{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *socialRepository) Following(ctx context.Context, userID uint, w Window) ([]models.User, error) {
	var users []models.User
	err := w.apply(r.db.WithContext(ctx).
		Joins("JOIN user_follows ON user_follows.followee_id = users.id").
		Where("user_follows.follower_id = ?", userID).
		Order("users.username ASC")).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *socialRepository) Followers(ctx context.Context, userID uint, w Window) ([]models.User, error) {
	var users []models.User
	err := w.apply(r.db.WithContext(ctx).
		Joins("JOIN user_follows ON user_follows.follower_id = users.id").
		Where("user_follows.followee_id = ?", userID).
		Order("users.username ASC")).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *socialRepository) FolloweeIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&userFollow{}).
		Where("follower_id = ?", userID).
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *socialRepository) JoinCommunity(ctx context.Context, userID, areaID uint) (bool, error) {
	membership := communityMember{UserID: userID, ExpertiseAreaID: areaID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&membership)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *socialRepository) LeaveCommunity(ctx context.Context, userID, areaID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND expertise_area_id = ?", userID, areaID).
		Delete(&communityMember{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *socialRepository) IsCommunityMember(ctx context.Context, userID, areaID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&communityMember{}).
		Where("user_id = ? AND expertise_area_id = ?", userID, areaID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *socialRepository) CommunityIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&communityMember{}).
		Where("user_id = ?", userID).
		Pluck("expertise_area_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *socialRepository) CommunityMembers(ctx context.Context, areaID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN community_members ON community_members.user_id = users.id").
		Where("community_members.expertise_area_id = ?", areaID).
		Order("users.username ASC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
