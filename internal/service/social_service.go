package service

import (
	"context"

	"fameboard/internal/models"
	"fameboard/internal/repository"
)

type SocialService struct {
	socialRepo repository.SocialRepository
	userRepo   repository.UserRepository
	areaRepo   repository.AreaRepository
}

func NewSocialService(
	socialRepo repository.SocialRepository,
	userRepo repository.UserRepository,
	areaRepo repository.AreaRepository,
) *SocialService {
	return &SocialService{
		socialRepo: socialRepo,
		userRepo:   userRepo,
		areaRepo:   areaRepo,
	}
}

// Follow adds a follow edge from follower to target. The returned flag
// reports whether the edge is new; following twice is not an error.
func (s *SocialService) Follow(ctx context.Context, followerID, targetID uint) (bool, error) {
	if followerID == targetID {
		return false, models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}
	return s.socialRepo.Follow(ctx, followerID, targetID)
}

func (s *SocialService) Unfollow(ctx context.Context, followerID, targetID uint) (bool, error) {
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}
	return s.socialRepo.Unfollow(ctx, followerID, targetID)
}

func (s *SocialService) Following(ctx context.Context, userID uint, w repository.Window) ([]models.User, error) {
	return s.socialRepo.Following(ctx, userID, w)
}

func (s *SocialService) Followers(ctx context.Context, userID uint, w repository.Window) ([]models.User, error) {
	return s.socialRepo.Followers(ctx, userID, w)
}

// JoinCommunity enrolls the user in a topic community. There is no minimum
// fame requirement to join; eviction only happens through the cascade.
func (s *SocialService) JoinCommunity(ctx context.Context, userID, areaID uint) (bool, error) {
	if areaID == 0 {
		return false, models.NewValidationError("Expertise area is required")
	}
	if _, err := s.areaRepo.GetByID(ctx, areaID); err != nil {
		return false, err
	}
	return s.socialRepo.JoinCommunity(ctx, userID, areaID)
}

func (s *SocialService) LeaveCommunity(ctx context.Context, userID, areaID uint) (bool, error) {
	if areaID == 0 {
		return false, models.NewValidationError("Expertise area is required")
	}
	if _, err := s.areaRepo.GetByID(ctx, areaID); err != nil {
		return false, err
	}
	return s.socialRepo.LeaveCommunity(ctx, userID, areaID)
}

func (s *SocialService) Communities(ctx context.Context, userID uint) ([]models.ExpertiseArea, error) {
	ids, err := s.socialRepo.CommunityIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	areas := make([]models.ExpertiseArea, 0, len(ids))
	for _, id := range ids {
		area, err := s.areaRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		areas = append(areas, *area)
	}
	return areas, nil
}

func (s *SocialService) ListAreas(ctx context.Context) ([]models.ExpertiseArea, error) {
	return s.areaRepo.List(ctx)
}
