package service

import (
	"context"

	"fameboard/internal/classify"
	"fameboard/internal/models"
	"fameboard/internal/repository"
)

// Function-field stubs for the repository interfaces. Methods without a
// configured function return zero values so each test only wires what it
// exercises.

type userRepoStub struct {
	getByIDFn func(context.Context, uint) (*models.User, error)
	banFn     func(context.Context, uint) error
	createFn  func(context.Context, *models.User) error
	updateFn  func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn == nil {
		return &models.User{ID: id, Username: "stub", IsActive: true}, nil
	}
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(context.Context, string) (*models.User, error)    { return nil, nil }
func (s *userRepoStub) GetByUsername(context.Context, string) (*models.User, error) { return nil, nil }
func (s *userRepoStub) Create(ctx context.Context, u *models.User) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, u)
}
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, u)
}
func (s *userRepoStub) List(context.Context, int, int) ([]models.User, error) { return nil, nil }
func (s *userRepoStub) Ban(ctx context.Context, id uint) error {
	if s.banFn == nil {
		return nil
	}
	return s.banFn(ctx, id)
}

type postRepoStub struct {
	createFn              func(context.Context, *models.Post) error
	getByIDFn             func(context.Context, uint) (*models.Post, error)
	setPublishedFn        func(context.Context, uint, bool) error
	saveClassificationsFn func(context.Context, []models.PostClassification) error
	followedTimelineFn    func(context.Context, uint, bool, repository.Window) ([]models.Post, error)
	communityCandidatesFn func(context.Context, []uint) ([]models.Post, error)
	searchFn              func(context.Context, string, bool, repository.Window) ([]models.Post, error)
	saveRatingFn          func(context.Context, *models.PostRating) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, p *models.Post) error {
	if s.createFn == nil {
		p.ID = 1
		return nil
	}
	return s.createFn(ctx, p)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	if s.getByIDFn == nil {
		return &models.Post{ID: id}, nil
	}
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) SetPublished(ctx context.Context, id uint, published bool) error {
	if s.setPublishedFn == nil {
		return nil
	}
	return s.setPublishedFn(ctx, id, published)
}
func (s *postRepoStub) SaveClassifications(ctx context.Context, cls []models.PostClassification) error {
	if s.saveClassificationsFn == nil {
		return nil
	}
	return s.saveClassificationsFn(ctx, cls)
}
func (s *postRepoStub) FollowedTimeline(ctx context.Context, viewerID uint, publishedOnly bool, w repository.Window) ([]models.Post, error) {
	if s.followedTimelineFn == nil {
		return nil, nil
	}
	return s.followedTimelineFn(ctx, viewerID, publishedOnly, w)
}
func (s *postRepoStub) CommunityCandidates(ctx context.Context, areaIDs []uint) ([]models.Post, error) {
	if s.communityCandidatesFn == nil {
		return nil, nil
	}
	return s.communityCandidatesFn(ctx, areaIDs)
}
func (s *postRepoStub) Search(ctx context.Context, keyword string, publishedOnly bool, w repository.Window) ([]models.Post, error) {
	if s.searchFn == nil {
		return nil, nil
	}
	return s.searchFn(ctx, keyword, publishedOnly, w)
}
func (s *postRepoStub) SaveRating(ctx context.Context, r *models.PostRating) (bool, error) {
	if s.saveRatingFn == nil {
		return true, nil
	}
	return s.saveRatingFn(ctx, r)
}

type areaRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.ExpertiseArea, error)
	firstOrCreateFn func(context.Context, string) (*models.ExpertiseArea, error)
}

func (s *areaRepoStub) GetByID(ctx context.Context, id uint) (*models.ExpertiseArea, error) {
	if s.getByIDFn == nil {
		return &models.ExpertiseArea{ID: id, Name: "stub"}, nil
	}
	return s.getByIDFn(ctx, id)
}
func (s *areaRepoStub) GetByName(context.Context, string) (*models.ExpertiseArea, error) {
	return nil, nil
}
func (s *areaRepoStub) FirstOrCreate(ctx context.Context, name string) (*models.ExpertiseArea, error) {
	if s.firstOrCreateFn == nil {
		return &models.ExpertiseArea{ID: uint(len(name)), Name: name}, nil
	}
	return s.firstOrCreateFn(ctx, name)
}
func (s *areaRepoStub) List(context.Context) ([]models.ExpertiseArea, error) { return nil, nil }

type fameRepoStub struct {
	getFameFn         func(context.Context, uint, uint) (*models.Fame, error)
	listByUserFn      func(context.Context, uint) ([]models.Fame, error)
	demoteFn          func(context.Context, uint, uint) (models.FameLevel, bool, error)
	negativeRecordsFn func(context.Context) ([]models.Fame, error)
}

func (s *fameRepoStub) GetFame(ctx context.Context, userID, areaID uint) (*models.Fame, error) {
	if s.getFameFn == nil {
		return nil, nil
	}
	return s.getFameFn(ctx, userID, areaID)
}
func (s *fameRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Fame, error) {
	if s.listByUserFn == nil {
		return nil, nil
	}
	return s.listByUserFn(ctx, userID)
}
func (s *fameRepoStub) Demote(ctx context.Context, userID, areaID uint) (models.FameLevel, bool, error) {
	if s.demoteFn == nil {
		return models.FameFirstOffense, false, nil
	}
	return s.demoteFn(ctx, userID, areaID)
}
func (s *fameRepoStub) NegativeRecords(ctx context.Context) ([]models.Fame, error) {
	if s.negativeRecordsFn == nil {
		return nil, nil
	}
	return s.negativeRecordsFn(ctx)
}

type socialRepoStub struct {
	followFn            func(context.Context, uint, uint) (bool, error)
	unfollowFn          func(context.Context, uint, uint) (bool, error)
	joinCommunityFn     func(context.Context, uint, uint) (bool, error)
	leaveCommunityFn    func(context.Context, uint, uint) (bool, error)
	isCommunityMemberFn func(context.Context, uint, uint) (bool, error)
	communityIDsFn      func(context.Context, uint) ([]uint, error)
}

func (s *socialRepoStub) Follow(ctx context.Context, a, b uint) (bool, error) {
	if s.followFn == nil {
		return true, nil
	}
	return s.followFn(ctx, a, b)
}
func (s *socialRepoStub) Unfollow(ctx context.Context, a, b uint) (bool, error) {
	if s.unfollowFn == nil {
		return true, nil
	}
	return s.unfollowFn(ctx, a, b)
}
func (s *socialRepoStub) Following(context.Context, uint, repository.Window) ([]models.User, error) {
	return nil, nil
}
func (s *socialRepoStub) Followers(context.Context, uint, repository.Window) ([]models.User, error) {
	return nil, nil
}
func (s *socialRepoStub) FolloweeIDs(context.Context, uint) ([]uint, error)      { return nil, nil }
func (s *socialRepoStub) JoinCommunity(ctx context.Context, userID, areaID uint) (bool, error) {
	if s.joinCommunityFn == nil {
		return true, nil
	}
	return s.joinCommunityFn(ctx, userID, areaID)
}
func (s *socialRepoStub) LeaveCommunity(ctx context.Context, userID, areaID uint) (bool, error) {
	if s.leaveCommunityFn == nil {
		return true, nil
	}
	return s.leaveCommunityFn(ctx, userID, areaID)
}
func (s *socialRepoStub) IsCommunityMember(ctx context.Context, userID, areaID uint) (bool, error) {
	if s.isCommunityMemberFn == nil {
		return false, nil
	}
	return s.isCommunityMemberFn(ctx, userID, areaID)
}
func (s *socialRepoStub) CommunityIDs(ctx context.Context, userID uint) ([]uint, error) {
	if s.communityIDsFn == nil {
		return nil, nil
	}
	return s.communityIDsFn(ctx, userID)
}
func (s *socialRepoStub) CommunityMembers(context.Context, uint) ([]models.User, error) {
	return nil, nil
}

type classifierStub struct {
	classifyFn func(context.Context, string) (bool, []classify.Result, error)
}

func (s *classifierStub) Classify(ctx context.Context, content string) (bool, []classify.Result, error) {
	if s.classifyFn == nil {
		return false, nil, nil
	}
	return s.classifyFn(ctx, content)
}

func intPtr(v int) *int { return &v }
