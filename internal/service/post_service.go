// Package service implements the business logic between the HTTP handlers
// and the repositories.
package service

import (
	"context"
	"strconv"
	"strings"

	"fameboard/internal/classify"
	"fameboard/internal/models"
	"fameboard/internal/observability"
	"fameboard/internal/repository"
)

type PostService struct {
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	areaRepo   repository.AreaRepository
	fameRepo   repository.FameRepository
	socialRepo repository.SocialRepository
	classifier classify.Classifier
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	areaRepo repository.AreaRepository,
	fameRepo repository.FameRepository,
	socialRepo repository.SocialRepository,
	classifier classify.Classifier,
) *PostService {
	return &PostService{
		postRepo:   postRepo,
		userRepo:   userRepo,
		areaRepo:   areaRepo,
		fameRepo:   fameRepo,
		socialRepo: socialRepo,
		classifier: classifier,
	}
}

type SubmitPostInput struct {
	AuthorID    uint
	Content     string
	CitesID     *uint
	RepliesToID *uint
}

// SubmitPostResult carries the gate and cascade outcome back to the caller.
// ForceLogout is true when this very submission banned the author; the
// session layer must end the session.
type SubmitPostResult struct {
	Post            *models.Post      `json:"post"`
	Published       bool              `json:"published"`
	Classifications []classify.Result `json:"classifications"`
	ForceLogout     bool              `json:"force_logout"`
}

// SubmitPost runs the full submission pipeline: classification, the
// publication gate and the moderation cascade.
func (s *PostService) SubmitPost(ctx context.Context, in SubmitPostInput) (*SubmitPostResult, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Post content is required")
	}

	author, err := s.userRepo.GetByID(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}
	if !author.IsActive {
		return nil, models.NewPermissionError("Account is deactivated")
	}

	// Referenced posts must exist before anything is written; a dangling
	// citation or reply target rejects the whole submission.
	for _, ref := range []*uint{in.CitesID, in.RepliesToID} {
		if ref == nil {
			continue
		}
		if _, err := s.postRepo.GetByID(ctx, *ref); err != nil {
			return nil, err
		}
	}

	disallowed, results, err := s.classifier.Classify(ctx, content)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	post := &models.Post{
		Content:     content,
		AuthorID:    in.AuthorID,
		CitesID:     in.CitesID,
		RepliesToID: in.RepliesToID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Resolve every classified topic to an area row and persist the
	// verdicts alongside the post.
	areas := make([]*models.ExpertiseArea, len(results))
	cls := make([]models.PostClassification, 0, len(results))
	for i, res := range results {
		area, err := s.areaRepo.FirstOrCreate(ctx, res.Area)
		if err != nil {
			return nil, err
		}
		areas[i] = area
		cls = append(cls, models.PostClassification{
			PostID:          post.ID,
			ExpertiseAreaID: area.ID,
			TruthRating:     res.TruthRating,
		})
	}
	if err := s.postRepo.SaveClassifications(ctx, cls); err != nil {
		return nil, err
	}

	// Publication gate: disallowed content never publishes, and neither
	// does a post touching any topic where the author already holds a
	// negative record. Only pre-existing state counts here; demotions
	// from this submission's own cascade do not retroactively hold it.
	published := !disallowed
	if published {
		for _, area := range areas {
			fame, err := s.fameRepo.GetFame(ctx, in.AuthorID, area.ID)
			if err != nil {
				return nil, err
			}
			if fame != nil && fame.Rank < 0 {
				published = false
				break
			}
		}
	}

	// Moderation cascade: one demotion per negatively rated topic, in
	// the classifier's stable result order.
	banned := false
	for i, res := range results {
		if res.TruthRating == nil || *res.TruthRating >= 0 {
			continue
		}
		area := areas[i]

		level, banSignal, err := s.fameRepo.Demote(ctx, in.AuthorID, area.ID)
		if err != nil {
			return nil, err
		}

		if banSignal {
			// Floor reached. Deactivate the account and pull every
			// post the author ever published, this one included.
			if err := s.userRepo.Ban(ctx, in.AuthorID); err != nil {
				return nil, err
			}
			published = false
			banned = true
			break
		}

		observability.FameDemotions.WithLabelValues(area.Name).Inc()

		if level.Rank() <= models.SuperProRank {
			evicted, err := s.evictIfMember(ctx, in.AuthorID, area.ID)
			if err != nil {
				return nil, err
			}
			if evicted {
				observability.CommunityEvictions.WithLabelValues(area.Name).Inc()
			}
		}
	}

	if !banned {
		if err := s.postRepo.SetPublished(ctx, post.ID, published); err != nil {
			return nil, err
		}
	}
	post.Published = published
	observability.PostsSubmitted.WithLabelValues(strconv.FormatBool(published)).Inc()

	return &SubmitPostResult{
		Post:            post,
		Published:       published,
		Classifications: results,
		ForceLogout:     banned,
	}, nil
}

func (s *PostService) evictIfMember(ctx context.Context, userID, areaID uint) (bool, error) {
	member, err := s.socialRepo.IsCommunityMember(ctx, userID, areaID)
	if err != nil {
		return false, err
	}
	if !member {
		return false, nil
	}
	return s.socialRepo.LeaveCommunity(ctx, userID, areaID)
}

type TimelineInput struct {
	ViewerID      uint
	Window        repository.Window
	PublishedOnly bool
	CommunityMode bool
}

// Timeline returns the viewer's feed. Standard mode is follow-based;
// community mode surfaces posts only inside a topic community shared by the
// viewer, the author and the post's own classification.
func (s *PostService) Timeline(ctx context.Context, in TimelineInput) ([]models.Post, error) {
	if !in.CommunityMode {
		return s.postRepo.FollowedTimeline(ctx, in.ViewerID, in.PublishedOnly, in.Window)
	}

	viewerAreas, err := s.socialRepo.CommunityIDs(ctx, in.ViewerID)
	if err != nil {
		return nil, err
	}
	if len(viewerAreas) == 0 {
		return nil, nil
	}

	candidates, err := s.postRepo.CommunityCandidates(ctx, viewerAreas)
	if err != nil {
		return nil, err
	}

	viewerSet := make(map[uint]bool, len(viewerAreas))
	for _, id := range viewerAreas {
		viewerSet[id] = true
	}

	visible := make([]models.Post, 0, len(candidates))
	for _, post := range candidates {
		if !post.Published && post.AuthorID != in.ViewerID {
			continue
		}
		authorSet := make(map[uint]bool, len(post.Author.Communities))
		for _, c := range post.Author.Communities {
			authorSet[c.ID] = true
		}
		// Three-way agreement: the post's topic, the viewer's membership
		// and the author's membership must intersect.
		for _, c := range post.Classifications {
			if viewerSet[c.ExpertiseAreaID] && authorSet[c.ExpertiseAreaID] {
				visible = append(visible, post)
				break
			}
		}
	}

	return applyWindow(visible, in.Window), nil
}

// applyWindow slices an already ordered list down to the requested
// inclusive [start, end] range.
func applyWindow(posts []models.Post, w repository.Window) []models.Post {
	if w.Start >= len(posts) {
		return nil
	}
	posts = posts[w.Start:]
	if limit := w.Limit(); limit >= 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	return posts
}

type SearchInput struct {
	Keyword       string
	Window        repository.Window
	PublishedOnly bool
}

func (s *PostService) Search(ctx context.Context, in SearchInput) ([]models.Post, error) {
	if strings.TrimSpace(in.Keyword) == "" {
		return nil, models.NewValidationError("Search keyword is required")
	}
	return s.postRepo.Search(ctx, in.Keyword, in.PublishedOnly, in.Window)
}

type RatePostInput struct {
	UserID     uint
	PostID     uint
	RatingType string
	Score      int
}

// RatePostResult carries the stored rating and whether it was created fresh
// or replaced an earlier score from the same user.
type RatePostResult struct {
	Rating  *models.PostRating
	Created bool
}

// RatePost records or replaces the caller's rating of a post. Authors cannot
// rate their own posts.
func (s *PostService) RatePost(ctx context.Context, in RatePostInput) (*RatePostResult, error) {
	if strings.TrimSpace(in.RatingType) == "" {
		return nil, models.NewValidationError("Rating type is required")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID == in.UserID {
		return nil, models.NewPermissionError("You cannot rate your own post")
	}

	rating := &models.PostRating{
		PostID:     in.PostID,
		UserID:     in.UserID,
		RatingType: strings.TrimSpace(in.RatingType),
		Score:      in.Score,
	}
	created, err := s.postRepo.SaveRating(ctx, rating)
	if err != nil {
		return nil, err
	}
	return &RatePostResult{Rating: rating, Created: created}, nil
}
