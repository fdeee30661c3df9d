package repository

import (
	"context"
	"errors"
	"strings"

	"fameboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Window is an inclusive [Start, End] slice of a result list. A negative End
// leaves the tail unbounded.
type Window struct {
	Start int
	End   int
}

// Limit returns the row count the window covers, or -1 when unbounded.
func (w Window) Limit() int {
	if w.End < 0 {
		return -1
	}
	n := w.End - w.Start + 1
	if n < 0 {
		return 0
	}
	return n
}

func (w Window) apply(db *gorm.DB) *gorm.DB {
	if w.Start > 0 {
		db = db.Offset(w.Start)
	}
	if limit := w.Limit(); limit >= 0 {
		db = db.Limit(limit)
	}
	return db
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	SetPublished(ctx context.Context, postID uint, published bool) error
	SaveClassifications(ctx context.Context, cls []models.PostClassification) error

	// FollowedTimeline returns the viewer's own posts plus published posts
	// from accounts the viewer follows, newest first, windowed.
	FollowedTimeline(ctx context.Context, viewerID uint, publishedOnly bool, w Window) ([]models.Post, error)
	// CommunityCandidates returns posts classified into any of the given
	// areas, newest first, with authors and their community memberships
	// preloaded. The community visibility rules are applied by the caller.
	CommunityCandidates(ctx context.Context, areaIDs []uint) ([]models.Post, error)
	Search(ctx context.Context, keyword string, publishedOnly bool, w Window) ([]models.Post, error)

	// SaveRating stores or replaces a rating. The bool reports whether the
	// rating is new rather than an update of an existing one.
	SaveRating(ctx context.Context, rating *models.PostRating) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Classifications").
		Preload("Classifications.ExpertiseArea").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) SetPublished(ctx context.Context, postID uint, published bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		Update("published", published)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", postID)
	}
	return nil
}

func (r *postRepository) SaveClassifications(ctx context.Context, cls []models.PostClassification) error {
	if len(cls) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "expertise_area_id"}},
			UpdateAll: true,
		}).
		Create(&cls).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) FollowedTimeline(ctx context.Context, viewerID uint, publishedOnly bool, w Window) ([]models.Post, error) {
	followees := r.db.
		Table("user_follows").
		Select("followee_id").
		Where("follower_id = ?", viewerID)

	q := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Classifications").
		Preload("Classifications.ExpertiseArea")
	if publishedOnly {
		// The viewer always sees their own posts, held or not.
		q = q.Where("author_id = ? OR (published = ? AND author_id IN (?))", viewerID, true, followees)
	} else {
		q = q.Where("author_id = ? OR author_id IN (?)", viewerID, followees)
	}

	var posts []models.Post
	err := w.apply(q.Order("created_at DESC").Order("id DESC")).Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) CommunityCandidates(ctx context.Context, areaIDs []uint) ([]models.Post, error) {
	if len(areaIDs) == 0 {
		return nil, nil
	}
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Distinct("posts.*").
		Joins("JOIN post_classifications ON post_classifications.post_id = posts.id").
		Where("post_classifications.expertise_area_id IN ?", areaIDs).
		Preload("Author").
		Preload("Author.Communities").
		Preload("Classifications").
		Preload("Classifications.ExpertiseArea").
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Search(ctx context.Context, keyword string, publishedOnly bool, w Window) ([]models.Post, error) {
	// LOWER + LIKE instead of ILIKE so the query runs on both Postgres
	// and the sqlite test databases.
	pattern := "%" + strings.ToLower(strings.TrimSpace(keyword)) + "%"

	q := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = posts.author_id").
		Where("LOWER(posts.content) LIKE ? OR LOWER(users.username) LIKE ? OR LOWER(users.email) LIKE ?",
			pattern, pattern, pattern)
	if publishedOnly {
		q = q.Where("posts.published = ?", true)
	}

	var posts []models.Post
	err := w.apply(q.
		Preload("Author").
		Preload("Classifications").
		Preload("Classifications.ExpertiseArea").
		Order("posts.created_at DESC").
		Order("posts.id DESC")).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) SaveRating(ctx context.Context, rating *models.PostRating) (bool, error) {
	var existing int64
	err := r.db.WithContext(ctx).
		Model(&models.PostRating{}).
		Where("post_id = ? AND user_id = ? AND rating_type = ?", rating.PostID, rating.UserID, rating.RatingType).
		Count(&existing).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}, {Name: "rating_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
		}).
		Create(rating).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return existing == 0, nil
}
