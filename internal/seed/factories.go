// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"fameboard/internal/classify"
	"fameboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Post kinds the factory knows how to build. Clean posts read like ordinary
// topic chatter; misinformation posts carry a falsehood marker the keyword
// classifier flags negatively; spam posts carry a blocked phrase.
const (
	PostKindClean          = "clean"
	PostKindMisinformation = "misinformation"
	PostKindSpam           = "spam"
)

var falsehoodMarkers = []string{
	"it is all a hoax",
	"this was debunked but they hid it",
	"a conspiracy the papers will not print",
}

var spamMarkers = []string{
	"buy followers at my site",
	"join my pyramid scheme today",
}

// Options configures the factory and seeder.
type Options struct {
	// SkipBcrypt stores a plaintext sentinel password instead of hashing.
	// Useful when seeding thousands of users in development.
	SkipBcrypt bool
	// DryRun builds entities with synthetic IDs without touching the DB.
	DryRun bool
	// MaxDays bounds how far back generated created_at timestamps spread.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rand: r, nextID: 1000}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    strings.ToLower(gofakeit.Email()),
		Bio:      gofakeit.Sentence(10),
		IsActive: true,
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post about the given topic area without persisting
// it. Content always contains one of the area's classifier keywords so the
// post classifies into that area; misinformation and spam kinds additionally
// carry a marker phrase.
func (f *Factory) BuildPost(author *models.User, area string, kind string, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Content:  f.generateContent(area, kind),
		AuthorID: author.ID,
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	minsBack := f.rand.Intn(60)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost builds and persists a post about the given topic area.
func (f *Factory) CreatePost(author *models.User, area string, kind string, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(author, area, kind, overrides...)

	if f.opts.DryRun {
		f.nextID++
		post.ID = f.nextID
		log.Printf("[dry-run] CreatePost: kind=%s area=%s author=%d", kind, area, post.AuthorID)
		return post, nil
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateClassification links a post to an expertise area.
func (f *Factory) CreateClassification(post *models.Post, area *models.ExpertiseArea) error {
	pc := &models.PostClassification{
		PostID:          post.ID,
		ExpertiseAreaID: area.ID,
	}
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(pc).Error
}

// CreateFame persists a fame record for the user in the given area. Existing
// records are left untouched so repeated seeding never moves a ladder.
func (f *Factory) CreateFame(user *models.User, area *models.ExpertiseArea, level models.FameLevel) (*models.Fame, error) {
	fame := &models.Fame{
		UserID:          user.ID,
		ExpertiseAreaID: area.ID,
		Level:           level,
	}
	if err := f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(fame).Error; err != nil {
		return nil, err
	}
	return fame, nil
}

// CreateRating persists a rating from `rater` on `post`.
func (f *Factory) CreateRating(rater *models.User, post *models.Post, ratingType string, score int) error {
	rating := &models.PostRating{
		PostID:     post.ID,
		UserID:     rater.ID,
		RatingType: ratingType,
		Score:      score,
	}
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(rating).Error
}

func (f *Factory) generateContent(area string, kind string) string {
	keyword := keywordFor(area, f.rand)

	var sb strings.Builder
	sb.WriteString(gofakeit.Sentence(6))
	sb.WriteString(" ")
	sb.WriteString(fmt.Sprintf("Thoughts on %s after this week. ", keyword))
	sb.WriteString(gofakeit.Sentence(5))

	switch kind {
	case PostKindMisinformation:
		marker := falsehoodMarkers[f.rand.Intn(len(falsehoodMarkers))]
		sb.WriteString(" Honestly, ")
		sb.WriteString(marker)
		sb.WriteString(".")
	case PostKindSpam:
		marker := spamMarkers[f.rand.Intn(len(spamMarkers))]
		sb.WriteString(" Also ")
		sb.WriteString(marker)
		sb.WriteString(".")
	}

	return sb.String()
}

// keywordFor picks a classifier keyword for the area so generated content
// actually classifies into it. Unknown areas fall back to the area name.
func keywordFor(area string, r *rand.Rand) string {
	for _, topic := range classify.DefaultTopics {
		if topic.Area == area && len(topic.Keywords) > 0 {
			return topic.Keywords[r.Intn(len(topic.Keywords))]
		}
	}
	return area
}
