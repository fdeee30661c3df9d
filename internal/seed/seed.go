package seed

import (
	"fmt"
	"log"

	"fameboard/internal/models"

	"gorm.io/gorm"
)

// Distribution splits a post count across content kinds. Values are
// fractions; whatever the misinformation and spam shares leave over goes to
// clean posts.
type Distribution struct {
	Clean          float64
	Misinformation float64
	Spam           float64
}

var defaultDistribution = Distribution{Clean: 0.8, Misinformation: 0.15, Spam: 0.05}

// Distributions holds named content mixes for seeding presets.
var Distributions = map[string]Distribution{
	"default": defaultDistribution,
	// hostile simulates a board under heavy misinformation pressure, useful
	// for exercising the moderation cascade end to end.
	"hostile": {Clean: 0.4, Misinformation: 0.4, Spam: 0.2},
}

func computeCounts(total int, d Distribution) (clean, misinfo, spam int) {
	misinfo = int(float64(total) * d.Misinformation)
	spam = int(float64(total) * d.Spam)
	clean = total - misinfo - spam
	return clean, misinfo, spam
}

// Seeder populates the database with demo users, communities, posts and fame
// records.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll wipes every seeded table. PostgreSQL only.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE post_ratings, post_classifications, posts, fames,
		community_members, user_follows, expertise_areas, users
		RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// SeedSocialMesh creates n users, joins each to a few expertise-area
// communities and follows them to their neighbors. Built-in areas must be
// seeded first.
func (s *Seeder) SeedSocialMesh(n int) ([]*models.User, error) {
	var areas []models.ExpertiseArea
	if err := s.db.Order("name ASC").Find(&areas).Error; err != nil {
		return nil, fmt.Errorf("load areas: %w", err)
	}
	if len(areas) == 0 {
		return nil, fmt.Errorf("no expertise areas seeded; run Areas first")
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("failed to create seed user: %v", err)
			continue
		}
		users = append(users, user)

		// each user joins a rotating window of communities
		joinCount := 1 + i%3
		for j := 0; j < joinCount; j++ {
			area := areas[(i+j)%len(areas)]
			if err := s.db.Model(user).Association("Communities").Append(&area); err != nil {
				return nil, fmt.Errorf("join community %s: %w", area.Name, err)
			}
		}

		// follow up to three earlier users
		for j := 1; j <= 3 && i-j >= 0; j++ {
			if err := s.db.Model(user).Association("Follows").Append(users[i-j]); err != nil {
				return nil, fmt.Errorf("follow user %d: %w", users[i-j].ID, err)
			}
		}
	}

	return users, nil
}

// SeedActivity creates numPosts posts spread across users and areas using
// the given content mix. Misinformation posts are held unpublished, their
// authors get a first-offense fame record in the topic, and a neighbor
// leaves a negative accuracy rating. Spam posts are simply held.
func (s *Seeder) SeedActivity(users []*models.User, numPosts int, d Distribution) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to author posts")
	}

	var areas []models.ExpertiseArea
	if err := s.db.Order("name ASC").Find(&areas).Error; err != nil {
		return nil, fmt.Errorf("load areas: %w", err)
	}
	if len(areas) == 0 {
		return nil, fmt.Errorf("no expertise areas seeded; run Areas first")
	}

	cleanCount, misinfoCount, spamCount := computeCounts(numPosts, d)
	kinds := make([]string, 0, numPosts)
	for i := 0; i < cleanCount; i++ {
		kinds = append(kinds, PostKindClean)
	}
	for i := 0; i < misinfoCount; i++ {
		kinds = append(kinds, PostKindMisinformation)
	}
	for i := 0; i < spamCount; i++ {
		kinds = append(kinds, PostKindSpam)
	}

	posts := make([]*models.Post, 0, numPosts)
	for i, kind := range kinds {
		author := users[i%len(users)]
		area := areas[i%len(areas)]

		published := kind == PostKindClean
		post, err := s.factory.CreatePost(author, area.Name, kind, func(p *models.Post) {
			p.Published = published
		})
		if err != nil {
			return nil, fmt.Errorf("create post: %w", err)
		}
		posts = append(posts, post)

		if err := s.factory.CreateClassification(post, &area); err != nil {
			return nil, fmt.Errorf("classify post: %w", err)
		}

		if kind == PostKindMisinformation {
			if _, err := s.factory.CreateFame(author, &area, models.FameFirstOffense); err != nil {
				return nil, fmt.Errorf("record fame: %w", err)
			}
			rater := users[(i+1)%len(users)]
			if rater.ID != author.ID {
				if err := s.factory.CreateRating(rater, post, "accuracy", -1); err != nil {
					return nil, fmt.Errorf("rate post: %w", err)
				}
			}
		}

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}

	return posts, nil
}
