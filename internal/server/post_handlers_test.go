package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fameboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func submitApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Post("/posts", func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return s.SubmitPost(c)
	})
	return app
}

type submitResponse struct {
	ID              uint `json:"id"`
	Published       bool `json:"published"`
	ForceLogout     bool `json:"force_logout"`
	Classifications []struct {
		Area        string `json:"area"`
		TruthRating *int   `json:"truth_rating"`
	} `json:"classifications"`
}

func TestSubmitPost_FirstOffenseScenario(t *testing.T) {
	t.Parallel()
	db := setupServerDB(t)
	s := newTestServer(t, db)
	author := seedUser(t, db, "newcomer")
	app := submitApp(s, author.ID)

	// Misinformation in a topic the author has no record in: the record
	// is created at the first-offense tier but the post still publishes.
	resp := postJSON(t, app, "/posts", fiber.Map{
		"content": "climate research is a hoax",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var out submitResponse
	json.NewDecoder(resp.Body).Decode(&out)
	if !out.Published {
		t.Error("expected post to publish")
	}
	if out.ForceLogout {
		t.Error("first offense must not ban")
	}
	if len(out.Classifications) != 1 || out.Classifications[0].Area != "science" {
		t.Fatalf("expected a single science classification, got %+v", out.Classifications)
	}

	var fame models.Fame
	if err := db.Where("user_id = ?", author.ID).First(&fame).Error; err != nil {
		t.Fatalf("fame record not created: %v", err)
	}
	if fame.Level != models.FameConfuser {
		t.Errorf("expected Confuser, got %s", fame.Level)
	}
}

func TestSubmitPost_DisallowedContent(t *testing.T) {
	t.Parallel()
	db := setupServerDB(t)
	s := newTestServer(t, db)
	author := seedUser(t, db, "spammer")
	app := submitApp(s, author.ID)

	resp := postJSON(t, app, "/posts", fiber.Map{
		"content": "buy followers today, great deal",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var out submitResponse
	json.NewDecoder(resp.Body).Decode(&out)
	if out.Published {
		t.Error("disallowed content must not publish")
	}
	if out.ForceLogout {
		t.Error("disallowed content alone must not ban")
	}
}

func TestSubmitPost_NegativeStandingHoldsPost(t *testing.T) {
	t.Parallel()
	db := setupServerDB(t)
	s := newTestServer(t, db)
	author := seedUser(t, db, "confused")
	science := seedArea(t, db, "science")
	if err := db.Create(&models.Fame{
		UserID: author.ID, ExpertiseAreaID: science.ID, Level: models.FameConfuser,
	}).Error; err != nil {
		t.Fatalf("seed fame: %v", err)
	}
	app := submitApp(s, author.ID)

	// Benign content, but it touches a topic where the author already
	// has negative standing.
	resp := postJSON(t, app, "/posts", fiber.Map{
		"content": "new physics research published today",
	})
	var out submitResponse
	json.NewDecoder(resp.Body).Decode(&out)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if out.Published {
		t.Error("post touching a negatively famed topic must be held")
	}
}

func TestSubmitPost_BanCascade(t *testing.T) {
	t.Parallel()
	db := setupServerDB(t)
	s := newTestServer(t, db)
	author := seedUser(t, db, "doomed")
	science := seedArea(t, db, "science")
	if err := db.Create(&models.Fame{
		UserID: author.ID, ExpertiseAreaID: science.ID, Level: models.FameDangerousBullshitter,
	}).Error; err != nil {
		t.Fatalf("seed fame: %v", err)
	}

	// Older published post that the ban must pull down.
	old := models.Post{Content: "older post", AuthorID: author.ID, Published: true}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	db.Model(&old).Update("published", true)

	app := submitApp(s, author.ID)
	resp := postJSON(t, app, "/posts", fiber.Map{
		"content": "climate research is a hoax",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var out submitResponse
	json.NewDecoder(resp.Body).Decode(&out)
	if out.Published {
		t.Error("banned author's post must not publish")
	}
	if !out.ForceLogout {
		t.Error("a floor demotion must signal forced logout")
	}

	var banned models.User
	db.First(&banned, author.ID)
	if banned.IsActive {
		t.Error("author must be deactivated")
	}

	var stillPublished int64
	db.Model(&models.Post{}).
		Where("author_id = ? AND published = ?", author.ID, true).
		Count(&stillPublished)
	if stillPublished != 0 {
		t.Errorf("expected 0 published posts after ban, got %d", stillPublished)
	}
}

func TestGetTimeline(t *testing.T) {
	t.Parallel()
	db := setupServerDB(t)
	s := newTestServer(t, db)
	viewer := seedUser(t, db, "viewer")
	friend := seedUser(t, db, "friend")

	if err := db.Exec("INSERT INTO user_follows (follower_id, followee_id) VALUES (?, ?)",
		viewer.ID, friend.ID).Error; err != nil {
		t.Fatalf("seed follow: %v", err)
	}
	post := models.Post{Content: "hello feed", AuthorID: friend.ID}
	db.Create(&post)
	db.Model(&post).Update("published", true)

	app := fiber.New()
	app.Get("/timeline", func(c *fiber.Ctx) error {
		c.Locals("userID", viewer.ID)
		return s.GetTimeline(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/timeline", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Posts []models.Post `json:"posts"`
		Count int           `json:"count"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	if body.Count != 1 {
		t.Fatalf("expected 1 post, got %d", body.Count)
	}
	if body.Posts[0].Content != "hello feed" {
		t.Errorf("unexpected post content %q", body.Posts[0].Content)
	}
}

func TestRatePost(t *testing.T) {
	t.Parallel()
	db := setupServerDB(t)
	s := newTestServer(t, db)
	author := seedUser(t, db, "author")
	reader := seedUser(t, db, "reader")

	post := models.Post{Content: "rate me", AuthorID: author.ID}
	db.Create(&post)
	db.Model(&post).Update("published", true)

	newApp := func(userID uint) *fiber.App {
		app := fiber.New()
		app.Post("/posts/:postId/ratings", func(c *fiber.Ctx) error {
			c.Locals("userID", userID)
			return s.RatePost(c)
		})
		return app
	}

	t.Run("own post rejected", func(t *testing.T) {
		resp := postJSON(t, newApp(author.ID), fmt.Sprintf("/posts/%d/ratings", post.ID),
			fiber.Map{"rating_type": "accuracy", "score": 5})
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("expected 403, got %d", resp.StatusCode)
		}
	})

	t.Run("reader rates", func(t *testing.T) {
		resp := postJSON(t, newApp(reader.ID), fmt.Sprintf("/posts/%d/ratings", post.ID),
			fiber.Map{"rating_type": "accuracy", "score": 4})
		if resp.StatusCode != http.StatusCreated {
			t.Errorf("expected 201, got %d", resp.StatusCode)
		}

		var body struct {
			Rated bool   `json:"rated"`
			Type  string `json:"type"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		if !body.Rated || body.Type != "new" {
			t.Errorf("expected rated=true type=new, got %+v", body)
		}

		var rating models.PostRating
		if err := db.Where("post_id = ? AND user_id = ?", post.ID, reader.ID).
			First(&rating).Error; err != nil {
			t.Fatalf("rating not persisted: %v", err)
		}
		if rating.Score != 4 {
			t.Errorf("expected score 4, got %d", rating.Score)
		}
	})

	t.Run("re-rating reports update", func(t *testing.T) {
		resp := postJSON(t, newApp(reader.ID), fmt.Sprintf("/posts/%d/ratings", post.ID),
			fiber.Map{"rating_type": "accuracy", "score": 2})
		if resp.StatusCode != http.StatusCreated {
			t.Errorf("expected 201, got %d", resp.StatusCode)
		}

		var body struct {
			Rated bool   `json:"rated"`
			Type  string `json:"type"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		if !body.Rated || body.Type != "update" {
			t.Errorf("expected rated=true type=update, got %+v", body)
		}
	})

	t.Run("missing post", func(t *testing.T) {
		resp := postJSON(t, newApp(reader.ID), "/posts/99999/ratings",
			fiber.Map{"rating_type": "accuracy", "score": 1})
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})
}

func TestSearchPosts(t *testing.T) {
	t.Parallel()
	db := setupServerDB(t)
	s := newTestServer(t, db)
	author := seedUser(t, db, "searcher")

	post := models.Post{Content: "the medieval empire endured", AuthorID: author.ID}
	db.Create(&post)
	db.Model(&post).Update("published", true)
	held := models.Post{Content: "medieval but held", AuthorID: author.ID}
	db.Create(&held)

	app := fiber.New()
	app.Get("/search", s.SearchPosts)

	req := httptest.NewRequest(http.MethodGet, "/search?q=MEDIEVAL", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Count int `json:"count"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	if body.Count != 1 {
		t.Errorf("expected only the published post, got %d", body.Count)
	}

	t.Run("missing keyword", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/search", nil)
		resp, _ := app.Test(req, -1)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}
