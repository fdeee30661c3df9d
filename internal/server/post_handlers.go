package server

import (
	"fameboard/internal/models"
	"fameboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitPost handles POST /api/posts
//
// The response carries the gate outcome: the post, its classification
// results, the final published flag and a force_logout signal that is true
// when this submission banned the author.
func (s *Server) SubmitPost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Content     string `json:"content"`
		CitesID     *uint  `json:"cites_id"`
		RepliesToID *uint  `json:"replies_to_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	out, err := s.postService.SubmitPost(c.Context(), service.SubmitPostInput{
		AuthorID:    userID,
		Content:     req.Content,
		CitesID:     req.CitesID,
		RepliesToID: req.RepliesToID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":              out.Post.ID,
		"published":       out.Published,
		"classifications": out.Classifications,
		"force_logout":    out.ForceLogout,
	})
}

// GetPost handles GET /api/posts/:postId
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Held posts are only visible to their author.
	userID := c.Locals("userID").(uint)
	if !post.Published && post.AuthorID != userID {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", postID))
	}

	return c.JSON(post)
}

// GetTimeline handles GET /api/timeline
//
// Query parameters: start, end (inclusive window), published (default true),
// community (default false).
func (s *Server) GetTimeline(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	posts, err := s.postService.Timeline(c.Context(), service.TimelineInput{
		ViewerID:      userID,
		Window:        parseWindow(c),
		PublishedOnly: c.QueryBool("published", true),
		CommunityMode: c.QueryBool("community", false),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": posts,
		"count": len(posts),
	})
}

// SearchPosts handles GET /api/search
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	keyword := c.Query("q")

	posts, err := s.postService.Search(c.Context(), service.SearchInput{
		Keyword:       keyword,
		Window:        parseWindow(c),
		PublishedOnly: c.QueryBool("published", true),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": posts,
		"count": len(posts),
	})
}

// RatePost handles POST /api/posts/:postId/ratings
func (s *Server) RatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		RatingType string `json:"rating_type"`
		Score      int    `json:"score"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.postService.RatePost(c.Context(), service.RatePostInput{
		UserID:     userID,
		PostID:     postID,
		RatingType: req.RatingType,
		Score:      req.Score,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	kind := "update"
	if result.Created {
		kind = "new"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"rated":  true,
		"type":   kind,
		"rating": result.Rating,
	})
}
