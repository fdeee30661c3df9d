package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFame handles GET /api/users/:userId/fame
func (s *Server) GetFame(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	profile, err := s.fameService.Fame(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// GetBullshitters handles GET /api/bullshitters
//
// The offender boards are public; accounts already banned still appear so
// their record stays visible.
func (s *Server) GetBullshitters(c *fiber.Ctx) error {
	boards, err := s.fameService.Bullshitters(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"bullshitters": boards})
}
