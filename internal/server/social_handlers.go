package server

import (
	"errors"

	"fameboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:userId/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	followed, err := s.socialService.Follow(c.Context(), userID, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"followed": followed})
}

// UnfollowUser handles DELETE /api/users/:userId/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	unfollowed, err := s.socialService.Unfollow(c.Context(), userID, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"unfollowed": unfollowed})
}

// GetFollowing handles GET /api/users/me/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	users, err := s.socialService.Following(c.Context(), userID, parseWindow(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": users,
		"count": len(users),
	})
}

// GetFollowers handles GET /api/users/me/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	users, err := s.socialService.Followers(c.Context(), userID, parseWindow(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": users,
		"count": len(users),
	})
}

// JoinCommunity handles POST /api/communities/:areaId/join
func (s *Server) JoinCommunity(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	areaID, err := s.parseID(c, "areaId")
	if err != nil {
		return nil
	}

	joined, err := s.socialService.JoinCommunity(c.Context(), userID, areaID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"joined": joined})
}

// LeaveCommunity handles POST /api/communities/:areaId/leave
func (s *Server) LeaveCommunity(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	areaID, err := s.parseID(c, "areaId")
	if err != nil {
		return nil
	}

	left, err := s.socialService.LeaveCommunity(c.Context(), userID, areaID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"left": left})
}

// GetMyCommunities handles GET /api/users/me/communities
func (s *Server) GetMyCommunities(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	areas, err := s.socialService.Communities(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"communities": areas,
		"count":       len(areas),
	})
}

// GetAreas handles GET /api/areas
func (s *Server) GetAreas(c *fiber.Ctx) error {
	areas, err := s.socialService.ListAreas(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"areas": areas,
		"count": len(areas),
	})
}

// GetFeatureFlags handles GET /api/admin/feature-flags
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if s.featureFlags == nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(errors.New("feature flags not initialized")))
	}

	return c.JSON(fiber.Map{
		"raw":      s.featureFlags.Raw(),
		"resolved": s.featureFlags.Snapshot(userID),
	})
}
