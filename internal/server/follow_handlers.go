package server

import (
	"github.com/gofiber/fiber/v2"
)

// followTargets merges the route parameter with any additional target IDs in
// the request body, dropping duplicates.
func followTargets(c *fiber.Ctx, primary uint) []uint {
	var req struct {
		UserIDs []uint `json:"user_ids"`
	}
	// Body is optional; a bare request follows just the route target.
	_ = c.BodyParser(&req)

	seen := map[uint]struct{}{primary: {}}
	targets := []uint{primary}
	for _, id := range req.UserIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		targets = append(targets, id)
	}
	return targets
}

// FollowUser handles POST /api/users/:id/follow
//
// Following an already-followed user is a no-op, not an error. The body may
// carry {"user_ids": [...]} to follow several users in one call.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	followerID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "user")
	if err != nil {
		return nil
	}

	if followErr := s.followService.Follow(c.Context(), followerID, followTargets(c, targetID)); followErr != nil {
		return respondServiceError(c, followErr)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UnfollowUser handles DELETE /api/users/:id/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	followerID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "user")
	if err != nil {
		return nil
	}

	if unfollowErr := s.followService.Unfollow(c.Context(), followerID, followTargets(c, targetID)); unfollowErr != nil {
		return respondServiceError(c, unfollowErr)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetFollowingStatus handles GET /api/users/:id/following-status
func (s *Server) GetFollowingStatus(c *fiber.Ctx) error {
	followerID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "user")
	if err != nil {
		return nil
	}

	following, checkErr := s.followService.IsFollowing(c.Context(), followerID, targetID)
	if checkErr != nil {
		return respondServiceError(c, checkErr)
	}

	return c.JSON(fiber.Map{
		"following": following,
	})
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "user")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	users, listErr := s.followService.Followers(c.Context(), userID, p.Limit, p.Offset)
	if listErr != nil {
		return respondServiceError(c, listErr)
	}

	return c.JSON(fiber.Map{
		"users":  users,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetFollowings handles GET /api/users/:id/followings
func (s *Server) GetFollowings(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "user")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	users, listErr := s.followService.Followings(c.Context(), userID, p.Limit, p.Offset)
	if listErr != nil {
		return respondServiceError(c, listErr)
	}

	return c.JSON(fiber.Map{
		"users":  users,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}
