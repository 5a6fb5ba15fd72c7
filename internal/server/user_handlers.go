package server

import (
	"microblog/internal/models"
	"microblog/internal/service"
	"microblog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	users, err := s.userRepo.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"users":  users,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetUser handles GET /api/users/:id — public profile with recent statuses.
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "user")
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByIDWithStatuses(c.Context(), id, 10)
	if err != nil {
		return respondServiceError(c, err)
	}

	followers, followings, err := s.followService.Counts(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":            user,
		"gravatar":        user.Gravatar(100),
		"follower_count":  followers,
		"following_count": followings,
	})
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name                 string `json:"name"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Password != "" {
		if err := validation.ValidatePassword(req.Password, req.PasswordConfirmation); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}

	user, err := s.accountService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		ActorID:  userID,
		UserID:   userID,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id
//
// Owners may delete their own account; admins may delete anyone. Deletion
// cascades over follow edges and statuses so no feed ever references the
// removed account.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "user")
	if err != nil {
		return nil
	}

	if err := s.accountService.Delete(c.Context(), actorID, targetID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
