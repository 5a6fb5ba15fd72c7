package server

import (
	"microblog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateStatus handles POST /api/statuses
func (s *Server) CreateStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	status, err := s.statusService.Create(c.Context(), userID, req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(status)
}

// DeleteStatus handles DELETE /api/statuses/:id
func (s *Server) DeleteStatus(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	statusID, err := s.parseID(c, "status")
	if err != nil {
		return nil
	}

	if deleteErr := s.statusService.Delete(c.Context(), actorID, statusID); deleteErr != nil {
		return respondServiceError(c, deleteErr)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetFeed handles GET /api/feed
//
// The feed is one page of statuses by the viewer and everyone the viewer
// follows, newest first; limit/offset restart pagination at any point.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	viewerID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	statuses, err := s.feedService.Feed(c.Context(), viewerID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"statuses": statuses,
		"limit":    p.Limit,
		"offset":   p.Offset,
	})
}
