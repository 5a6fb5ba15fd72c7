package server

import (
	"errors"

	"microblog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts the :id route parameter as a positive uint, naming the
// entity in the error message. On failure it writes a 400 JSON response and
// returns errResponseWritten. Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, entity string) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+entity+" ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondServiceError maps an AppError code to its HTTP status and writes the
// standardized error body.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case "VALIDATION_ERROR":
		status = fiber.StatusBadRequest
	case "NOT_FOUND":
		status = fiber.StatusNotFound
	case "UNAUTHORIZED":
		status = fiber.StatusUnauthorized
	case "FORBIDDEN":
		status = fiber.StatusForbidden
	}
	return models.RespondWithError(c, status, appErr)
}
