// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"inkwell/internal/models"
)

// parsePostID extracts and validates the post id route parameter. On
// failure it writes a 400 JSON response and returns false; callers
// should then return nil so Fiber's ErrorHandler does not overwrite the
// response.
func parsePostID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
		return "", false
	}
	return id, true
}

// parseCategoryFilter reads the category query parameter. An absent or
// "All" value means no category filtering.
func parseCategoryFilter(c *fiber.Ctx) (models.Category, bool) {
	raw := c.Query("category", string(models.CategoryAll))
	category := models.Category(raw)
	if category != models.CategoryAll && !category.Valid() {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Category must be one of: All, Web Design, Technology, History, Personal Life"))
		return "", false
	}
	return category, true
}
