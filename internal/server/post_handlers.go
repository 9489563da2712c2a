package server

import (
	"inkwell/internal/editor"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts?q=...&category=...
// Posts come back newest first; filtering happens in memory over the
// full list.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.Context()

	q := c.Query("q")
	category, ok := parseCategoryFilter(c)
	if !ok {
		return nil
	}

	posts, err := s.postService.ListPosts(ctx)
	if err != nil {
		observability.PostOperations.WithLabelValues("list", "error").Inc()
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	observability.PostOperations.WithLabelValues("list", "success").Inc()

	return c.JSON(editor.Filter(posts, q, category))
}

// GetCategoryCounts handles GET /api/posts/categories
func (s *Server) GetCategoryCounts(c *fiber.Ctx) error {
	counts, err := s.postService.CategoryCounts(c.Context())
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return c.JSON(counts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, ok := parsePostID(c)
	if !ok {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return c.JSON(post)
}

// GetPostBySlug handles GET /api/posts/slug/:slug
func (s *Server) GetPostBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Slug is required"))
	}

	post, err := s.postService.GetPostBySlug(c.Context(), slug)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title    string          `json:"title"`
		Slug     string          `json:"slug"`
		Excerpt  string          `json:"excerpt"`
		Content  string          `json:"content"`
		Category models.Category `json:"category"`
		ReadTime int             `json:"read_time"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		Title:    req.Title,
		Slug:     req.Slug,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Category: req.Category,
		ReadTime: req.ReadTime,
	})
	if err != nil {
		observability.PostOperations.WithLabelValues("create", "error").Inc()
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	observability.PostOperations.WithLabelValues("create", "success").Inc()

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id with partial update semantics:
// absent fields keep their stored values.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, ok := parsePostID(c)
	if !ok {
		return nil
	}

	var req struct {
		Title    *string          `json:"title"`
		Slug     *string          `json:"slug"`
		Excerpt  *string          `json:"excerpt"`
		Content  *string          `json:"content"`
		Category *models.Category `json:"category"`
		ReadTime *int             `json:"read_time"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), id, service.UpdatePostInput{
		Title:    req.Title,
		Slug:     req.Slug,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Category: req.Category,
		ReadTime: req.ReadTime,
	})
	if err != nil {
		observability.PostOperations.WithLabelValues("update", "error").Inc()
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	observability.PostOperations.WithLabelValues("update", "success").Inc()

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id. A delete is permanent;
// clients are expected to confirm intent before calling.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, ok := parsePostID(c)
	if !ok {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), id); err != nil {
		observability.PostOperations.WithLabelValues("delete", "error").Inc()
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	observability.PostOperations.WithLabelValues("delete", "success").Inc()

	return c.SendStatus(fiber.StatusNoContent)
}
