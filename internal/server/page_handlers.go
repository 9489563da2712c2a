package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetPages handles GET /api/pages and returns the full static copy.
func (s *Server) GetPages(c *fiber.Ctx) error {
	return c.JSON(s.pages)
}

// GetHomePage handles GET /api/pages/home
func (s *Server) GetHomePage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"site": s.pages.Site,
		"home": s.pages.Home,
	})
}

// GetAboutPage handles GET /api/pages/about
func (s *Server) GetAboutPage(c *fiber.Ctx) error {
	return c.JSON(s.pages.About)
}

// GetContactPage handles GET /api/pages/contact
func (s *Server) GetContactPage(c *fiber.Ctx) error {
	return c.JSON(s.pages.Contact)
}
