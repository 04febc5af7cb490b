package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/middleware"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/service"
)

// Admin dashboard tabs and the partial each one hosts.
var adminTabs = map[string]string{
	"dashboard": "tabs/dashboard",
	"grades":    "tabs/grades",
	"students":  "tabs/students",
	"classes":   "tabs/classes",
	"upload":    "tabs/upload",
	"reports":   "tabs/reports",
}

// PageHandler renders the page shells hosting the fragment UI.
type PageHandler struct {
	sessions service.SessionService
	logger   zerolog.Logger
}

// NewPageHandler constructs the handler.
func NewPageHandler(sessions service.SessionService, logger zerolog.Logger) *PageHandler {
	return &PageHandler{
		sessions: sessions,
		logger:   logger.With().Str("component", "page_handler").Logger(),
	}
}

// Register attaches page routes. Guarded pages go through the page guard so
// unauthenticated visitors land on the login form.
func (h *PageHandler) Register(app *fiber.App, guard fiber.Handler) {
	app.Get("/", h.root)
	app.Get("/login", h.login)
	app.Get("/admin", guard, h.admin)
	app.Get("/admin/tabs/:tab", guard, h.adminTab)
	app.Get("/dashboard/:studentID", guard, h.dashboard)
	app.Get("/upload", guard, h.upload)
}

func (h *PageHandler) root(c *fiber.Ctx) error {
	token := c.Cookies(middleware.SessionCookieName)
	if _, err := h.sessions.Validate(c.UserContext(), token); err != nil {
		return c.Redirect("/login")
	}
	return c.Redirect("/admin")
}

func (h *PageHandler) login(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Error": c.Query("error") != "",
	})
}

func (h *PageHandler) admin(c *fiber.Ctx) error {
	return c.Render("admin", fiber.Map{})
}

func (h *PageHandler) adminTab(c *fiber.Ctx) error {
	template, ok := adminTabs[c.Params("tab")]
	if !ok {
		template = adminTabs["dashboard"]
	}
	return c.Render(template, fiber.Map{})
}

func (h *PageHandler) dashboard(c *fiber.Ctx) error {
	return c.Render("dashboard", fiber.Map{
		"StudentID": c.Params("studentID"),
	})
}

func (h *PageHandler) upload(c *fiber.Ctx) error {
	return c.Render("upload", fiber.Map{})
}
