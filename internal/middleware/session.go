package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/service"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/view"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "admin_session"

// RequireAdmin guards fragment endpoints: the cookie token must resolve to a
// live session. Failures render a message fragment with 401; they never leak
// internals.
func RequireAdmin(sessions service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		sessionID, err := sessions.Validate(c.UserContext(), token)
		if err != nil {
			c.Type("html", "utf-8")
			return c.Status(fiber.StatusUnauthorized).SendString(view.ErrorMessage("認証が必要です"))
		}

		c.Locals("session_id", sessionID)
		return c.Next()
	}
}

// RequireAdminPage guards page routes, redirecting to the login page instead
// of rendering an error fragment.
func RequireAdminPage(sessions service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		sessionID, err := sessions.Validate(c.UserContext(), token)
		if err != nil {
			return c.Redirect("/login")
		}

		c.Locals("session_id", sessionID)
		return c.Next()
	}
}

// SessionIDFromContext returns the session identifier set by the guards.
func SessionIDFromContext(c *fiber.Ctx) string {
	if value := c.Locals("session_id"); value != nil {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
