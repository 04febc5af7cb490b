package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/middleware"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/service"
)

// AuthHandler wires the admin login and logout endpoints.
type AuthHandler struct {
	sessions service.SessionService
	logger   zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(sessions service.SessionService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		logger:   logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches auth routes to the router group.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
	router.Post("/logout", h.logout)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	password := c.FormValue("password")

	token, err := h.sessions.Login(c.UserContext(), password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			return c.Redirect("/login?error=1")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("login failed")
		return c.Redirect("/login?error=1")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(h.sessions.TTL()),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect("/admin")
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	token := c.Cookies(middleware.SessionCookieName)
	if err := h.sessions.Logout(c.UserContext(), token); err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("logout cleanup failed")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.Redirect("/login")
}
