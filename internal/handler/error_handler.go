package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/utils"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/view"
)

// ErrorHandler converts errors that escape a route into the response shape
// its surface expects: JSON under /api, a rendered message fragment elsewhere.
func ErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	errorLogger := logger.With().Str("component", "error_handler").Logger()

	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		if code >= fiber.StatusInternalServerError {
			errorLogger.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("unhandled request error")
		}

		if strings.HasPrefix(c.Path(), "/api/") {
			return utils.SendError(c, code, err.Error())
		}

		return utils.SendHTML(c, code, view.ErrorMessage("エラーが発生しました"))
	}
}
