package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/service"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/utils"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/view"
)

// ClassHandler serves the class listing and per-class roster fragments.
type ClassHandler struct {
	service service.ClassService
	logger  zerolog.Logger
}

// NewClassHandler constructs the handler.
func NewClassHandler(service service.ClassService, logger zerolog.Logger) *ClassHandler {
	return &ClassHandler{
		service: service,
		logger:  logger.With().Str("component", "class_handler").Logger(),
	}
}

// Register attaches class routes to the router group.
func (h *ClassHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id/students", h.students)
}

func (h *ClassHandler) list(c *fiber.Ctx) error {
	classes, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list classes")
		return utils.SendHTML(c, fiber.StatusInternalServerError, view.ErrorMessage("講座一覧の取得に失敗しました"))
	}

	return utils.SendHTML(c, fiber.StatusOK, view.ClassList(classes))
}

func (h *ClassHandler) students(c *fiber.Ctx) error {
	students, err := h.service.Students(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return utils.SendHTML(c, fiber.StatusNotFound, view.ErrorMessage("講座が見つかりません"))
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list class students")
		return utils.SendHTML(c, fiber.StatusInternalServerError, view.ErrorMessage("生徒一覧の取得に失敗しました"))
	}

	return utils.SendHTML(c, fiber.StatusOK, view.ClassStudentOptions(students))
}
