package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/dto"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/service"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/utils"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/view"
)

// StudentHandler serves the roster fragments and direct student entry.
type StudentHandler struct {
	service service.StudentService
	logger  zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(service service.StudentService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches student routes to the router group.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	students, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list students")
		return utils.SendHTML(c, fiber.StatusInternalServerError, view.ErrorMessage("生徒一覧の取得に失敗しました"))
	}

	return utils.SendHTML(c, fiber.StatusOK, view.StudentTable(students))
}

func (h *StudentHandler) create(c *fiber.Ctx) error {
	var req dto.StudentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendHTML(c, fiber.StatusBadRequest, view.ErrorMessage("入力内容が不正です"))
	}

	student, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		if isValidationError(err) {
			return utils.SendHTML(c, fiber.StatusBadRequest, view.ErrorMessage("入力内容が不正です"))
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create student")
		return utils.SendHTML(c, fiber.StatusInternalServerError, view.ErrorMessage("生徒の登録に失敗しました"))
	}

	return utils.SendHTML(c, fiber.StatusCreated, view.Message("生徒 "+student.Name+" を登録しました（ID: "+student.ID+"）"))
}
