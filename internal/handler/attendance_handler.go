package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/dto"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/service"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/utils"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/view"
)

// AttendanceHandler serves the attendance summary fragment and record entry.
type AttendanceHandler struct {
	service service.AttendanceService
	logger  zerolog.Logger
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(service service.AttendanceService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register attaches attendance routes to the router group.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Get("/student/:id", h.summary)
	router.Post("", h.create)
}

func (h *AttendanceHandler) summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendHTML(c, fiber.StatusNotFound, view.ErrorMessage("生徒が見つかりません"))
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to summarize attendance")
		return utils.SendHTML(c, fiber.StatusInternalServerError, view.ErrorMessage("出席状況の取得に失敗しました"))
	}

	return utils.SendHTML(c, fiber.StatusOK, view.AttendanceSummary(summary))
}

func (h *AttendanceHandler) create(c *fiber.Ctx) error {
	var req dto.AttendanceCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendHTML(c, fiber.StatusBadRequest, view.ErrorMessage("入力内容が不正です"))
	}

	record, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendHTML(c, fiber.StatusNotFound, view.ErrorMessage("生徒が見つかりません"))
		case isValidationError(err):
			return utils.SendHTML(c, fiber.StatusBadRequest, view.ErrorMessage("入力内容が不正です"))
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to record attendance")
			return utils.SendHTML(c, fiber.StatusInternalServerError, view.ErrorMessage("出席の記録に失敗しました"))
		}
	}

	return utils.SendHTML(c, fiber.StatusCreated, view.Message("出席を記録しました（"+record.Date+" "+record.Status+"）"))
}
