package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/dto"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/service"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/utils"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/view"
)

// GradeHandler serves the grade table, comparison and advice fragments.
type GradeHandler struct {
	service service.GradeService
	logger  zerolog.Logger
}

// NewGradeHandler constructs the handler.
func NewGradeHandler(service service.GradeService, logger zerolog.Logger) *GradeHandler {
	return &GradeHandler{
		service: service,
		logger:  logger.With().Str("component", "grade_handler").Logger(),
	}
}

// Register attaches grade routes to the router group.
func (h *GradeHandler) Register(router fiber.Router) {
	router.Get("/student/:id", h.studentGrades)
	router.Get("/comparison/:id", h.comparison)
	router.Get("/advice/:id", h.advice)
	router.Post("", h.create)
}

func (h *GradeHandler) studentGrades(c *fiber.Ctx) error {
	grades, err := h.service.ListByStudent(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendHTML(c, fiber.StatusNotFound, view.ErrorMessage("生徒が見つかりません"))
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list grades")
		return utils.SendHTML(c, fiber.StatusInternalServerError, view.ErrorMessage("成績の取得に失敗しました"))
	}

	return utils.SendHTML(c, fiber.StatusOK, view.GradeTable(grades))
}

func (h *GradeHandler) comparison(c *fiber.Ctx) error {
	comparison, err := h.service.Comparison(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendHTML(c, fiber.StatusNotFound, view.ErrorMessage("生徒が見つかりません"))
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build comparison")
		return utils.SendHTML(c, fiber.StatusInternalServerError, view.ErrorMessage("クラス平均比較の取得に失敗しました"))
	}

	return utils.SendHTML(c, fiber.StatusOK, view.Comparison(comparison))
}

func (h *GradeHandler) advice(c *fiber.Ctx) error {
	advice, err := h.service.Advice(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendHTML(c, fiber.StatusNotFound, view.ErrorMessage("生徒が見つかりません"))
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to generate advice")
		return utils.SendHTML(c, fiber.StatusInternalServerError, view.ErrorMessage("学習アドバイスの取得に失敗しました"))
	}

	return utils.SendHTML(c, fiber.StatusOK, view.Advice(advice))
}

func (h *GradeHandler) create(c *fiber.Ctx) error {
	var req dto.GradeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendHTML(c, fiber.StatusBadRequest, view.ErrorMessage("入力内容が不正です"))
	}

	grade, err := h.service.Upsert(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendHTML(c, fiber.StatusNotFound, view.ErrorMessage("生徒が見つかりません"))
		case isValidationError(err):
			return utils.SendHTML(c, fiber.StatusBadRequest, view.ErrorMessage("入力内容が不正です"))
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to save grade")
			return utils.SendHTML(c, fiber.StatusInternalServerError, view.ErrorMessage("成績の保存に失敗しました"))
		}
	}

	return utils.SendHTML(c, fiber.StatusCreated, view.Message("成績を保存しました（"+grade.Date+" 第"+strconv.Itoa(grade.LessonNumber)+"回）"))
}
