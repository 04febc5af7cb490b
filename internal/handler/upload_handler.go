package handler

import (
	"errors"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/middleware"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/service"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/utils"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/view"
)

// Uploads are small roster CSVs; anything larger is rejected outright.
const maxUploadBytes = 5 << 20

// UploadHandler drives the CSV import flow: upload and preview, confirm,
// cancel, and the template download.
type UploadHandler struct {
	imports service.ImportService
	logger  zerolog.Logger
}

// NewUploadHandler constructs the handler.
func NewUploadHandler(imports service.ImportService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		imports: imports,
		logger:  logger.With().Str("component", "upload_handler").Logger(),
	}
}

// Register attaches upload routes to the router group.
func (h *UploadHandler) Register(router fiber.Router) {
	router.Post("/csv", h.preview)
	router.Get("/preview/:key", h.showPreview)
	router.Post("/save", h.save)
	router.Post("/cancel", h.cancel)
	router.Get("/history", h.history)
	router.Get("/template", h.template)
}

func (h *UploadHandler) preview(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.SendHTML(c, fiber.StatusBadRequest, view.ErrorMessage("CSVファイルを選択してください"))
	}
	if fileHeader.Size > maxUploadBytes {
		return utils.SendHTML(c, fiber.StatusRequestEntityTooLarge, view.ErrorMessage("ファイルが大きすぎます"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to open upload")
		return utils.SendHTML(c, fiber.StatusInternalServerError, view.ErrorMessage("ファイルの読み込みに失敗しました"))
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to read upload")
		return utils.SendHTML(c, fiber.StatusInternalServerError, view.ErrorMessage("ファイルの読み込みに失敗しました"))
	}

	detected := mimetype.Detect(data)
	if !detected.Is("text/csv") && !detected.Is("text/plain") {
		return utils.SendHTML(c, fiber.StatusBadRequest, view.ErrorMessage("CSVファイルのみアップロードできます"))
	}

	sessionID := middleware.SessionIDFromContext(c)
	key, batch, err := h.imports.Prepare(c.UserContext(), sessionID, string(data))
	if err != nil {
		if errors.Is(err, service.ErrNoStudentRows) {
			return utils.SendHTML(c, fiber.StatusBadRequest, view.ErrorMessage("生徒データが見つかりません。テンプレートの形式を確認してください"))
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to prepare import batch")
		return utils.SendHTML(c, fiber.StatusInternalServerError, view.ErrorMessage("CSVの解析に失敗しました"))
	}

	return utils.SendHTML(c, fiber.StatusOK, view.ImportPreview(key, batch))
}

// showPreview re-renders a still-cached batch, so a reloaded upload page can
// restore its pending preview without re-uploading.
func (h *UploadHandler) showPreview(c *fiber.Ctx) error {
	key := c.Params("key")

	sessionID := middleware.SessionIDFromContext(c)
	batch, err := h.imports.Peek(c.UserContext(), sessionID, key)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPreviewNotFound):
			return utils.SendHTML(c, fiber.StatusGone, view.ErrorMessage("プレビューの有効期限が切れました。もう一度アップロードしてください"))
		case errors.Is(err, service.ErrPreviewForeignSession):
			return utils.SendHTML(c, fiber.StatusForbidden, view.ErrorMessage("このアップロードを表示する権限がありません"))
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to load import batch")
			return utils.SendHTML(c, fiber.StatusInternalServerError, view.ErrorMessage("プレビューの取得に失敗しました"))
		}
	}

	return utils.SendHTML(c, fiber.StatusOK, view.ImportPreview(key, batch))
}

func (h *UploadHandler) save(c *fiber.Ctx) error {
	key := c.FormValue("upload_key")
	if key == "" {
		return utils.SendHTML(c, fiber.StatusBadRequest, view.ErrorMessage("アップロード情報が見つかりません"))
	}

	sessionID := middleware.SessionIDFromContext(c)
	result, err := h.imports.Commit(c.UserContext(), sessionID, key)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPreviewNotFound):
			return utils.SendHTML(c, fiber.StatusGone, view.ErrorMessage("プレビューの有効期限が切れました。もう一度アップロードしてください"))
		case errors.Is(err, service.ErrPreviewForeignSession):
			return utils.SendHTML(c, fiber.StatusForbidden, view.ErrorMessage("このアップロードを保存する権限がありません"))
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to commit import batch")
			return utils.SendHTML(c, fiber.StatusInternalServerError, view.ErrorMessage("インポートに失敗しました"))
		}
	}

	return utils.SendHTML(c, fiber.StatusOK, view.ImportResult(result))
}

func (h *UploadHandler) cancel(c *fiber.Ctx) error {
	key := c.FormValue("upload_key")
	if key == "" {
		return utils.SendHTML(c, fiber.StatusBadRequest, view.ErrorMessage("アップロード情報が見つかりません"))
	}

	sessionID := middleware.SessionIDFromContext(c)
	if err := h.imports.Cancel(c.UserContext(), sessionID, key); err != nil {
		switch {
		case errors.Is(err, service.ErrPreviewNotFound):
			return utils.SendHTML(c, fiber.StatusGone, view.ErrorMessage("プレビューは既に破棄されています"))
		case errors.Is(err, service.ErrPreviewForeignSession):
			return utils.SendHTML(c, fiber.StatusForbidden, view.ErrorMessage("このアップロードを取り消す権限がありません"))
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to cancel import batch")
			return utils.SendHTML(c, fiber.StatusInternalServerError, view.ErrorMessage("取り消しに失敗しました"))
		}
	}

	return utils.SendHTML(c, fiber.StatusOK, view.Message("アップロードを取り消しました"))
}

func (h *UploadHandler) history(c *fiber.Ctx) error {
	entries, err := h.imports.History(c.UserContext(), 20)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list import history")
		return utils.SendHTML(c, fiber.StatusInternalServerError, view.ErrorMessage("インポート履歴の取得に失敗しました"))
	}

	return utils.SendHTML(c, fiber.StatusOK, view.ImportHistory(entries))
}

func (h *UploadHandler) template(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="import_template.csv"`)
	return c.Send(service.CSVTemplate())
}
