package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cvstudio/internal/database"
	"cvstudio/internal/errcode"
	"cvstudio/internal/pdf"
	"cvstudio/internal/storage"
	"cvstudio/internal/tasks"
)

// ExportTaskHandler consumes PDF export tasks: it pulls the rendered page
// from the API, prints it and publishes the result.
type ExportTaskHandler struct {
	db                 *gorm.DB
	storage            *storage.Client
	redisClient        redis.UniversalClient
	logger             *slog.Logger
	internalSecret     string
	internalAPIBaseURL string
	defaultLocale      string
}

func NewExportTaskHandler(
	db *gorm.DB,
	storageClient *storage.Client,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
	internalSecret string,
	internalAPIBaseURL string,
	defaultLocale string,
) *ExportTaskHandler {
	return &ExportTaskHandler{
		db:                 db,
		storage:            storageClient,
		redisClient:        redisClient,
		logger:             logger,
		internalSecret:     internalSecret,
		internalAPIBaseURL: strings.TrimRight(strings.TrimSpace(internalAPIBaseURL), "/"),
		defaultLocale:      defaultLocale,
	}
}

// ProcessTask implements asynq.Handler.
func (h *ExportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.PDFExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("cv_id", int(payload.CVID)),
	)
	log.Info("Starting PDF export task...")

	var record database.CV
	if err := h.db.WithContext(ctx).First(&record, payload.CVID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("cv not found, skipping task")
			return nil
		}
		log.Error("query cv failed", slog.Any("error", err))
		return err
	}

	log = log.With(slog.Uint64("user_id", uint64(record.UserID)))

	// Users only learn about a failure once retries are exhausted;
	// intermediate attempts stay silent.
	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		if err := h.db.WithContext(ctx).
			Model(&record).
			Update("status", database.StatusExportFail).Error; err != nil {
			log.Error("mark cv export failed", slog.Any("error", err))
		}

		notify := ExportNotifyMessage{
			Status:        "error",
			CVID:          record.ID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publishExportNotify(ctx, record.UserID, notify); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
	}()

	html, err := fetchPrintHTML(ctx, h.internalAPIBaseURL, record.ID, h.defaultLocale, h.internalSecret, payload.CorrelationID)
	if err != nil {
		log.Error("fetch print html failed", slog.Any("error", err))
		return err
	}

	session, err := pdf.NewSession(html)
	if err != nil {
		log.Error("open print session failed", slog.Any("error", err))
		return err
	}
	defer session.Close()

	pdfBytes, err := session.PDF()
	if err != nil {
		log.Error("print pdf failed", slog.Any("error", err))
		return err
	}

	objectName := fmt.Sprintf("generated-cvs/%d/%s.pdf", record.UserID, uuid.NewString())
	pdfReader := bytes.NewReader(pdfBytes)
	if _, err := h.storage.UploadFile(ctx, objectName, pdfReader, int64(len(pdfBytes)), "application/pdf"); err != nil {
		log.Error("upload pdf failed", slog.Any("error", err))
		return err
	}

	update := map[string]any{
		"pdf_url": objectName,
		"status":  database.StatusExported,
	}
	if err := h.db.WithContext(ctx).Model(&record).Updates(update).Error; err != nil {
		log.Error("update cv failed", slog.Any("error", err))
		return err
	}

	notify := ExportNotifyMessage{
		Status:        "completed",
		CVID:          record.ID,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
	}
	if err := h.publishExportNotify(ctx, record.UserID, notify); err != nil {
		log.Error("publish export notification failed", slog.Any("error", err))
		return err
	}

	// The thumbnail is cosmetic; a failure here never fails the export.
	if err := h.generatePreviewImage(ctx, &record, session); err != nil {
		log.Warn("generate cv preview failed", slog.Any("error", err))
	}

	log.Info("PDF export task completed successfully.")
	return nil
}

func (h *ExportTaskHandler) publishExportNotify(ctx context.Context, userID uint, notify ExportNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := fmt.Sprintf("user_notify:%d", userID)
	if err := h.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}

func (h *ExportTaskHandler) generatePreviewImage(ctx context.Context, record *database.CV, session *pdf.Session) error {
	const (
		previewQuality = 80
		presignTTL     = 7 * 24 * time.Hour
	)

	previewBytes, err := session.Screenshot(previewQuality)
	if err != nil {
		return fmt.Errorf("capture preview screenshot: %w", err)
	}

	objectName := fmt.Sprintf("thumbnails/cv/%d/preview.jpg", record.ID)
	reader := bytes.NewReader(previewBytes)
	if _, err := h.storage.UploadFile(ctx, objectName, reader, int64(len(previewBytes)), "image/jpeg"); err != nil {
		return fmt.Errorf("upload preview image: %w", err)
	}

	presignedURL, err := h.storage.GeneratePresignedURL(ctx, objectName, presignTTL)
	if err != nil {
		return fmt.Errorf("generate preview presigned url: %w", err)
	}

	if err := h.db.WithContext(ctx).
		Model(record).
		Update("preview_image_url", presignedURL).Error; err != nil {
		return fmt.Errorf("update cv preview url: %w", err)
	}

	return nil
}
