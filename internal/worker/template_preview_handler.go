package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"cvstudio/internal/customize"
	"cvstudio/internal/pdf"
	"cvstudio/internal/render"
	"cvstudio/internal/storage"
	"cvstudio/internal/tasks"
)

// TemplatePreviewHandler regenerates catalog thumbnails. Each template is
// rendered with fixture CV content, screenshotted and published for the
// catalog endpoints to pick up.
type TemplatePreviewHandler struct {
	storage     *storage.Client
	redisClient redis.UniversalClient
	logger      *slog.Logger
}

func NewTemplatePreviewHandler(
	storageClient *storage.Client,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
) *TemplatePreviewHandler {
	return &TemplatePreviewHandler{
		storage:     storageClient,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (h *TemplatePreviewHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	log := h.logger

	var payload tasks.TemplatePreviewPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal template preview payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("template_id", payload.TemplateID),
		slog.String("correlation_id", payload.CorrelationID),
	)
	log.Info("Starting template preview generation task...")

	templateID := render.TemplateID(payload.TemplateID)
	meta, ok := render.Get(templateID)
	if !ok {
		log.Warn("unknown template, skipping task")
		return nil
	}

	c := customize.Default()
	c.PrimaryColor = meta.DefaultColors[0]
	c.AccentColor = meta.DefaultColors[1]

	html, err := render.Render(templateID, sampleCVData(), c, render.LocaleEN)
	if err != nil {
		log.Error("render template sample failed", slog.Any("error", err))
		return err
	}

	session, err := pdf.NewSession(html)
	if err != nil {
		log.Error("open preview session failed", slog.Any("error", err))
		return err
	}
	defer session.Close()

	const previewQuality = 80
	previewBytes, err := session.Screenshot(previewQuality)
	if err != nil {
		log.Error("capture template screenshot failed", slog.Any("error", err))
		return err
	}

	objectName := fmt.Sprintf("thumbnails/template/%s/preview.jpg", payload.TemplateID)
	if _, err := h.storage.UploadFile(ctx, objectName, bytes.NewReader(previewBytes), int64(len(previewBytes)), "image/jpeg"); err != nil {
		log.Error("upload template preview failed", slog.Any("error", err))
		return err
	}

	const presignTTL = 7 * 24 * time.Hour
	url, err := h.storage.GeneratePresignedURL(ctx, objectName, presignTTL)
	if err != nil {
		log.Error("generate template preview url failed", slog.Any("error", err))
		return err
	}

	// The catalog handler serves this key; expire slightly before the
	// presigned URL so clients never receive a dead link.
	cacheKey := "template_preview:" + payload.TemplateID
	if err := h.redisClient.Set(ctx, cacheKey, url, presignTTL-time.Hour).Err(); err != nil {
		log.Error("store template preview url failed", slog.Any("error", err))
		return err
	}

	log.Info("Template preview generation completed.")
	return nil
}
