package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cvstudio/internal/config"
	"cvstudio/internal/database"
	"cvstudio/internal/storage"
)

// extensionByContentType is also the upload whitelist; anything else is
// rejected before the virus scan.
var extensionByContentType = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

// assetObjectStore is the slice of the storage client the asset handler
// needs; tests substitute a fake.
type assetObjectStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

// AssetHandler handles photo uploads and access. Every upload is scanned by
// clamd before it reaches object storage.
type AssetHandler struct {
	db          *gorm.DB
	storage     assetObjectStore
	redisClient redis.UniversalClient
	logger      *slog.Logger
	clamdAddr   string
	limits      config.AssetConfig
}

func NewAssetHandler(
	db *gorm.DB,
	storageClient *storage.Client,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
	clamdAddr string,
	limits config.AssetConfig,
) *AssetHandler {
	return &AssetHandler{
		db:          db,
		storage:     storageClient,
		redisClient: redisClient,
		logger:      logger,
		clamdAddr:   clamdAddr,
		limits:      limits,
	}
}

// UploadAsset stores a user photo after MIME, quota and malware checks.
func (h *AssetHandler) UploadAsset(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}

	if h.limits.MaxBytes > 0 && file.Size > h.limits.MaxBytes {
		BadRequest(c, "file too large")
		return
	}

	contentType := file.Header.Get("Content-Type")
	ext, allowed := extensionByContentType[contentType]
	if !allowed {
		BadRequest(c, "unsupported image type")
		return
	}

	ctx := c.Request.Context()

	if h.limits.MaxPerUser > 0 {
		var count int64
		if err := h.db.WithContext(ctx).
			Model(&database.Asset{}).
			Where("user_id = ?", userID).
			Count(&count).Error; err != nil {
			Internal(c, "failed to count assets")
			return
		}
		if count >= int64(h.limits.MaxPerUser) {
			Forbidden(c, "asset limit reached")
			return
		}
	}

	if h.limits.MaxUploadsPerDay > 0 {
		dayKey := fmt.Sprintf("rate:asset_upload:%d:%s", userID, time.Now().UTC().Format("20060102"))
		uploads, err := incrWithTTL(ctx, h.redisClient, dayKey, 24*time.Hour)
		if err == nil && uploads > int64(h.limits.MaxUploadsPerDay) {
			TooManyRequests(c, "daily upload limit reached")
			return
		}
	}

	if err := h.scanUpload(c, file); err != nil {
		return // response already written
	}

	fileReader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return
	}
	defer fileReader.Close()

	objectKey := fmt.Sprintf("user-assets/%d/%s.%s", userID, uuid.NewString(), ext)

	if _, err := h.storage.UploadFile(ctx, objectKey, fileReader, file.Size, contentType); err != nil {
		h.logger.Error("upload file", slog.String("error", err.Error()))
		Internal(c, "failed to upload file")
		return
	}

	record := database.Asset{
		ObjectKey:   objectKey,
		ContentType: contentType,
		SizeBytes:   file.Size,
		UserID:      userID,
	}
	if err := h.db.WithContext(ctx).Create(&record).Error; err != nil {
		// The object is already stored; remove it rather than leave an
		// orphan the quota never sees.
		_ = h.storage.DeleteObject(ctx, objectKey)
		Internal(c, "failed to record asset")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"objectKey": objectKey})
}

// scanUpload streams the file through clamd. It writes the error response
// itself and reports failure via a non-nil error.
func (h *AssetHandler) scanUpload(c *gin.Context, file *multipart.FileHeader) error {
	if h.clamdAddr == "" {
		return nil
	}

	clamdClient := clamd.NewClamd(h.clamdAddr)

	fileReader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return err
	}

	abortChan := make(chan bool)
	scanChan, err := clamdClient.ScanStream(fileReader, abortChan)
	fileReader.Close()
	if err != nil {
		h.logger.Error("scan file", slog.String("error", err.Error()))
		Internal(c, "failed to scan file")
		return err
	}
	defer close(abortChan)

	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			BadRequest(c, "malicious file detected")
			return fmt.Errorf("malware detected: %s", result.Description)
		}
	}
	return nil
}

// ListAssets lists the user's uploaded photos with short-lived preview URLs.
func (h *AssetHandler) ListAssets(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	var records []database.Asset
	if err := h.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		Internal(c, "failed to list assets")
		return
	}

	items := make([]gin.H, 0, len(records))
	for _, a := range records {
		url, err := h.storage.GeneratePresignedURL(ctx, a.ObjectKey, 10*time.Minute)
		if err != nil {
			h.logger.Error("generate asset url", slog.String("objectKey", a.ObjectKey), slog.String("error", err.Error()))
			continue
		}
		items = append(items, gin.H{
			"objectKey":  a.ObjectKey,
			"previewUrl": url,
			"size":       a.SizeBytes,
			"uploadedAt": a.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetAssetURL returns a temporary presigned URL for one of the user's assets.
func (h *AssetHandler) GetAssetURL(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	objectKey := c.Query("key")
	if objectKey == "" {
		BadRequest(c, "missing key")
		return
	}

	if !storage.ValidUserAssetKey(userID, objectKey) {
		Forbidden(c, "access denied")
		return
	}

	signedURL, err := h.storage.GeneratePresignedURL(c.Request.Context(), objectKey, 15*time.Minute)
	if err != nil {
		h.logger.Error("generate presigned url", slog.String("error", err.Error()))
		Internal(c, "failed to generate url")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL})
}

// DeleteAsset removes one asset from storage and the database.
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	objectKey := c.Query("key")
	if !storage.ValidUserAssetKey(userID, objectKey) {
		Forbidden(c, "access denied")
		return
	}

	ctx := c.Request.Context()
	if err := h.storage.DeleteObject(ctx, objectKey); err != nil {
		h.logger.Error("delete asset object", slog.String("objectKey", objectKey), slog.String("error", err.Error()))
		Internal(c, "failed to delete asset")
		return
	}

	if err := h.db.WithContext(ctx).
		Where("user_id = ? AND object_key = ?", userID, objectKey).
		Delete(&database.Asset{}).Error; err != nil {
		Internal(c, "failed to delete asset record")
		return
	}

	c.Status(http.StatusNoContent)
}
