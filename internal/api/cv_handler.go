package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"cvstudio/internal/api/middleware"
	"cvstudio/internal/customize"
	"cvstudio/internal/cv"
	"cvstudio/internal/database"
	"cvstudio/internal/render"
	"cvstudio/internal/storage"
	"cvstudio/internal/tasks"
)

// CVHandler serves the CV persistence surface: CRUD plus default selection,
// duplication and PDF export enqueueing.
type CVHandler struct {
	db             *gorm.DB
	asynqClient    *asynq.Client
	storage        *storage.Client
	maxCVs         int
	exportMaxRetry int
}

// NewCVHandler builds the CV handler.
func NewCVHandler(db *gorm.DB, asynqClient *asynq.Client, storageClient *storage.Client, maxCVs, exportMaxRetry int) *CVHandler {
	return &CVHandler{
		db:             db,
		asynqClient:    asynqClient,
		storage:        storageClient,
		maxCVs:         maxCVs,
		exportMaxRetry: exportMaxRetry,
	}
}

var errInvalidCVID = errors.New("invalid cv id")

type saveCVRequest struct {
	Title         string           `json:"title" binding:"required"`
	Content       cv.CVData        `json:"content"`
	TemplateID    string           `json:"template_id" binding:"required"`
	Customization *customize.Patch `json:"customization"`
}

type updateCVRequest struct {
	Title         *string          `json:"title"`
	Content       *cv.CVData       `json:"content"`
	TemplateID    *string          `json:"template_id"`
	Customization *customize.Patch `json:"customization"`
}

type cvListItem struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	TemplateID      string    `json:"template_id"`
	IsDefault       bool      `json:"is_default"`
	Status          string    `json:"status"`
	PreviewImageURL string    `json:"preview_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type cvResponse struct {
	ID              uint           `json:"id"`
	Title           string         `json:"title"`
	Content         datatypes.JSON `json:"content"`
	TemplateID      string         `json:"template_id"`
	Customization   datatypes.JSON `json:"customization"`
	IsDefault       bool           `json:"is_default"`
	Status          string         `json:"status"`
	PreviewImageURL string         `json:"preview_image_url,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// CreateCV validates and stores a new CV, enforcing the per-user quota.
func (h *CVHandler) CreateCV(c *gin.Context) {
	var req saveCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	if _, ok := render.Get(render.TemplateID(req.TemplateID)); !ok {
		BadRequest(c, "unknown template id")
		return
	}

	req.Content.Normalize()
	if err := cv.ValidateCVData(req.Content); err != nil {
		BadRequest(c, err.Error())
		return
	}

	custom := customize.Default()
	if req.Customization != nil {
		custom = custom.Merge(*req.Customization)
	}
	if err := customize.Validate(custom); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()

	var count int64
	if err := h.db.WithContext(ctx).
		Model(&database.CV{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		Internal(c, "failed to count cvs")
		return
	}

	if h.maxCVs > 0 && count >= int64(h.maxCVs) {
		Forbidden(c, "cv limit reached")
		return
	}

	contentJSON, err := json.Marshal(req.Content)
	if err != nil {
		Internal(c, "failed to encode cv content")
		return
	}
	customJSON, err := json.Marshal(custom)
	if err != nil {
		Internal(c, "failed to encode customization")
		return
	}

	record := database.CV{
		Title:         req.Title,
		Content:       contentJSON,
		TemplateID:    req.TemplateID,
		Customization: customJSON,
		Status:        database.StatusDraft,
		IsDefault:     count == 0,
		UserID:        userID,
	}

	if err := h.db.WithContext(ctx).Create(&record).Error; err != nil {
		Internal(c, "failed to create cv")
		return
	}

	if err := h.setActiveCVID(ctx, userID, &record.ID); err != nil {
		Internal(c, "failed to mark active cv")
		return
	}

	c.JSON(http.StatusCreated, newCVResponse(record))
}

// ListCVs lists all CVs of the current user, newest first.
func (h *CVHandler) ListCVs(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	var records []database.CV
	if err := h.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		Internal(c, "failed to list cvs")
		return
	}

	items := make([]cvListItem, 0, len(records))
	for _, r := range records {
		items = append(items, cvListItem{
			ID:              r.ID,
			Title:           r.Title,
			TemplateID:      r.TemplateID,
			IsDefault:       r.IsDefault,
			Status:          r.Status,
			PreviewImageURL: r.PreviewImageURL,
			CreatedAt:       r.CreatedAt,
			UpdatedAt:       r.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, items)
}

// GetCV returns one CV and marks it as the one being edited.
func (h *CVHandler) GetCV(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	record, err := h.getCVForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyLookupError(c, err)
		return
	}

	if err := h.setActiveCVID(c.Request.Context(), userID, &record.ID); err != nil {
		Internal(c, "failed to mark active cv")
		return
	}

	c.JSON(http.StatusOK, newCVResponse(*record))
}

// GetLatestCV returns the CV the user last touched, or the default one, or an
// empty draft for a fresh account.
func (h *CVHandler) GetLatestCV(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	record, err := h.findActiveOrLatestCV(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, emptyDraftResponse())
			return
		}
		Internal(c, "failed to query latest cv")
		return
	}

	c.JSON(http.StatusOK, newCVResponse(*record))
}

// UpdateCV applies a partial update to one CV.
func (h *CVHandler) UpdateCV(c *gin.Context) {
	var req updateCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	record, err := h.getCVForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyLookupError(c, err)
		return
	}

	updates := map[string]any{}

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.TemplateID != nil {
		if _, ok := render.Get(render.TemplateID(*req.TemplateID)); !ok {
			BadRequest(c, "unknown template id")
			return
		}
		updates["template_id"] = *req.TemplateID
	}
	if req.Content != nil {
		req.Content.Normalize()
		if err := cv.ValidateCVData(*req.Content); err != nil {
			BadRequest(c, err.Error())
			return
		}
		contentJSON, err := json.Marshal(*req.Content)
		if err != nil {
			Internal(c, "failed to encode cv content")
			return
		}
		updates["content"] = datatypes.JSON(contentJSON)
	}
	if req.Customization != nil {
		current := customize.Default()
		if len(record.Customization) > 0 {
			if err := json.Unmarshal(record.Customization, &current); err != nil {
				Internal(c, "failed to decode stored customization")
				return
			}
		}
		merged := current.Merge(*req.Customization)
		if err := customize.Validate(merged); err != nil {
			BadRequest(c, err.Error())
			return
		}
		customJSON, err := json.Marshal(merged)
		if err != nil {
			Internal(c, "failed to encode customization")
			return
		}
		updates["customization"] = datatypes.JSON(customJSON)
	}

	ctx := c.Request.Context()
	if len(updates) > 0 {
		if err := h.db.WithContext(ctx).Model(record).Updates(updates).Error; err != nil {
			Internal(c, "failed to update cv")
			return
		}
		if err := h.db.WithContext(ctx).First(record, record.ID).Error; err != nil {
			Internal(c, "failed to reload cv")
			return
		}
	}

	if err := h.setActiveCVID(ctx, userID, &record.ID); err != nil {
		Internal(c, "failed to mark active cv")
		return
	}

	c.JSON(http.StatusOK, newCVResponse(*record))
}

// DeleteCV removes a CV and falls back to the most recent one as active.
func (h *CVHandler) DeleteCV(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	record, err := h.getCVForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyLookupError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Delete(&database.CV{}, record.ID).Error; err != nil {
		Internal(c, "failed to delete cv")
		return
	}

	if err := h.assignLatestCVAsActive(ctx, userID); err != nil {
		Internal(c, "failed to update active cv")
		return
	}

	c.Status(http.StatusNoContent)
}

// SetDefaultCV marks one CV as the user's default, clearing the previous one.
func (h *CVHandler) SetDefaultCV(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	record, err := h.getCVForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyLookupError(c, err)
		return
	}

	ctx := c.Request.Context()
	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&database.CV{}).
			Where("user_id = ? AND is_default = ?", userID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(record).Update("is_default", true).Error
	})
	if err != nil {
		Internal(c, "failed to set default cv")
		return
	}

	record.IsDefault = true
	c.JSON(http.StatusOK, newCVResponse(*record))
}

// DuplicateCV copies a CV under a new title. The copy is never default and
// starts without export artifacts.
func (h *CVHandler) DuplicateCV(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	record, err := h.getCVForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyLookupError(c, err)
		return
	}

	ctx := c.Request.Context()

	var count int64
	if err := h.db.WithContext(ctx).
		Model(&database.CV{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		Internal(c, "failed to count cvs")
		return
	}
	if h.maxCVs > 0 && count >= int64(h.maxCVs) {
		Forbidden(c, "cv limit reached")
		return
	}

	copyRecord := database.CV{
		Title:         record.Title + " (Copy)",
		Content:       record.Content,
		TemplateID:    record.TemplateID,
		Customization: record.Customization,
		Status:        database.StatusDraft,
		UserID:        userID,
	}

	if err := h.db.WithContext(ctx).Create(&copyRecord).Error; err != nil {
		Internal(c, "failed to duplicate cv")
		return
	}

	if err := h.setActiveCVID(ctx, userID, &copyRecord.ID); err != nil {
		Internal(c, "failed to mark active cv")
		return
	}

	c.JSON(http.StatusCreated, newCVResponse(copyRecord))
}

// ExportCV enqueues PDF generation and returns 202 immediately.
func (h *CVHandler) ExportCV(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	record, err := h.getCVForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyLookupError(c, err)
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewPDFExportTask(record.ID, correlationID)
	if err != nil {
		Internal(c, "failed to create task")
		return
	}

	maxRetry := h.exportMaxRetry
	if maxRetry <= 0 {
		maxRetry = 5
	}
	info, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(maxRetry))
	if err != nil {
		Internal(c, "failed to enqueue pdf export")
		return
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Model(record).Update("status", database.StatusExporting).Error; err != nil {
		Internal(c, "failed to update cv status")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "PDF export request accepted",
		"task_id": info.ID,
	})
}

// GetDownloadLink returns a presigned URL for the exported PDF.
func (h *CVHandler) GetDownloadLink(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	record, err := h.getCVForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyLookupError(c, err)
		return
	}

	if record.PdfURL == "" {
		Conflict(c, "pdf not ready")
		return
	}

	signedURL, err := h.storage.GeneratePresignedURL(c.Request.Context(), record.PdfURL, 5*time.Minute)
	if err != nil {
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL})
}

// GetPrintHTML renders the CV to the final A4 page markup. The route is
// guarded by the internal secret middleware; it exists for the worker and for
// operators debugging render output.
func (h *CVHandler) GetPrintHTML(c *gin.Context) {
	cvID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid cv id")
		return
	}

	ctx := c.Request.Context()
	var record database.CV
	if err := h.db.WithContext(ctx).First(&record, uint(cvID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "cv not found")
			return
		}
		Internal(c, "failed to load cv")
		return
	}

	html, err := RenderCVDocument(ctx, h.storage, &record, render.ParseLocale(c.Query("locale")))
	if err != nil {
		Internal(c, err.Error())
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// RenderCVDocument decodes a stored CV row, inlines the photo from object
// storage and renders the selected template. Shared by the internal print
// endpoint and the export worker.
func RenderCVDocument(ctx context.Context, storageClient *storage.Client, record *database.CV, locale render.Locale) (string, error) {
	var data cv.CVData
	if len(record.Content) > 0 {
		if err := json.Unmarshal(record.Content, &data); err != nil {
			return "", errors.New("failed to decode cv content")
		}
	}
	data.Normalize()

	custom := customize.Default()
	if len(record.Customization) > 0 {
		if err := json.Unmarshal(record.Customization, &custom); err != nil {
			return "", errors.New("failed to decode customization")
		}
	}

	// A photo stored as an asset object key becomes a data URI so the
	// printed page needs no further fetches. Invalid or missing objects
	// degrade to no photo rather than failing the render.
	if key := data.PersonalInfo.Photo; storage.ValidUserAssetKey(record.UserID, key) {
		uri, err := storageClient.InlineDataURI(ctx, key)
		if err != nil {
			if !storage.IsNoSuchKey(err) {
				return "", err
			}
			data.PersonalInfo.Photo = ""
		} else {
			data.PersonalInfo.Photo = uri
		}
	}

	html, err := render.Render(render.TemplateID(record.TemplateID), data, custom, locale)
	if err != nil {
		return "", err
	}
	return html, nil
}

func (h *CVHandler) replyLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errInvalidCVID):
		BadRequest(c, "invalid cv id")
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, "cv not found")
	default:
		Internal(c, "failed to query cv")
	}
}

func (h *CVHandler) setActiveCVID(ctx context.Context, userID uint, cvID *uint) error {
	var value any
	if cvID != nil {
		value = *cvID
	}
	return h.db.WithContext(ctx).Model(&database.User{}).
		Where("id = ?", userID).
		Update("active_cv_id", value).Error
}

func (h *CVHandler) assignLatestCVAsActive(ctx context.Context, userID uint) error {
	var record database.CV
	err := h.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at desc").
		First(&record).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return h.setActiveCVID(ctx, userID, nil)
	case err != nil:
		return err
	default:
		return h.setActiveCVID(ctx, userID, &record.ID)
	}
}

func (h *CVHandler) findActiveOrLatestCV(ctx context.Context, userID uint) (*database.CV, error) {
	var user database.User
	if err := h.db.WithContext(ctx).
		Select("id", "active_cv_id").
		First(&user, userID).Error; err != nil {
		return nil, err
	}

	if user.ActiveCVID != nil {
		var record database.CV
		err := h.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", *user.ActiveCVID, userID).
			First(&record).Error
		if err == nil {
			return &record, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var latest database.CV
	err := h.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at desc").
		First(&latest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = h.setActiveCVID(ctx, userID, nil)
		}
		return nil, err
	}

	if err := h.setActiveCVID(ctx, userID, &latest.ID); err != nil {
		return nil, err
	}
	return &latest, nil
}

func (h *CVHandler) getCVForUser(ctx context.Context, idParam string, userID uint) (*database.CV, error) {
	cvID, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		return nil, errInvalidCVID
	}

	var record database.CV
	if err := h.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", uint(cvID), userID).
		First(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case uint64:
		return uint(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}

func emptyDraftResponse() cvResponse {
	draft := cv.NewCVData()
	content, err := json.Marshal(draft)
	if err != nil {
		content = []byte("{}")
	}
	custom, err := json.Marshal(customize.Default())
	if err != nil {
		custom = []byte("{}")
	}
	return cvResponse{
		Title:         "My first CV",
		Content:       content,
		TemplateID:    string(render.TemplateClassic),
		Customization: custom,
	}
}

func newCVResponse(record database.CV) cvResponse {
	return cvResponse{
		ID:              record.ID,
		Title:           record.Title,
		Content:         record.Content,
		TemplateID:      record.TemplateID,
		Customization:   record.Customization,
		IsDefault:       record.IsDefault,
		Status:          record.Status,
		PreviewImageURL: record.PreviewImageURL,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
}
