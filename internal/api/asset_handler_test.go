package api

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cvstudio/internal/config"
	"cvstudio/internal/database"
)

type fakeStorage struct {
	uploaded map[string][]byte
	deleted  []string
	presign  map[string]string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		uploaded: map[string][]byte{},
		presign:  map[string]string{},
	}
}

func (s *fakeStorage) UploadFile(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (*minio.UploadInfo, error) {
	b, _ := io.ReadAll(reader)
	s.uploaded[objectName] = b
	return &minio.UploadInfo{}, nil
}

func (s *fakeStorage) GeneratePresignedURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	if v, ok := s.presign[objectKey]; ok {
		return v, nil
	}
	return "https://example.invalid/" + objectKey, nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	delete(s.uploaded, objectKey)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named shared-cache DB keeps every pooled connection on the same
	// in-memory database while isolating tests from each other.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.User{}, &database.CV{}, &database.Asset{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMultipartUpload(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func newUploadContext(t *testing.T, body *bytes.Buffer, contentType string, userID uint) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/assets/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("userID", userID)
	return c, w
}

func newTestAssetHandler(db *gorm.DB, store assetObjectStore, limits config.AssetConfig) *AssetHandler {
	return &AssetHandler{
		db:      db,
		storage: store,
		logger:  discardLogger(),
		limits:  limits,
	}
}

func TestUploadAssetStoresObjectAndRecord(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	store := newFakeStorage()
	h := newTestAssetHandler(db, store, config.AssetConfig{MaxBytes: 1 << 20})

	body, contentType := newMultipartUpload(t, "a.png", "image/png", []byte("\x89PNG\r\n\x1a\n"))
	c, w := newUploadContext(t, body, contentType, 1)

	h.UploadAsset(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	if len(store.uploaded) != 1 {
		t.Fatalf("expected 1 uploaded object, got %d", len(store.uploaded))
	}

	var count int64
	if err := db.Model(&database.Asset{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count assets: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 asset record, got %d", count)
	}
}

func TestUploadAssetRejectsUnsupportedType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	store := newFakeStorage()
	h := newTestAssetHandler(db, store, config.AssetConfig{})

	body, contentType := newMultipartUpload(t, "a.pdf", "application/pdf", []byte("%PDF-1.4"))
	c, w := newUploadContext(t, body, contentType, 1)

	h.UploadAsset(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
	if len(store.uploaded) != 0 {
		t.Fatalf("rejected upload must not reach storage")
	}
}

func TestUploadAssetRejectsOversizedFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	store := newFakeStorage()
	h := newTestAssetHandler(db, store, config.AssetConfig{MaxBytes: 16})

	body, contentType := newMultipartUpload(t, "a.png", "image/png", bytes.Repeat([]byte{0xAA}, 64))
	c, w := newUploadContext(t, body, contentType, 1)

	h.UploadAsset(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestUploadAssetLimitsByCount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	store := newFakeStorage()
	h := newTestAssetHandler(db, store, config.AssetConfig{MaxPerUser: 4})

	for i := 0; i < 4; i++ {
		seed := database.Asset{
			UserID:    1,
			ObjectKey: "user-assets/1/existing-" + strconv.Itoa(i) + ".png",
		}
		if err := db.Create(&seed).Error; err != nil {
			t.Fatalf("seed asset: %v", err)
		}
	}

	body, contentType := newMultipartUpload(t, "a.png", "image/png", []byte("\x89PNG\r\n\x1a\n"))
	c, w := newUploadContext(t, body, contentType, 1)

	h.UploadAsset(c)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d body=%s", w.Code, w.Body.String())
	}
	if len(store.uploaded) != 0 {
		t.Fatalf("over-quota upload must not reach storage")
	}
}

func TestGetAssetURLRejectsForeignKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	store := newFakeStorage()
	h := newTestAssetHandler(db, store, config.AssetConfig{})

	req := httptest.NewRequest(http.MethodGet, "/v1/assets/view?key=user-assets/2/other.png", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("userID", uint(1))

	h.GetAssetURL(c)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestDeleteAssetRemovesObjectAndRecord(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	store := newFakeStorage()
	h := newTestAssetHandler(db, store, config.AssetConfig{})

	objectKey := "user-assets/1/photo.png"
	store.uploaded[objectKey] = []byte("img")
	if err := db.Create(&database.Asset{UserID: 1, ObjectKey: objectKey}).Error; err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/v1/assets?key="+objectKey, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("userID", uint(1))

	h.DeleteAsset(c)
	// c.Status defers the write until the engine flushes; force it so the
	// recorder sees the 204.
	c.Writer.WriteHeaderNow()

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d body=%s", w.Code, w.Body.String())
	}
	if len(store.deleted) != 1 || store.deleted[0] != objectKey {
		t.Fatalf("expected object deleted, got %v", store.deleted)
	}

	var count int64
	if err := db.Model(&database.Asset{}).Count(&count).Error; err != nil {
		t.Fatalf("count assets: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected record removed, got %d", count)
	}
}
