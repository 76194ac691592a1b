package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cvstudio/internal/cv"
	"cvstudio/internal/database"
)

func validCVContent() cv.CVData {
	data := cv.NewCVData()
	data.PersonalInfo.FullName = "Ada Lovelace"
	data.PersonalInfo.Email = "ada@example.com"
	return data
}

func newCVTestHandler(db *gorm.DB, maxCVs int) *CVHandler {
	return &CVHandler{db: db, maxCVs: maxCVs}
}

func seedUser(t *testing.T, db *gorm.DB) database.User {
	t.Helper()
	user := database.User{Username: "ada", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func newAuthedContext(w *httptest.ResponseRecorder, req *http.Request, userID uint) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("userID", userID)
	return c
}

func createCVForTest(t *testing.T, h *CVHandler, userID uint, title string) database.CV {
	t.Helper()
	req := jsonRequest(t, http.MethodPost, "/v1/cvs", saveCVRequest{
		Title:      title,
		Content:    validCVContent(),
		TemplateID: "classic",
	})
	w := httptest.NewRecorder()
	c := newAuthedContext(w, req, userID)

	h.CreateCV(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("create cv: expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var resp cvResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	var record database.CV
	if err := h.db.First(&record, resp.ID).Error; err != nil {
		t.Fatalf("load created cv: %v", err)
	}
	return record
}

func TestCreateCVPersistsAndMarksActive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db)
	h := newCVTestHandler(db, 10)

	record := createCVForTest(t, h, user.ID, "Engineering CV")

	if record.TemplateID != "classic" {
		t.Fatalf("expected template classic, got %q", record.TemplateID)
	}
	if record.Status != database.StatusDraft {
		t.Fatalf("expected draft status, got %q", record.Status)
	}
	if !record.IsDefault {
		t.Fatalf("first cv should become default")
	}

	var reloaded database.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.ActiveCVID == nil || *reloaded.ActiveCVID != record.ID {
		t.Fatalf("expected active cv %d, got %v", record.ID, reloaded.ActiveCVID)
	}
}

func TestCreateCVRejectsUnknownTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db)
	h := newCVTestHandler(db, 10)

	req := jsonRequest(t, http.MethodPost, "/v1/cvs", saveCVRequest{
		Title:      "Bad",
		Content:    validCVContent(),
		TemplateID: "does-not-exist",
	})
	w := httptest.NewRecorder()
	c := newAuthedContext(w, req, user.ID)

	h.CreateCV(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestCreateCVRejectsInvalidContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db)
	h := newCVTestHandler(db, 10)

	content := validCVContent()
	content.PersonalInfo.Email = "not-an-email"

	req := jsonRequest(t, http.MethodPost, "/v1/cvs", saveCVRequest{
		Title:      "Bad",
		Content:    content,
		TemplateID: "classic",
	})
	w := httptest.NewRecorder()
	c := newAuthedContext(w, req, user.ID)

	h.CreateCV(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestCreateCVEnforcesQuota(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db)
	h := newCVTestHandler(db, 2)

	createCVForTest(t, h, user.ID, "First")
	createCVForTest(t, h, user.ID, "Second")

	req := jsonRequest(t, http.MethodPost, "/v1/cvs", saveCVRequest{
		Title:      "Third",
		Content:    validCVContent(),
		TemplateID: "classic",
	})
	w := httptest.NewRecorder()
	c := newAuthedContext(w, req, user.ID)

	h.CreateCV(c)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestUpdateCVAppliesPartialChanges(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db)
	h := newCVTestHandler(db, 10)

	record := createCVForTest(t, h, user.ID, "Original")

	newTitle := "Renamed"
	newTemplate := "modern"
	req := jsonRequest(t, http.MethodPatch, "/v1/cvs/1", updateCVRequest{
		Title:      &newTitle,
		TemplateID: &newTemplate,
	})
	w := httptest.NewRecorder()
	c := newAuthedContext(w, req, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	h.UpdateCV(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var reloaded database.CV
	if err := db.First(&reloaded, record.ID).Error; err != nil {
		t.Fatalf("reload cv: %v", err)
	}
	if reloaded.Title != "Renamed" || reloaded.TemplateID != "modern" {
		t.Fatalf("update not applied: title=%q template=%q", reloaded.Title, reloaded.TemplateID)
	}
	// Content was not in the patch; it must survive untouched.
	if len(reloaded.Content) == 0 {
		t.Fatalf("content lost on partial update")
	}
}

func TestGetCVRejectsForeignOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	owner := seedUser(t, db)
	h := newCVTestHandler(db, 10)

	createCVForTest(t, h, owner.ID, "Private")

	intruder := database.User{Username: "eve", PasswordHash: "x"}
	if err := db.Create(&intruder).Error; err != nil {
		t.Fatalf("seed intruder: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/cvs/1", nil)
	w := httptest.NewRecorder()
	c := newAuthedContext(w, req, intruder.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	h.GetCV(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestSetDefaultCVClearsPrevious(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db)
	h := newCVTestHandler(db, 10)

	createCVForTest(t, h, user.ID, "First")
	second := createCVForTest(t, h, user.ID, "Second")

	req := httptest.NewRequest(http.MethodPost, "/v1/cvs/2/default", nil)
	w := httptest.NewRecorder()
	c := newAuthedContext(w, req, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "2"}}

	h.SetDefaultCV(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var defaults []database.CV
	if err := db.Where("user_id = ? AND is_default = ?", user.ID, true).Find(&defaults).Error; err != nil {
		t.Fatalf("query defaults: %v", err)
	}
	if len(defaults) != 1 || defaults[0].ID != second.ID {
		t.Fatalf("expected only cv %d default, got %v", second.ID, defaults)
	}
}

func TestDuplicateCVCopiesContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db)
	h := newCVTestHandler(db, 10)

	original := createCVForTest(t, h, user.ID, "Original")

	req := httptest.NewRequest(http.MethodPost, "/v1/cvs/1/duplicate", nil)
	w := httptest.NewRecorder()
	c := newAuthedContext(w, req, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	h.DuplicateCV(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var copies []database.CV
	if err := db.Where("user_id = ? AND title = ?", user.ID, "Original (Copy)").Find(&copies).Error; err != nil {
		t.Fatalf("query copy: %v", err)
	}
	if len(copies) != 1 {
		t.Fatalf("expected one copy, got %d", len(copies))
	}
	copyRecord := copies[0]
	if copyRecord.IsDefault {
		t.Fatalf("copy must not inherit default flag")
	}
	if copyRecord.PdfURL != "" || copyRecord.PreviewImageURL != "" {
		t.Fatalf("copy must not inherit export artifacts")
	}
	if !bytes.Equal(copyRecord.Content, original.Content) {
		t.Fatalf("copy content differs from original")
	}
}

func TestDeleteCVReassignsActive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db)
	h := newCVTestHandler(db, 10)

	first := createCVForTest(t, h, user.ID, "First")
	second := createCVForTest(t, h, user.ID, "Second")

	req := httptest.NewRequest(http.MethodDelete, "/v1/cvs/2", nil)
	w := httptest.NewRecorder()
	c := newAuthedContext(w, req, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "2"}}

	h.DeleteCV(c)
	// c.Status defers the write until the engine flushes; force it so the
	// recorder sees the 204.
	c.Writer.WriteHeaderNow()
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d body=%s", w.Code, w.Body.String())
	}

	var gone int64
	if err := db.Model(&database.CV{}).Where("id = ?", second.ID).Count(&gone).Error; err != nil {
		t.Fatalf("count deleted: %v", err)
	}
	if gone != 0 {
		t.Fatalf("cv %d should be deleted", second.ID)
	}

	var reloaded database.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.ActiveCVID == nil || *reloaded.ActiveCVID != first.ID {
		t.Fatalf("expected active cv %d after delete, got %v", first.ID, reloaded.ActiveCVID)
	}
}

func TestGetLatestCVReturnsEmptyDraftForNewUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db)
	h := newCVTestHandler(db, 10)

	req := httptest.NewRequest(http.MethodGet, "/v1/cvs/latest", nil)
	w := httptest.NewRecorder()
	c := newAuthedContext(w, req, user.ID)

	h.GetLatestCV(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var resp cvResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 0 {
		t.Fatalf("empty draft must not carry an id, got %d", resp.ID)
	}
	if resp.TemplateID != "classic" {
		t.Fatalf("expected classic fallback template, got %q", resp.TemplateID)
	}
}

func TestGetDownloadLinkConflictBeforeExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := seedUser(t, db)
	h := newCVTestHandler(db, 10)

	createCVForTest(t, h, user.ID, "Unexported")

	req := httptest.NewRequest(http.MethodGet, "/v1/cvs/1/download-link", nil)
	w := httptest.NewRecorder()
	c := newAuthedContext(w, req, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	h.GetDownloadLink(c)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", w.Code, w.Body.String())
	}
}
